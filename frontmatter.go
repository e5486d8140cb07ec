package md2html

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/yamlutil"
)

// frontMatterDelimiter opens and closes an inline YAML header.
const frontMatterDelimiter = "---"

// sidecarExtensions are probed in order for a companion metadata file.
var sidecarExtensions = []string{".yaml", ".yml"}

// ExtractFrontMatter splits content into an inline frontmatter mapping
// and the remaining body.
//
// Frontmatter is detected only when the first line (after trimming
// trailing whitespace) is exactly "---" and a matching closing "---"
// line follows. A missing closing delimiter or an invalid YAML block is
// not an error: the whole content is returned as body with an empty
// mapping, and in the invalid-YAML case the attempted header is left in
// place since it could not be reliably identified as frontmatter.
func ExtractFrontMatter(content string) (FrontMatter, string) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontMatterDelimiter {
		return FrontMatter{}, content
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontMatterDelimiter {
			closing = i
			break
		}
	}
	if closing < 0 {
		return FrontMatter{}, content
	}

	header := strings.Join(lines[1:closing], "\n")
	body := strings.Join(lines[closing+1:], "\n")

	meta := FrontMatter{}
	if strings.TrimSpace(header) == "" {
		return meta, body
	}
	if err := yamlutil.Unmarshal([]byte(header), &meta); err != nil {
		return FrontMatter{}, content
	}
	return meta, body
}

// LoadSidecar loads the sidecar metadata file for a markdown path:
// a co-located file with the same base name and a .yaml or .yml
// extension. Absence, read failures, and parse failures all yield an
// empty mapping.
func LoadSidecar(mdPath string) FrontMatter {
	if mdPath == "" {
		return FrontMatter{}
	}

	base := strings.TrimSuffix(mdPath, filepath.Ext(mdPath))
	for _, ext := range sidecarExtensions {
		data, err := os.ReadFile(base + ext) // #nosec G304 -- sidecar path derives from the caller's document path
		if err != nil {
			continue
		}
		meta := FrontMatter{}
		if err := yamlutil.Unmarshal(data, &meta); err != nil {
			continue
		}
		return meta
	}
	return FrontMatter{}
}

// MergeFrontMatter merges inline and sidecar metadata into one mapping.
// Inline values win on key collision; sidecar values fill the gaps.
func MergeFrontMatter(inline, sidecar FrontMatter) FrontMatter {
	merged := make(FrontMatter, len(inline)+len(sidecar))
	for k, v := range sidecar {
		merged[k] = v
	}
	for k, v := range inline {
		merged[k] = v
	}
	return merged
}
