package md2html

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// ExtractionMode selects how a code reference addresses its source.
type ExtractionMode int

// Extraction modes.
const (
	ExtractSymbol ExtractionMode = iota
	ExtractLine
	ExtractRange
)

// CodeReferenceTarget is a fully resolved extraction target: an
// absolute source path plus a symbol name or 1-based line bounds.
type CodeReferenceTarget struct {
	Path   string
	Mode   ExtractionMode
	Symbol string
	Start  int
	End    int
}

// ResolvedSnippet is the outcome of resolving one code reference.
// Either Code/Language are populated, or Unresolved carries a
// human-readable reason. It always folds into visible output and never
// aborts a render.
type ResolvedSnippet struct {
	Code       string
	Language   string
	Unresolved string
}

// Resolved reports whether extraction succeeded.
func (s ResolvedSnippet) Resolved() bool {
	return s.Unresolved == ""
}

// Directive sub-patterns.
var (
	lineDirectivePattern  = regexp.MustCompile(`^(.+?)\s+line\s+(\d+)$`)
	rangeDirectivePattern = regexp.MustCompile(`^(.+?)\s+lines\s+(\d+)[-:](\d+)$`)
	symbolFragmentPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	lineFragmentPattern   = regexp.MustCompile(`^L(\d+)$`)
	rangeFragmentPattern  = regexp.MustCompile(`^L(\d+)-L(\d+)$`)
)

// isCodeRefTarget reports whether a link target uses the code-reference
// fragment grammar: path#symbol, path#LN, path#LN-LM, or bare #symbol.
func isCodeRefTarget(target string) bool {
	hash := strings.Index(target, "#")
	if hash < 0 {
		return false
	}
	frag := target[hash+1:]
	return symbolFragmentPattern.MatchString(frag) ||
		lineFragmentPattern.MatchString(frag) ||
		rangeFragmentPattern.MatchString(frag)
}

// parsedReference is a directive parsed but not yet bound to a file on
// disk. An empty path means a project-wide bare-hash search.
type parsedReference struct {
	path   string
	mode   ExtractionMode
	symbol string
	start  int
	end    int
}

// parseDirective normalizes the three accepted directive syntaxes into
// one internal form:
//
//	<path> <symbol> | <path> line <N> | <path> lines <N>-<M> (or <N>:<M>)
//	<path>#<symbol> | <path>#L<N> | <path>#L<N>-L<M>
//	#<symbol>
func parseDirective(directive string) (parsedReference, bool) {
	directive = strings.TrimSpace(directive)
	if directive == "" {
		return parsedReference{}, false
	}

	// Bare hash: project-wide symbol search.
	if strings.HasPrefix(directive, "#") {
		frag := directive[1:]
		if !symbolFragmentPattern.MatchString(frag) {
			return parsedReference{}, false
		}
		return parsedReference{mode: ExtractSymbol, symbol: frag}, true
	}

	// Link style: path#fragment.
	if hash := strings.Index(directive, "#"); hash >= 0 && !strings.ContainsAny(directive[:hash], " \t") {
		path, frag := directive[:hash], directive[hash+1:]
		if m := rangeFragmentPattern.FindStringSubmatch(frag); m != nil {
			return parsedReference{path: path, mode: ExtractRange, start: atoi(m[1]), end: atoi(m[2])}, true
		}
		if m := lineFragmentPattern.FindStringSubmatch(frag); m != nil {
			return parsedReference{path: path, mode: ExtractLine, start: atoi(m[1]), end: atoi(m[1])}, true
		}
		if symbolFragmentPattern.MatchString(frag) {
			return parsedReference{path: path, mode: ExtractSymbol, symbol: frag}, true
		}
		return parsedReference{}, false
	}

	// Explicit directive forms.
	if m := rangeDirectivePattern.FindStringSubmatch(directive); m != nil {
		return parsedReference{path: m[1], mode: ExtractRange, start: atoi(m[2]), end: atoi(m[3])}, true
	}
	if m := lineDirectivePattern.FindStringSubmatch(directive); m != nil {
		return parsedReference{path: m[1], mode: ExtractLine, start: atoi(m[2]), end: atoi(m[2])}, true
	}

	fields := strings.Fields(directive)
	if len(fields) != 2 {
		return parsedReference{}, false
	}
	return parsedReference{path: fields[0], mode: ExtractSymbol, symbol: fields[1]}, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Resolver locates and extracts code-reference snippets.
type Resolver struct {
	projectRoot string // root for bare-hash searches
	basePath    string // optional override for document-relative paths
}

// NewResolver creates a Resolver. projectRoot bounds bare-hash
// searches; basePath, when non-empty, overrides document-relative path
// resolution.
func NewResolver(projectRoot, basePath string) *Resolver {
	return &Resolver{projectRoot: projectRoot, basePath: basePath}
}

// Resolve parses a directive and extracts the referenced snippet.
// docDir is the directory of the referencing document, used for
// relative path resolution. All failures fold into an Unresolved
// snippet; Resolve never returns an error.
func (r *Resolver) Resolve(directive, docDir string) ResolvedSnippet {
	ref, ok := parseDirective(directive)
	if !ok {
		return ResolvedSnippet{Unresolved: fmt.Sprintf("invalid code reference %q", directive)}
	}

	if ref.path == "" {
		return r.searchSymbol(ref.symbol, docDir)
	}

	path := r.resolvePath(ref.path, docDir)
	target := CodeReferenceTarget{Path: path, Mode: ref.mode, Symbol: ref.symbol, Start: ref.start, End: ref.end}
	return extract(target)
}

// resolvePath makes a directive path absolute. Relative paths anchor at
// the base-path override when set, otherwise at the referencing
// document's directory.
func (r *Resolver) resolvePath(path, docDir string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	base := r.basePath
	if base == "" {
		base = docDir
	}
	return filepath.Clean(filepath.Join(base, path))
}

// searchRoot picks the directory for bare-hash searches: the configured
// project root, falling back to the referencing document's directory.
func (r *Resolver) searchRoot(docDir string) string {
	if r.projectRoot != "" {
		return r.projectRoot
	}
	if docDir != "" {
		return docDir
	}
	return "."
}

// searchSymbol walks recognized source files under the project root in
// lexical path order and extracts the first file defining the symbol.
// Ties across files resolve to the first hit in walk order; the walk
// order is deterministic for a fixed file set.
func (r *Resolver) searchSymbol(symbol, docDir string) ResolvedSnippet {
	root := r.searchRoot(docDir)

	var found ResolvedSnippet
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if d.IsDir() {
			if skipDirName(d.Name()) && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !isSourceFile(path) {
			return nil
		}
		target := CodeReferenceTarget{Path: path, Mode: ExtractSymbol, Symbol: symbol}
		snippet := extract(target)
		if snippet.Resolved() {
			found = snippet
			return filepath.SkipAll
		}
		return nil
	})
	if err == nil && found.Resolved() {
		return found
	}
	return ResolvedSnippet{Unresolved: fmt.Sprintf("symbol not found: no definition of %q under %s", symbol, root)}
}

// skipDirName filters directories that never hold referenced sources.
func skipDirName(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "node_modules", "vendor", "__pycache__":
		return true
	}
	return false
}

// extract reads the target file and extracts the addressed lines.
func extract(target CodeReferenceTarget) ResolvedSnippet {
	data, err := os.ReadFile(target.Path) // #nosec G304 -- referenced source paths come from the document author
	if err != nil {
		if os.IsNotExist(err) {
			return ResolvedSnippet{Unresolved: fmt.Sprintf("source file not found: %s", target.Path)}
		}
		return ResolvedSnippet{Unresolved: fmt.Sprintf("cannot read %s: %v", target.Path, err)}
	}

	lines := splitSourceLines(string(data))
	lang := detectLanguage(target.Path)

	switch target.Mode {
	case ExtractSymbol:
		start, end, ok := findSymbol(target.Path, lines, target.Symbol)
		if !ok {
			return ResolvedSnippet{Unresolved: fmt.Sprintf("symbol not found: %q in %s", target.Symbol, target.Path)}
		}
		return ResolvedSnippet{Code: strings.Join(lines[start-1:end], "\n"), Language: lang}

	case ExtractLine, ExtractRange:
		if target.Start < 1 || target.End > len(lines) || target.Start > target.End {
			return ResolvedSnippet{Unresolved: fmt.Sprintf("line out of range: %d-%d of %d lines in %s",
				target.Start, target.End, len(lines), target.Path)}
		}
		return ResolvedSnippet{Code: strings.Join(lines[target.Start-1:target.End], "\n"), Language: lang}
	}

	return ResolvedSnippet{Unresolved: fmt.Sprintf("invalid extraction mode %d", target.Mode)}
}

// splitSourceLines splits file content into lines, dropping the empty
// trailer produced by a final newline so line counts match editors.
func splitSourceLines(content string) []string {
	lines := strings.Split(normalizeLineEndings(content), "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
