package md2html

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// languageByExtension maps source extensions to highlight language
// tags. The chroma lexer registry covers the long tail.
var languageByExtension = map[string]string{
	".go":    "go",
	".py":    "python",
	".js":    "javascript",
	".jsx":   "jsx",
	".ts":    "typescript",
	".tsx":   "tsx",
	".rs":    "rust",
	".rb":    "ruby",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".cc":    "cpp",
	".hpp":   "cpp",
	".java":  "java",
	".kt":    "kotlin",
	".php":   "php",
	".swift": "swift",
	".scala": "scala",
	".sh":    "bash",
	".sql":   "sql",
	".yaml":  "yaml",
	".yml":   "yaml",
	".json":  "json",
	".toml":  "toml",
	".html":  "html",
	".css":   "css",
	".md":    "markdown",
}

// detectLanguage derives a highlight language tag from a source file
// path. Unknown extensions fall back to chroma's filename matching,
// then to the bare extension.
func detectLanguage(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := languageByExtension[ext]; ok {
		return lang
	}
	if lexer := lexers.Match(filepath.Base(path)); lexer != nil {
		return strings.ToLower(lexer.Config().Name)
	}
	return strings.TrimPrefix(ext, ".")
}

// highlighter renders code through chroma with CSS classes so the
// stylesheet stays external. A zero style name uses the default.
type highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// newHighlighter creates a highlighter for the named chroma style.
// Unknown style names fall back to the chroma default.
func newHighlighter(styleName string) *highlighter {
	style := styles.Get(styleName)
	return &highlighter{
		style:     style,
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

// Highlight returns highlighted HTML for code tagged with lang.
// ok=false means the language is unknown or tokenization failed; the
// caller degrades to an escaped plain code block.
func (h *highlighter) Highlight(code, lang string) (string, bool) {
	if lang == "" {
		return "", false
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", false
	}
	return buf.String(), true
}

// CSS returns the stylesheet rules for the highlighter's chroma
// classes.
func (h *highlighter) CSS() string {
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return ""
	}
	return buf.String()
}
