package md2html

import (
	"fmt"
	"html"
	"strings"
)

// Formatter is the pluggable capability set the renderer drives: one
// method per block and inline element kind. Methods receive
// already-rendered child content as HTML strings, so an implementation
// only decides markup, never traversal. Substituting a Formatter
// changes styling without touching the parser or the resolver.
type Formatter interface {
	Heading(level int, anchor, content string) string
	Paragraph(content string) string
	CodeBlock(lang, code string) string
	List(ordered bool, items string) string
	ListItem(content string) string
	Blockquote(content string) string
	Table(header []string, aligns []Alignment, rows [][]string) string
	CodeReference(label string, snippet ResolvedSnippet) string
	RawHTML(html string) string
	HorizontalRule() string
	Text(text string) string
	Emphasis(strong bool, content string) string
	InlineCode(code string) string
	Link(text, href string) string
	Image(alt, src string) string
	TableOfContents(title string, entries []TOCEntry) string
}

// alignClasses maps column alignments to stable CSS class names.
var alignClasses = map[Alignment]string{
	AlignLeft:   "align-left",
	AlignCenter: "align-center",
	AlignRight:  "align-right",
}

// HTMLFormatter is the default Formatter. It emits semantic markup with
// one documented CSS class per element kind and highlights code via
// chroma, falling back to escaped monospace for unknown languages.
type HTMLFormatter struct {
	hl *highlighter
}

// NewHTMLFormatter creates an HTMLFormatter using the named chroma
// style for highlighting. An empty name uses the default style.
func NewHTMLFormatter(highlightStyle string) *HTMLFormatter {
	if highlightStyle == "" {
		highlightStyle = defaultHighlightStyle
	}
	return &HTMLFormatter{hl: newHighlighter(highlightStyle)}
}

// HighlightCSS returns the chroma class rules for the formatter's
// style, for embedding next to the base stylesheet.
func (f *HTMLFormatter) HighlightCSS() string {
	return f.hl.CSS()
}

func (f *HTMLFormatter) Heading(level int, anchor, content string) string {
	return fmt.Sprintf("<h%d id=%q class=\"heading-%d\">%s</h%d>\n", level, anchor, level, content, level)
}

func (f *HTMLFormatter) Paragraph(content string) string {
	return fmt.Sprintf("<p class=\"paragraph\">%s</p>\n", content)
}

func (f *HTMLFormatter) CodeBlock(lang, code string) string {
	if highlighted, ok := f.hl.Highlight(code, lang); ok {
		return fmt.Sprintf("<div class=\"highlight\">%s</div>\n", highlighted)
	}

	langClass := ""
	if lang != "" {
		langClass = fmt.Sprintf(" class=\"language-%s\"", escapeHTML(lang))
	}
	return fmt.Sprintf("<pre class=\"code-block\"%s><code>%s</code></pre>\n", langClass, escapeHTML(code))
}

func (f *HTMLFormatter) List(ordered bool, items string) string {
	if ordered {
		return fmt.Sprintf("<ol class=\"ordered-list\">\n%s</ol>\n", items)
	}
	return fmt.Sprintf("<ul class=\"unordered-list\">\n%s</ul>\n", items)
}

func (f *HTMLFormatter) ListItem(content string) string {
	return fmt.Sprintf("<li class=\"list-item\">%s</li>\n", content)
}

func (f *HTMLFormatter) Blockquote(content string) string {
	return fmt.Sprintf("<blockquote class=\"blockquote\">\n%s</blockquote>\n", content)
}

func (f *HTMLFormatter) Table(header []string, aligns []Alignment, rows [][]string) string {
	var b strings.Builder
	b.WriteString("<div class=\"table-container\">\n<table class=\"table\">\n<thead>\n<tr>\n")
	for c, cell := range header {
		b.WriteString(fmt.Sprintf("<th%s>%s</th>\n", alignAttr(aligns, c), cell))
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range rows {
		b.WriteString("<tr>\n")
		for c, cell := range row {
			b.WriteString(fmt.Sprintf("<td%s>%s</td>\n", alignAttr(aligns, c), cell))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n</div>\n")
	return b.String()
}

// alignAttr renders the class attribute for a column's alignment, or
// nothing for unaligned columns.
func alignAttr(aligns []Alignment, col int) string {
	if col >= len(aligns) {
		return ""
	}
	class, ok := alignClasses[aligns[col]]
	if !ok {
		return ""
	}
	return fmt.Sprintf(" class=%q", class)
}

func (f *HTMLFormatter) CodeReference(label string, snippet ResolvedSnippet) string {
	if !snippet.Resolved() {
		return fmt.Sprintf("<div class=\"code-reference code-reference-error\">code reference error: %s</div>\n",
			escapeHTML(snippet.Unresolved))
	}

	body, ok := f.hl.Highlight(snippet.Code, snippet.Language)
	if ok {
		body = fmt.Sprintf("<div class=\"highlight\">%s</div>", body)
	} else {
		body = fmt.Sprintf("<pre class=\"code-block\"><code>%s</code></pre>", escapeHTML(snippet.Code))
	}

	return fmt.Sprintf("<details class=\"code-reference\" open>\n<summary class=\"code-reference-label\">%s</summary>\n%s\n</details>\n",
		escapeHTML(label), body)
}

func (f *HTMLFormatter) RawHTML(html string) string {
	return html + "\n"
}

func (f *HTMLFormatter) HorizontalRule() string {
	return "<hr />\n"
}

func (f *HTMLFormatter) Text(text string) string {
	return escapeHTML(text)
}

func (f *HTMLFormatter) Emphasis(strong bool, content string) string {
	if strong {
		return fmt.Sprintf("<strong class=\"strong\">%s</strong>", content)
	}
	return fmt.Sprintf("<em class=\"emphasis\">%s</em>", content)
}

func (f *HTMLFormatter) InlineCode(code string) string {
	return fmt.Sprintf("<code class=\"inline-code\">%s</code>", escapeHTML(code))
}

func (f *HTMLFormatter) Link(text, href string) string {
	return fmt.Sprintf("<a href=%q class=\"link\">%s</a>", escapeHTML(href), escapeHTML(text))
}

func (f *HTMLFormatter) Image(alt, src string) string {
	return fmt.Sprintf("<img src=%q alt=%q class=\"image\" />", escapeHTML(src), escapeHTML(alt))
}

func (f *HTMLFormatter) TableOfContents(title string, entries []TOCEntry) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<nav class=\"toc\">\n")
	if title != "" {
		b.WriteString(fmt.Sprintf("<div class=\"toc-title\">%s</div>\n", escapeHTML(title)))
	}
	b.WriteString("<ul class=\"toc-list\">\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("<li class=\"toc-entry toc-level-%d\"><a href=\"#%s\" class=\"link\">%s</a></li>\n",
			e.Level, e.Anchor, escapeHTML(e.Title)))
	}
	b.WriteString("</ul>\n</nav>\n")
	return b.String()
}

// escapeHTML replaces unsafe HTML characters with escaped equivalents.
func escapeHTML(raw string) string {
	return html.EscapeString(raw)
}

// Compile-time interface check.
var _ Formatter = (*HTMLFormatter)(nil)
