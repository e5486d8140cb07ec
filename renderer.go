package md2html

import (
	"fmt"
	"regexp"
	"strings"
)

// tocMaxLevel bounds table-of-contents entries: level 1 and 2 headings
// only, in document order.
const tocMaxLevel = 2

// renderer walks a parsed document and drives a Formatter. It carries
// the per-render state: heading anchors seen so far and collected TOC
// entries.
type renderer struct {
	formatter Formatter
	resolver  *Resolver
	docDir    string
	toc       []TOCEntry
	slugSeen  map[string]int
}

func newRenderer(f Formatter, r *Resolver, docDir string) *renderer {
	return &renderer{
		formatter: f,
		resolver:  r,
		docDir:    docDir,
		slugSeen:  make(map[string]int),
	}
}

// renderBlocks renders an ordered block sequence to HTML.
func (r *renderer) renderBlocks(blocks []Block) string {
	var b strings.Builder
	for _, block := range blocks {
		b.WriteString(r.renderBlock(block))
	}
	return b.String()
}

func (r *renderer) renderBlock(block Block) string {
	switch v := block.(type) {
	case Heading:
		title := spanText(v.Content)
		anchor := r.anchorFor(title)
		if v.Level <= tocMaxLevel {
			r.toc = append(r.toc, TOCEntry{Level: v.Level, Title: title, Anchor: anchor})
		}
		return r.formatter.Heading(v.Level, anchor, r.renderSpans(v.Content))

	case Paragraph:
		return r.formatter.Paragraph(r.renderSpans(v.Content))

	case CodeBlock:
		return r.formatter.CodeBlock(v.Lang, v.Code)

	case Table:
		header := make([]string, len(v.Header))
		for i, cell := range v.Header {
			header[i] = r.renderSpans(cell)
		}
		rows := make([][]string, len(v.Rows))
		for i, row := range v.Rows {
			cells := make([]string, len(row))
			for c, cell := range row {
				cells[c] = r.renderSpans(cell)
			}
			rows[i] = cells
		}
		return r.formatter.Table(header, v.Aligns, rows)

	case List:
		return r.renderList(v)

	case Blockquote:
		return r.formatter.Blockquote(r.renderBlocks(v.Blocks))

	case CodeReference:
		snippet := r.resolver.Resolve(v.Directive, r.docDir)
		label := v.Label
		if label == "" {
			label = v.Directive
		}
		return r.formatter.CodeReference(label, snippet)

	case RawHTML:
		return r.formatter.RawHTML(v.HTML)

	case HorizontalRule:
		return r.formatter.HorizontalRule()
	}

	return ""
}

func (r *renderer) renderList(list List) string {
	var items strings.Builder
	for _, item := range list.Items {
		content := r.renderSpans(item.Content)
		if item.Nested != nil {
			content += "\n" + r.renderList(*item.Nested)
		}
		items.WriteString(r.formatter.ListItem(content))
	}
	return r.formatter.List(list.Ordered, items.String())
}

// renderSpans renders inline content to HTML.
func (r *renderer) renderSpans(spans []InlineSpan) string {
	var b strings.Builder
	for _, span := range spans {
		switch v := span.(type) {
		case Text:
			b.WriteString(r.formatter.Text(v.Text))
		case Emphasis:
			b.WriteString(r.formatter.Emphasis(v.Strong, r.renderSpans(v.Children)))
		case InlineCode:
			b.WriteString(r.formatter.InlineCode(v.Code))
		case Link:
			b.WriteString(r.formatter.Link(v.Text, v.Href))
		case Image:
			b.WriteString(r.formatter.Image(v.Alt, v.Src))
		}
	}
	return b.String()
}

// tableOfContents renders the collected entries, or "" when none.
func (r *renderer) tableOfContents(title string) string {
	return r.formatter.TableOfContents(title, r.toc)
}

// anchorFor derives a unique anchor for a heading title: lowercase,
// runs of non-alphanumerics collapsed to single hyphens. Duplicate
// titles get a numeric suffix so anchors stay unique per document.
func (r *renderer) anchorFor(title string) string {
	slug := slugify(title)
	n := r.slugSeen[slug]
	r.slugSeen[slug] = n + 1
	if n > 0 {
		return fmt.Sprintf("%s-%d", slug, n+1)
	}
	return slug
}

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// slugify lowercases text and collapses non-alphanumerics to hyphens.
func slugify(text string) string {
	slug := nonAlnumRun.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(slug, "-")
}

// spanText flattens inline content to its plain text, for anchors and
// TOC titles.
func spanText(spans []InlineSpan) string {
	var b strings.Builder
	for _, span := range spans {
		switch v := span.(type) {
		case Text:
			b.WriteString(v.Text)
		case Emphasis:
			b.WriteString(spanText(v.Children))
		case InlineCode:
			b.WriteString(v.Code)
		case Link:
			b.WriteString(v.Text)
		case Image:
			b.WriteString(v.Alt)
		}
	}
	return b.String()
}

// htmlDocumentTemplate wraps the rendered body in a complete HTML5
// document: frontmatter meta tags, embedded CSS, metadata header.
const htmlDocumentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
%s<title>%s</title>
<style>
%s
</style>
</head>
<body>
<section>
%s%s</section>
</body>
</html>
`

// headerKeys are rendered first in the metadata header, in this order.
// Remaining frontmatter keys follow alphabetically.
var headerKeys = []string{"author", "date", "summary", "description", "tags"}

// documentHTML assembles the full HTML5 document around a rendered
// body.
func documentHTML(meta FrontMatter, css, body string) string {
	title := metaString(meta["title"])
	if title == "" {
		title = "Document"
	}
	return fmt.Sprintf(htmlDocumentTemplate, metaTags(meta), escapeHTML(title), css, metadataHeader(meta), body)
}

// metaTags renders one <meta> tag per frontmatter key.
func metaTags(meta FrontMatter) string {
	var b strings.Builder
	for _, key := range meta.Keys() {
		b.WriteString(fmt.Sprintf("<meta name=%q content=%q>\n", escapeHTML(key), escapeHTML(metaString(meta[key]))))
	}
	return b.String()
}

// metadataHeader renders the visible document header: title, the known
// metadata fields in a fixed order, then any extra keys.
func metadataHeader(meta FrontMatter) string {
	if len(meta) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<header>\n")
	if title := metaString(meta["title"]); title != "" {
		b.WriteString(fmt.Sprintf("<h1 class=\"title\">%s</h1>\n", escapeHTML(title)))
	}
	b.WriteString("<div class=\"metadata\">\n")

	rendered := map[string]bool{"title": true}
	for _, key := range headerKeys {
		if v, ok := meta[key]; ok {
			b.WriteString(metaField(key, v))
			rendered[key] = true
		}
	}
	for _, key := range meta.Keys() {
		if !rendered[key] {
			b.WriteString(metaField(key, meta[key]))
		}
	}

	b.WriteString("</div>\n<hr />\n</header>\n")
	return b.String()
}

func metaField(key string, value any) string {
	return fmt.Sprintf("<div class=\"meta-field\">%s: %s</div>\n",
		escapeHTML(titleCase(key)), escapeHTML(metaString(value)))
}

// titleCase uppercases the first letter of a metadata key for display.
func titleCase(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

// metaString renders a frontmatter value for display. Lists join with
// commas; nil renders empty.
func metaString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = metaString(item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
