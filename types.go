package md2html

import "sort"

// FrontMatter is the merged metadata mapping of a document. Values come
// from the inline YAML header and/or a sidecar YAML file. An absent
// frontmatter is an empty (never nil after merging) mapping.
type FrontMatter map[string]any

// Keys returns the frontmatter keys in sorted order for deterministic
// iteration.
func (m FrontMatter) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Document is the parsed form of a markdown file: the merged
// frontmatter plus an ordered block sequence. It is read-only once
// constructed.
type Document struct {
	Meta   FrontMatter
	Blocks []Block
}

// Block is a block-level node in the document tree.
type Block interface {
	block()
}

// Heading is an ATX heading (level 1-6) with inline content.
type Heading struct {
	Level   int
	Content []InlineSpan
}

// Paragraph is a run of text lines with inline content.
type Paragraph struct {
	Content []InlineSpan
}

// CodeBlock is a fenced code block. Code is verbatim and never
// inline-parsed. Lang is the optional fence info tag.
type CodeBlock struct {
	Lang string
	Code string
}

// Alignment is a table column alignment taken from the separator row.
type Alignment int

// Column alignments.
const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// TableCell is the inline content of a single table cell.
type TableCell []InlineSpan

// Table is a pipe table. Column count comes from the header row; ragged
// body rows are padded or truncated to match at parse time.
type Table struct {
	Header []TableCell
	Aligns []Alignment
	Rows   [][]TableCell
}

// List is an ordered or unordered list.
type List struct {
	Ordered bool
	Items   []ListItem
}

// ListItem is one list entry: inline content plus an optional nested
// sublist.
type ListItem struct {
	Content []InlineSpan
	Nested  *List
}

// Blockquote is a quoted block sequence. Nesting is unbounded.
type Blockquote struct {
	Blocks []Block
}

// CodeReference is a code-reference directive. Directive holds the raw
// source path and target spec; Label is the optional display label from
// the link form. Resolution happens lazily at render time.
type CodeReference struct {
	Directive string
	Label     string
}

// RawHTML is a verbatim HTML passthrough block.
type RawHTML struct {
	HTML string
}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

func (Heading) block()        {}
func (Paragraph) block()      {}
func (CodeBlock) block()      {}
func (Table) block()          {}
func (List) block()           {}
func (Blockquote) block()     {}
func (CodeReference) block()  {}
func (RawHTML) block()        {}
func (HorizontalRule) block() {}

// InlineSpan is an inline node inside a block's text.
type InlineSpan interface {
	span()
}

// Text is a literal text run.
type Text struct {
	Text string
}

// Emphasis is emphasized text. Strong selects <strong> over <em>.
// ***x*** parses as strong emphasis wrapping plain emphasis.
type Emphasis struct {
	Strong   bool
	Children []InlineSpan
}

// InlineCode is a backtick code span. Code is verbatim, never reparsed.
type InlineCode struct {
	Code string
}

// Link is an inline link with display text and target.
type Link struct {
	Text string
	Href string
}

// Image is an inline image with alt text and source.
type Image struct {
	Alt string
	Src string
}

func (Text) span()       {}
func (Emphasis) span()   {}
func (InlineCode) span() {}
func (Link) span()       {}
func (Image) span()      {}

// TOCEntry is one table-of-contents entry: a level 1 or 2 heading in
// document order.
type TOCEntry struct {
	Level  int
	Title  string
	Anchor string
}

// Input contains rendering parameters for a single document.
type Input struct {
	Markdown string // Markdown content (required)
	Path     string // Source file path; enables sidecar lookup and relative code-ref paths (optional)
	CSS      string // Extra CSS appended after the stylesheet (optional)
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	fragment       bool   // emit body fragment instead of a full HTML5 document
	toc            bool   // generate a table of contents from h1/h2 headings
	tocTitle       string // heading above the table of contents
	projectRoot    string // root for bare #symbol searches; defaults to the document directory
	basePath       string // overrides document-relative code-ref path resolution
	highlightStyle string // chroma style name used for generated highlight CSS
	stylesheet     string // base CSS; empty means the embedded default
}

// defaultHighlightStyle mirrors the pygments style the original
// stylesheet was designed around.
const defaultHighlightStyle = "friendly"

// defaultTOCTitle is used when a table of contents is requested with no
// explicit title.
const defaultTOCTitle = "Contents"

// WithFragmentOutput emits only the rendered body, without the HTML5
// document wrapper, metadata header, or embedded CSS.
func WithFragmentOutput() Option {
	return func(s *Service) {
		s.cfg.fragment = true
	}
}

// WithTOC enables table-of-contents generation. An empty title uses
// the default.
func WithTOC(title string) Option {
	if title == "" {
		title = defaultTOCTitle
	}
	return func(s *Service) {
		s.cfg.toc = true
		s.cfg.tocTitle = title
	}
}

// WithProjectRoot sets the root directory for bare #symbol searches.
func WithProjectRoot(root string) Option {
	return func(s *Service) {
		s.cfg.projectRoot = root
	}
}

// WithBasePath overrides document-relative code-reference path
// resolution with a fixed base directory.
func WithBasePath(base string) Option {
	return func(s *Service) {
		s.cfg.basePath = base
	}
}

// WithHighlightStyle sets the chroma style used for highlight CSS.
// Unknown names fall back to the chroma default at render time.
func WithHighlightStyle(name string) Option {
	return func(s *Service) {
		s.cfg.highlightStyle = name
	}
}

// WithStylesheet replaces the embedded default CSS.
func WithStylesheet(css string) Option {
	return func(s *Service) {
		s.cfg.stylesheet = css
	}
}

// WithFormatter substitutes the markup formatter. Panics on nil
// (programmer error, similar to http.HandlerFunc on nil).
func WithFormatter(f Formatter) Option {
	if f == nil {
		panic("md2html: WithFormatter formatter must not be nil")
	}
	return func(s *Service) {
		s.formatter = f
	}
}
