package md2html

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/assets"
)

// Service orchestrates the markdown-to-HTML pipeline: frontmatter
// merging, block parsing, code-reference resolution, and rendering.
// A Service is safe for concurrent use across distinct documents; each
// Render call is independent and touches no shared mutable state.
type Service struct {
	cfg       serviceConfig
	formatter Formatter
}

// New creates a Service with default configuration. Use options to
// customize behavior (e.g., WithTOC, WithProjectRoot).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			tocTitle:       defaultTOCTitle,
			highlightStyle: defaultHighlightStyle,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.formatter == nil {
		s.formatter = NewHTMLFormatter(s.cfg.highlightStyle)
	}

	return s
}

// Parse runs the front half of the pipeline: frontmatter extraction and
// merging plus block parsing. The returned Document is read-only.
func (s *Service) Parse(input Input) (*Document, error) {
	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	inline, body := ExtractFrontMatter(input.Markdown)
	sidecar := LoadSidecar(input.Path)

	return &Document{
		Meta:   MergeFrontMatter(inline, sidecar),
		Blocks: ParseBlocks(body),
	}, nil
}

// Render runs the full pipeline and returns the HTML output: a complete
// HTML5 document by default, or a body fragment with WithFragmentOutput.
func (s *Service) Render(input Input) (string, error) {
	doc, err := s.Parse(input)
	if err != nil {
		return "", err
	}
	return s.RenderDocument(doc, input)
}

// RenderDocument renders an already-parsed Document. Code references
// are resolved lazily here, relative to the input path's directory.
func (s *Service) RenderDocument(doc *Document, input Input) (string, error) {
	docDir := "."
	if input.Path != "" {
		docDir = filepath.Dir(input.Path)
	}

	resolver := NewResolver(s.cfg.projectRoot, s.cfg.basePath)
	r := newRenderer(s.formatter, resolver, docDir)

	body := r.renderBlocks(doc.Blocks)
	if s.cfg.toc {
		body = r.tableOfContents(s.cfg.tocTitle) + body
	}

	if s.cfg.fragment {
		return body, nil
	}

	css, err := s.stylesheet(input.CSS)
	if err != nil {
		return "", err
	}
	return documentHTML(doc.Meta, css, body), nil
}

// RenderFile reads and renders a markdown file. The path feeds sidecar
// lookup and relative code-reference resolution.
func (s *Service) RenderFile(path string) (string, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- rendering the caller's own document path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadDocument, err)
	}
	return s.Render(Input{Markdown: string(content), Path: path})
}

// stylesheet assembles the document CSS: the base stylesheet (embedded
// default unless overridden), the chroma highlight rules, and any
// per-document extra CSS.
func (s *Service) stylesheet(extra string) (string, error) {
	base := s.cfg.stylesheet
	if base == "" {
		var err error
		base, err = assets.LoadStyle(assets.DefaultStyle)
		if err != nil {
			return "", err
		}
	}

	parts := []string{base}
	if hf, ok := s.formatter.(*HTMLFormatter); ok {
		if highlightCSS := hf.HighlightCSS(); highlightCSS != "" {
			parts = append(parts, highlightCSS)
		}
	}
	if extra != "" {
		parts = append(parts, extra)
	}
	return strings.Join(parts, "\n"), nil
}
