// Package md2html converts Markdown documents into styled HTML.
//
// The package targets long-form technical writing: documents with YAML
// frontmatter (inline or sidecar), tables, fenced code blocks, and code
// references that splice excerpts of real source files into the output.
//
// # Quick Start
//
// Create a service and render a document:
//
//	svc := md2html.New()
//	html, err := svc.Render(md2html.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.html", []byte(html), 0644)
//
// # Rendering Pipeline
//
// The pipeline follows these stages:
//
//  1. Frontmatter extraction and merging (inline YAML header + sidecar file)
//  2. Block parsing into a document tree (headings, paragraphs, fenced code,
//     tables, lists, blockquotes, code references, raw HTML, rules)
//  3. Inline formatting (emphasis, inline code, links, images)
//  4. Code-reference resolution (named symbols, single lines, line ranges)
//  5. HTML rendering through a pluggable Formatter, with syntax
//     highlighting via chroma and an optional table of contents
//
// Parsing is lenient by design: malformed frontmatter, unterminated
// fences, and unresolvable code references degrade to visible fallbacks
// instead of failing the whole document.
//
// # Code References
//
// A code reference names a source file and an extraction target:
//
//	@code-ref internal/server.go handleRequest
//	@code-ref util.py line 12
//	@code-ref util.py lines 4-9
//	[the handler](internal/server.go#handleRequest)
//	#handleRequest
//
// Paths resolve relative to the referencing document's directory. The
// bare form (#symbol) searches all recognized source files under the
// project root in lexical walk order, so results are stable for a fixed
// file set.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := md2html.New(
//	    md2html.WithProjectRoot("/path/to/repo"),
//	    md2html.WithTOC("Contents"),
//	    md2html.WithFragmentOutput(),
//	)
//
// A custom Formatter implementing one method per element kind can be
// substituted with WithFormatter to change markup without touching the
// parser or the resolver.
package md2html
