package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-md2html/internal/assets"
)

func printUsage(w *os.File) {
	fmt.Fprintf(w, `md2html converts markdown documents to styled HTML.

Usage:
  md2html <command> [flags] [arguments]

Commands:
  render       Convert a single markdown file to HTML
  build        Convert all markdown files in a directory
  clear-cache  Remove cached build state
  info         Show a markdown file's frontmatter and stats
  version      Print the version
  help         Show this help

Run "md2html <command> --help" for command-specific flags.

Embedded styles: %s
`, strings.Join(assets.Names(), ", "))
}

func printRenderUsage(w *os.File) {
	fmt.Fprint(w, `Usage:
  md2html render [flags] <file.md>

Flags:
  -o, --output string          output HTML file path (default: input with .html)
      --style string           CSS style name or file path
      --highlight-style string chroma highlight style name
      --fragment               output an HTML fragment without the document wrapper
      --toc                    generate a table of contents
      --toc-title string       table of contents heading
      --project-root string    root directory for bare #symbol searches
      --base-path string       base directory for code reference paths
      --cache-dir string       cache directory
  -f, --force                  force regeneration (ignore cache)
      --no-cache               disable the cache entirely
  -q, --quiet                  only show errors
  -v, --verbose                show detailed progress
`)
}

func printBuildUsage(w *os.File) {
	fmt.Fprint(w, `Usage:
  md2html build [flags] <directory>

Flags:
  -o, --output-dir string      output directory (default: <directory>/output)
      --pattern string         file pattern to match (default "*.md")
  -r, --recursive              process subdirectories recursively
  -w, --workers int            parallel workers (0 = auto)
      --watch                  watch for changes and rebuild
      --style string           CSS style name or file path
      --highlight-style string chroma highlight style name
      --fragment               output HTML fragments without document wrappers
      --toc                    generate tables of contents
      --toc-title string       table of contents heading
      --project-root string    root directory for bare #symbol searches
      --base-path string       base directory for code reference paths
      --cache-dir string       cache directory
  -f, --force                  force regeneration (ignore cache)
      --no-cache               disable the cache entirely
  -q, --quiet                  only show errors
  -v, --verbose                show detailed progress
`)
}
