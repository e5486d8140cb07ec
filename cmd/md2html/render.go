package main

import (
	"fmt"
	"os"

	"github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/fileutil"
)

// outputFileMode is the permission set for generated HTML files.
const outputFileMode = 0o644

// cmdRender renders a single markdown file to HTML.
func cmdRender(args []string, stdout, stderr *os.File) int {
	flags, positional, err := parseRenderFlags(args)
	if err != nil {
		return exitUsage
	}
	if len(positional) != 1 {
		fmt.Fprintln(stderr, "render: expected exactly one input file")
		printRenderUsage(stderr)
		return exitUsage
	}

	input := positional[0]
	if !fileutil.IsMarkdownFile(input) {
		fmt.Fprintf(stderr, "render: %s is not a markdown file\n", input)
		return exitUsage
	}

	output := flags.output
	if output == "" {
		output = fileutil.ReplaceExt(input, ".html")
	}

	svc, err := buildService(flags.styles, flags.refs)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	cache := openCache(flags.cache, stderr)
	if cache != nil && !flags.cache.force && !cache.IsStale(input) {
		if cached, ok := cache.CachedOutput(input); ok {
			if !flags.common.quiet {
				fmt.Fprintf(stdout, "Using cached output: %s\n", cached)
			}
			return exitOK
		}
	}

	if err := renderFile(svc, cache, input, output); err != nil {
		fmt.Fprintf(stderr, "render: %v\n", err)
		return exitError
	}

	if !flags.common.quiet {
		fmt.Fprintf(stdout, "Created %s\n", output)
	}
	return exitOK
}

// renderFile runs one file through the pipeline, writes the output, and
// records it in the cache.
func renderFile(svc *md2html.Service, cache *md2html.Cache, input, output string) error {
	html, err := svc.RenderFile(input)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, []byte(html), outputFileMode); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	if cache != nil {
		if err := cache.Update(input, output); err != nil {
			// A cache write failure never fails the render.
			return nil
		}
	}
	return nil
}

// openCache opens the configured cache, or returns nil when caching is
// disabled or unavailable.
func openCache(flags cacheFlags, stderr *os.File) *md2html.Cache {
	if flags.disable {
		return nil
	}
	cache, err := md2html.OpenCache(flags.dir)
	if err != nil {
		fmt.Fprintf(stderr, "warning: cache disabled: %v\n", err)
		return nil
	}
	return cache
}

// cmdClearCache clears the cache directory.
func cmdClearCache(args []string, stdout, stderr *os.File) int {
	flags, err := parseClearCacheFlags(args)
	if err != nil {
		return exitUsage
	}

	c, err := md2html.OpenCache(flags.dir)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	if err := c.Clear(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	fmt.Fprintln(stdout, "Cache cleared.")
	return exitOK
}

// cmdInfo prints a markdown file's frontmatter and content stats.
func cmdInfo(args []string, stdout, stderr *os.File) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "info: expected exactly one input file")
		return exitUsage
	}
	path := args[0]

	content, err := os.ReadFile(path) // #nosec G304 -- inspecting the caller's own document path
	if err != nil {
		fmt.Fprintf(stderr, "info: %v\n", err)
		return exitError
	}

	inline, body := md2html.ExtractFrontMatter(string(content))
	meta := md2html.MergeFrontMatter(inline, md2html.LoadSidecar(path))

	fmt.Fprintf(stdout, "File: %s\n", path)
	fmt.Fprintf(stdout, "Size: %d bytes\n", len(content))
	fmt.Fprintf(stdout, "Content length: %d characters\n", len(body))

	if len(meta) == 0 {
		fmt.Fprintln(stdout, "\nNo frontmatter found.")
		return exitOK
	}
	fmt.Fprintln(stdout, "\nFrontmatter:")
	for _, key := range meta.Keys() {
		fmt.Fprintf(stdout, "  %s: %v\n", key, meta[key])
	}
	return exitOK
}
