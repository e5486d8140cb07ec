package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/fileutil"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	quiet   bool
	verbose bool
}

// styleFlags holds styling and rendering flags.
type styleFlags struct {
	style          string // embedded style name or CSS file path
	highlightStyle string // chroma style name
	fragment       bool   // emit a body fragment instead of a full document
	toc            bool   // generate a table of contents
	tocTitle       string // TOC heading
}

// refFlags holds code-reference resolution flags.
type refFlags struct {
	projectRoot string // root for bare #symbol searches
	basePath    string // overrides document-relative path resolution
}

// cacheFlags holds cache-related flags.
type cacheFlags struct {
	dir     string // cache directory
	force   bool   // ignore the cache and re-render
	disable bool   // skip cache reads and writes entirely
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common commonFlags
	styles styleFlags
	refs   refFlags
	cache  cacheFlags
	output string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	render    renderFlags
	outputDir string
	pattern   string
	recursive bool
	workers   int
	watch     bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// addStyleFlags adds styling flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma highlight style name")
	fs.BoolVar(&f.fragment, "fragment", false, "output an HTML fragment without the document wrapper")
	fs.BoolVar(&f.toc, "toc", false, "generate a table of contents")
	fs.StringVar(&f.tocTitle, "toc-title", "", "table of contents heading")
}

// addRefFlags adds code-reference flags to a FlagSet.
func addRefFlags(fs *flag.FlagSet, f *refFlags) {
	fs.StringVar(&f.projectRoot, "project-root", "", "root directory for bare #symbol searches")
	fs.StringVar(&f.basePath, "base-path", "", "base directory overriding document-relative code-ref paths")
}

// addCacheFlags adds cache flags to a FlagSet.
func addCacheFlags(fs *flag.FlagSet, f *cacheFlags) {
	fs.StringVar(&f.dir, "cache-dir", "", "cache directory")
	fs.BoolVarP(&f.force, "force", "f", false, "force regeneration (ignore cache)")
	fs.BoolVar(&f.disable, "no-cache", false, "disable the cache entirely")
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output HTML file path")
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.styles)
	addRefFlags(fs, &f.refs)
	addCacheFlags(fs, &f.cache)

	fs.Usage = func() { printRenderUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseClearCacheFlags parses clear-cache command flags.
func parseClearCacheFlags(args []string) (*cacheFlags, error) {
	fs := flag.NewFlagSet("clear-cache", flag.ContinueOnError)
	f := &cacheFlags{}
	addCacheFlags(fs, f)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	f := &buildFlags{}

	fs.StringVarP(&f.outputDir, "output-dir", "o", "", "output directory")
	fs.StringVar(&f.pattern, "pattern", "*.md", "file pattern to match")
	fs.BoolVarP(&f.recursive, "recursive", "r", false, "process subdirectories recursively")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.watch, "watch", false, "watch for changes and rebuild")
	addCommonFlags(fs, &f.render.common)
	addStyleFlags(fs, &f.render.styles)
	addRefFlags(fs, &f.render.refs)
	addCacheFlags(fs, &f.render.cache)

	fs.Usage = func() { printBuildUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// buildService constructs the rendering service from parsed flags.
func buildService(styles styleFlags, refs refFlags) (*md2html.Service, error) {
	var opts []md2html.Option

	if styles.fragment {
		opts = append(opts, md2html.WithFragmentOutput())
	}
	if styles.toc || styles.tocTitle != "" {
		opts = append(opts, md2html.WithTOC(styles.tocTitle))
	}
	if styles.highlightStyle != "" {
		opts = append(opts, md2html.WithHighlightStyle(styles.highlightStyle))
	}
	if refs.projectRoot != "" {
		opts = append(opts, md2html.WithProjectRoot(refs.projectRoot))
	}
	if refs.basePath != "" {
		opts = append(opts, md2html.WithBasePath(refs.basePath))
	}

	if styles.style != "" {
		css, err := resolveStylesheet(styles.style)
		if err != nil {
			return nil, err
		}
		opts = append(opts, md2html.WithStylesheet(css))
	}

	return md2html.New(opts...), nil
}

// resolveStylesheet loads CSS from an embedded style name or a file
// path. Names with path separators are treated as paths.
func resolveStylesheet(nameOrPath string) (string, error) {
	if fileutil.IsFilePath(nameOrPath) {
		data, err := os.ReadFile(nameOrPath) // #nosec G304 -- explicit user-provided stylesheet path
		if err != nil {
			return "", fmt.Errorf("reading stylesheet %s: %w", nameOrPath, err)
		}
		return string(data), nil
	}
	return assets.LoadStyle(nameOrPath)
}
