package main

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/fileutil"
)

// Worker pool bounds for parallel builds.
const (
	minWorkers = 1
	maxWorkers = 8

	// cpuDivisor leaves headroom so parallel renders do not saturate
	// every core during interactive use.
	cpuDivisor = 2
)

// resolveWorkers determines the build concurrency.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func resolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < minWorkers {
		return minWorkers
	}
	if n > maxWorkers {
		return maxWorkers
	}
	return n
}

// cmdBuild renders every matching markdown file under a directory.
func cmdBuild(args []string, stdout, stderr *os.File) int {
	flags, positional, err := parseBuildFlags(args)
	if err != nil {
		return exitUsage
	}
	if len(positional) != 1 {
		fmt.Fprintln(stderr, "build: expected exactly one input directory")
		printBuildUsage(stderr)
		return exitUsage
	}

	inputDir := positional[0]
	info, err := os.Stat(inputDir)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(stderr, "build: %s is not a directory\n", inputDir)
		return exitUsage
	}

	outputDir := flags.outputDir
	if outputDir == "" {
		outputDir = filepath.Join(inputDir, "output")
	}
	if err := fileutil.EnsureDir(outputDir); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	svc, err := buildService(flags.render.styles, flags.render.refs)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	cache := openCache(flags.render.cache, stderr)

	b := &builder{
		svc:       svc,
		cache:     cache,
		flags:     flags,
		inputDir:  inputDir,
		outputDir: outputDir,
		stdout:    stdout,
		stderr:    stderr,
	}

	if code := b.buildAll(); code != exitOK {
		return code
	}
	if flags.watch {
		return b.watch()
	}
	return exitOK
}

// builder carries the state of one build invocation.
type builder struct {
	svc       *md2html.Service
	cache     *md2html.Cache
	flags     *buildFlags
	inputDir  string
	outputDir string
	stdout    *os.File
	stderr    *os.File
}

// buildAll discovers and renders all matching files in parallel.
func (b *builder) buildAll() int {
	files, err := b.discover()
	if err != nil {
		fmt.Fprintf(b.stderr, "build: %v\n", err)
		return exitError
	}
	if len(files) == 0 {
		fmt.Fprintf(b.stdout, "No markdown files found matching pattern %q\n", b.flags.pattern)
		return exitOK
	}

	if !b.flags.render.common.quiet {
		fmt.Fprintf(b.stdout, "Found %d markdown files to process...\n", len(files))
	}

	var g errgroup.Group
	g.SetLimit(resolveWorkers(b.flags.workers))

	for _, file := range files {
		g.Go(func() error {
			if err := b.buildOne(file); err != nil {
				fmt.Fprintf(b.stderr, "✗ %s: %v\n", filepath.Base(file), err)
				return fmt.Errorf("building %s: %w", file, err)
			}
			return nil
		})
	}
	err = g.Wait()

	if !b.flags.render.common.quiet {
		fmt.Fprintf(b.stdout, "Build complete. Output directory: %s\n", b.outputDir)
	}
	if err != nil {
		return exitError
	}
	return exitOK
}

// discover lists matching markdown files under the input directory, in
// lexical order.
func (b *builder) discover() ([]string, error) {
	var files []string

	if !b.flags.recursive {
		matches, err := filepath.Glob(filepath.Join(b.inputDir, b.flags.pattern))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if fileutil.FileExists(m) {
				files = append(files, m)
			}
		}
		return files, nil
	}

	err := filepath.WalkDir(b.inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Never descend into our own output.
			if abs, _ := filepath.Abs(path); abs != "" {
				if out, _ := filepath.Abs(b.outputDir); abs == out {
					return filepath.SkipDir
				}
			}
			return nil
		}
		ok, err := filepath.Match(b.flags.pattern, d.Name())
		if err != nil {
			return err
		}
		if ok {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// buildOne renders a single file into the output tree, preserving its
// relative path.
func (b *builder) buildOne(file string) error {
	rel, err := filepath.Rel(b.inputDir, file)
	if err != nil {
		rel = filepath.Base(file)
	}
	output := filepath.Join(b.outputDir, fileutil.ReplaceExt(rel, ".html"))
	if err := fileutil.EnsureDir(filepath.Dir(output)); err != nil {
		return err
	}

	if b.cache != nil && !b.flags.render.cache.force && !b.cache.IsStale(file) {
		if _, ok := b.cache.CachedOutput(file); ok {
			if b.flags.render.common.verbose {
				fmt.Fprintf(b.stdout, "= %s (cached)\n", rel)
			}
			return nil
		}
	}

	if err := renderFile(b.svc, b.cache, file, output); err != nil {
		return err
	}
	if !b.flags.render.common.quiet {
		fmt.Fprintf(b.stdout, "✓ %s → %s\n", rel, output)
	}
	return nil
}

// watch rebuilds matching files as they change, until interrupted.
func (b *builder) watch() int {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(b.stderr, "watch: %v\n", err)
		return exitError
	}
	defer watcher.Close()

	if err := b.addWatchDirs(watcher); err != nil {
		fmt.Fprintf(b.stderr, "watch: %v\n", err)
		return exitError
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	fmt.Fprintf(b.stdout, "Watching %s for changes...\n", b.inputDir)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return exitOK
			}
			b.handleEvent(watcher, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return exitOK
			}
			fmt.Fprintf(b.stderr, "watch: %v\n", err)
		case <-stop:
			fmt.Fprintln(b.stdout, "Stopped watching.")
			return exitOK
		}
	}
}

// addWatchDirs registers the input directory (and subdirectories when
// recursive) with the watcher.
func (b *builder) addWatchDirs(watcher *fsnotify.Watcher) error {
	if !b.flags.recursive {
		return watcher.Add(b.inputDir)
	}
	return filepath.WalkDir(b.inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		return watcher.Add(path)
	})
}

// handleEvent rebuilds on create/write of matching files and registers
// newly created directories.
func (b *builder) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		if b.flags.recursive {
			_ = watcher.Add(event.Name)
		}
		return
	}

	ok, err := filepath.Match(b.flags.pattern, filepath.Base(event.Name))
	if err != nil || !ok {
		return
	}
	if err := b.buildOne(event.Name); err != nil {
		fmt.Fprintf(b.stderr, "✗ %s: %v\n", filepath.Base(event.Name), err)
	}
}
