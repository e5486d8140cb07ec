package md2html

// Notes:
// - findGoSymbol: AST lookup for funcs, methods, types, consts, vars
// - findPatternSymbol: regex fallback with indent and brace extent scanning
// - Extent edge cases: trailing blanks, unopened braces, nested blocks

import (
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestFindGoSymbol - AST Lookup
// ---------------------------------------------------------------------------

func TestFindGoSymbol(t *testing.T) {
	t.Parallel()

	source := strings.Join([]string{
		"package x",                // 1
		"",                         // 2
		"const answer = 42",        // 3
		"",                         // 4
		"var name = \"x\"",         // 5
		"",                         // 6
		"type Thing struct {",      // 7
		"\tID int",                 // 8
		"}",                        // 9
		"",                         // 10
		"func (t Thing) Get() int {", // 11
		"\treturn t.ID",            // 12
		"}",                        // 13
		"",                         // 14
		"func Standalone() {}",     // 15
	}, "\n")
	lines := strings.Split(source, "\n")

	tests := []struct {
		name      string
		symbol    string
		wantStart int
		wantEnd   int
	}{
		{name: "const", symbol: "answer", wantStart: 3, wantEnd: 3},
		{name: "var", symbol: "name", wantStart: 5, wantEnd: 5},
		{name: "struct type", symbol: "Thing", wantStart: 7, wantEnd: 9},
		{name: "method", symbol: "Get", wantStart: 11, wantEnd: 13},
		{name: "function", symbol: "Standalone", wantStart: 15, wantEnd: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			start, end, ok := findSymbol("x.go", lines, tt.symbol)
			if !ok {
				t.Fatalf("symbol %q not found", tt.symbol)
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("span = %d-%d, want %d-%d", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}

	t.Run("missing symbol", func(t *testing.T) {
		t.Parallel()

		if _, _, ok := findSymbol("x.go", lines, "Nope"); ok {
			t.Error("found a symbol that does not exist")
		}
	})
}

func TestFindGoSymbolUnparseableFallsBack(t *testing.T) {
	t.Parallel()

	// Broken Go source still resolves via the pattern fallback.
	lines := []string{
		"package x",
		"func Broken() {",
		"\tthis is not go",
		"}",
	}

	start, end, ok := findSymbol("x.go", lines, "Broken")
	if !ok {
		t.Fatal("pattern fallback did not find the symbol")
	}
	if start != 2 || end != 4 {
		t.Errorf("span = %d-%d, want 2-4", start, end)
	}
}

// ---------------------------------------------------------------------------
// TestFindPatternSymbol - Indent-Scoped Languages
// ---------------------------------------------------------------------------

func TestFindPatternSymbolPython(t *testing.T) {
	t.Parallel()

	lines := []string{
		"import os",                 // 1
		"",                          // 2
		"def helper():",             // 3
		"    return 1",              // 4
		"",                          // 5
		"class Widget:",             // 6
		"    def __init__(self):",   // 7
		"        self.x = 1",        // 8
		"",                          // 9
		"    def render(self):",     // 10
		"        return self.x",     // 11
		"",                          // 12
		"TOP_LEVEL = 42",            // 13
	}

	tests := []struct {
		name      string
		symbol    string
		wantStart int
		wantEnd   int
	}{
		{name: "function body by indent", symbol: "helper", wantStart: 3, wantEnd: 4},
		{name: "class spans methods", symbol: "Widget", wantStart: 6, wantEnd: 11},
		{name: "nested method", symbol: "render", wantStart: 10, wantEnd: 11},
		{name: "assignment", symbol: "TOP_LEVEL", wantStart: 13, wantEnd: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			start, end, ok := findSymbol("app.py", lines, tt.symbol)
			if !ok {
				t.Fatalf("symbol %q not found", tt.symbol)
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("span = %d-%d, want %d-%d", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFindPatternSymbol - Brace-Scoped Languages
// ---------------------------------------------------------------------------

func TestFindPatternSymbolJavaScript(t *testing.T) {
	t.Parallel()

	lines := []string{
		"function render(items) {", // 1
		"  if (items.length) {",    // 2
		"    draw(items);",         // 3
		"  }",                      // 4
		"}",                        // 5
		"",                         // 6
		"export class View {",      // 7
		"  show() {}",              // 8
		"}",                        // 9
		"",                         // 10
		"const limit = 10;",        // 11
	}

	tests := []struct {
		name      string
		symbol    string
		wantStart int
		wantEnd   int
	}{
		{name: "function with nested braces", symbol: "render", wantStart: 1, wantEnd: 5},
		{name: "exported class", symbol: "View", wantStart: 7, wantEnd: 9},
		{name: "const without braces", symbol: "limit", wantStart: 11, wantEnd: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			start, end, ok := findSymbol("app.js", lines, tt.symbol)
			if !ok {
				t.Fatalf("symbol %q not found", tt.symbol)
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("span = %d-%d, want %d-%d", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestFindPatternSymbolRust(t *testing.T) {
	t.Parallel()

	lines := []string{
		"pub fn run() -> i32 {",
		"    0",
		"}",
	}

	start, end, ok := findSymbol("lib.rs", lines, "run")
	if !ok {
		t.Fatal("symbol not found")
	}
	if start != 1 || end != 3 {
		t.Errorf("span = %d-%d, want 1-3", start, end)
	}
}

// ---------------------------------------------------------------------------
// TestIsSourceFile - Extension Filter
// ---------------------------------------------------------------------------

func TestIsSourceFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"main.go", true},
		{"app.PY", true},
		{filepath.Join("a", "b", "x.ts"), true},
		{"notes.md", false},
		{"README", false},
		{"style.css", false},
	}

	for _, tt := range tests {
		if got := isSourceFile(tt.path); got != tt.want {
			t.Errorf("isSourceFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
