package md2html

// Notes:
// - detectLanguage: extension map, chroma filename fallback, bare extension
// - Highlight: class-based output for known languages, ok=false otherwise
// - CSS: non-empty rules for the configured style

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDetectLanguage - Extension Mapping
// ---------------------------------------------------------------------------

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"main.go", "go"},
		{"app.py", "python"},
		{"script.SH", "bash"},
		{"component.tsx", "tsx"},
		{"config.yaml", "yaml"},
		{"config.yml", "yaml"},
		{"unknown.zzz", "zzz"},
	}

	for _, tt := range tests {
		if got := detectLanguage(tt.path); got != tt.want {
			t.Errorf("detectLanguage(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHighlight - Chroma Output
// ---------------------------------------------------------------------------

func TestHighlight(t *testing.T) {
	t.Parallel()

	h := newHighlighter(defaultHighlightStyle)

	t.Run("known language", func(t *testing.T) {
		t.Parallel()

		out, ok := h.Highlight("func main() {}", "go")
		if !ok {
			t.Fatal("highlighting go failed")
		}
		if !strings.Contains(out, "<span") {
			t.Errorf("output has no token spans: %q", out)
		}
		if !strings.Contains(out, "class=") {
			t.Errorf("output has no CSS classes: %q", out)
		}
		if strings.Contains(out, "style=") {
			t.Errorf("output has inline styles, want classes only: %q", out)
		}
	})

	t.Run("empty language", func(t *testing.T) {
		t.Parallel()

		if _, ok := h.Highlight("code", ""); ok {
			t.Error("empty language reported ok")
		}
	})

	t.Run("unknown language", func(t *testing.T) {
		t.Parallel()

		if _, ok := h.Highlight("code", "not-a-language-zzz"); ok {
			t.Error("unknown language reported ok")
		}
	})
}

func TestHighlighterCSS(t *testing.T) {
	t.Parallel()

	h := newHighlighter(defaultHighlightStyle)
	css := h.CSS()
	if css == "" {
		t.Fatal("CSS is empty")
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("CSS has no chroma class rules: %q", css[:min(len(css), 100)])
	}
}

func TestHighlighterUnknownStyleFallsBack(t *testing.T) {
	t.Parallel()

	h := newHighlighter("no-such-style-zzz")
	if h.style == nil {
		t.Fatal("style is nil for unknown style name")
	}
	if _, ok := h.Highlight("x = 1", "python"); !ok {
		t.Error("highlighting failed with fallback style")
	}
}
