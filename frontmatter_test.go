package md2html

// Notes:
// - ExtractFrontMatter: detection rules, unterminated and invalid headers
// - LoadSidecar: .yaml/.yml probing order with real temp files
// - MergeFrontMatter: inline-wins precedence on key collision

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-md2html/internal/yamlutil"
)

// ---------------------------------------------------------------------------
// TestExtractFrontMatter - Inline Header Detection
// ---------------------------------------------------------------------------

func TestExtractFrontMatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		wantMeta map[string]any
		wantBody string
	}{
		{
			name:     "no frontmatter",
			content:  "# Hello\n\nWorld",
			wantMeta: map[string]any{},
			wantBody: "# Hello\n\nWorld",
		},
		{
			name:     "valid frontmatter",
			content:  "---\ntitle: My Doc\nauthor: Jane\n---\n# Hello",
			wantMeta: map[string]any{"title": "My Doc", "author": "Jane"},
			wantBody: "# Hello",
		},
		{
			name:     "empty header block",
			content:  "---\n---\nbody",
			wantMeta: map[string]any{},
			wantBody: "body",
		},
		{
			name:     "delimiter with trailing spaces",
			content:  "---  \ntitle: T\n---\t\nbody",
			wantMeta: map[string]any{"title": "T"},
			wantBody: "body",
		},
		{
			name:     "unterminated header returns whole content",
			content:  "---\ntitle: T\n# Hello",
			wantMeta: map[string]any{},
			wantBody: "---\ntitle: T\n# Hello",
		},
		{
			name:     "invalid yaml leaves content untouched",
			content:  "---\n[not yaml\n---\nbody",
			wantMeta: map[string]any{},
			wantBody: "---\n[not yaml\n---\nbody",
		},
		{
			name:     "delimiter not on first line is body",
			content:  "intro\n---\ntitle: T\n---",
			wantMeta: map[string]any{},
			wantBody: "intro\n---\ntitle: T\n---",
		},
		{
			name:     "empty content",
			content:  "",
			wantMeta: map[string]any{},
			wantBody: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			meta, body := ExtractFrontMatter(tt.content)

			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
			if len(meta) != len(tt.wantMeta) {
				t.Fatalf("meta has %d keys, want %d: %v", len(meta), len(tt.wantMeta), meta)
			}
			for k, want := range tt.wantMeta {
				if got := meta[k]; got != want {
					t.Errorf("meta[%q] = %v, want %v", k, got, want)
				}
			}
		})
	}
}

func TestExtractFrontMatterListValues(t *testing.T) {
	t.Parallel()

	meta, _ := ExtractFrontMatter("---\ntags:\n  - go\n  - markdown\n---\nbody")

	tags, ok := meta["tags"].([]any)
	if !ok {
		t.Fatalf("tags = %T, want []any", meta["tags"])
	}
	if len(tags) != 2 || tags[0] != "go" || tags[1] != "markdown" {
		t.Errorf("tags = %v, want [go markdown]", tags)
	}
}

func TestExtractFrontMatterRoundTrip(t *testing.T) {
	t.Parallel()

	// Serializing the extracted mapping back into a header and
	// re-extracting yields the same mapping and body.
	content := "---\ntitle: My Doc\nauthor: Jane\ntags:\n  - go\n---\n# Hello\n\nbody text"
	meta, body := ExtractFrontMatter(content)

	header, err := yamlutil.Marshal(map[string]any(meta))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	rebuilt := "---\n" + string(header) + "---\n" + body

	meta2, body2 := ExtractFrontMatter(rebuilt)
	if body2 != body {
		t.Errorf("body changed across round trip: %q vs %q", body2, body)
	}
	if len(meta2) != len(meta) {
		t.Fatalf("key count changed: %d vs %d", len(meta2), len(meta))
	}
	for k := range meta {
		if _, ok := meta2[k]; !ok {
			t.Errorf("key %q lost across round trip", k)
		}
	}
	if meta2["title"] != meta["title"] || meta2["author"] != meta["author"] {
		t.Errorf("scalar values changed: %v vs %v", meta2, meta)
	}
}

// ---------------------------------------------------------------------------
// TestLoadSidecar - Companion Metadata Files
// ---------------------------------------------------------------------------

func TestLoadSidecar(t *testing.T) {
	t.Parallel()

	t.Run("loads yaml sidecar", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		mdPath := filepath.Join(dir, "doc.md")
		writeTestFile(t, mdPath, "# Doc")
		writeTestFile(t, filepath.Join(dir, "doc.yaml"), "author: Jane\n")

		meta := LoadSidecar(mdPath)
		if meta["author"] != "Jane" {
			t.Errorf("author = %v, want Jane", meta["author"])
		}
	})

	t.Run("falls back to yml extension", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		mdPath := filepath.Join(dir, "doc.md")
		writeTestFile(t, mdPath, "# Doc")
		writeTestFile(t, filepath.Join(dir, "doc.yml"), "author: Jane\n")

		meta := LoadSidecar(mdPath)
		if meta["author"] != "Jane" {
			t.Errorf("author = %v, want Jane", meta["author"])
		}
	})

	t.Run("yaml wins over yml", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		mdPath := filepath.Join(dir, "doc.md")
		writeTestFile(t, mdPath, "# Doc")
		writeTestFile(t, filepath.Join(dir, "doc.yaml"), "source: yaml\n")
		writeTestFile(t, filepath.Join(dir, "doc.yml"), "source: yml\n")

		meta := LoadSidecar(mdPath)
		if meta["source"] != "yaml" {
			t.Errorf("source = %v, want yaml", meta["source"])
		}
	})

	t.Run("missing sidecar yields empty mapping", func(t *testing.T) {
		t.Parallel()

		meta := LoadSidecar(filepath.Join(t.TempDir(), "doc.md"))
		if len(meta) != 0 {
			t.Errorf("meta = %v, want empty", meta)
		}
	})

	t.Run("invalid sidecar yaml yields empty mapping", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		mdPath := filepath.Join(dir, "doc.md")
		writeTestFile(t, filepath.Join(dir, "doc.yaml"), "[not yaml")

		meta := LoadSidecar(mdPath)
		if len(meta) != 0 {
			t.Errorf("meta = %v, want empty", meta)
		}
	})

	t.Run("empty path yields empty mapping", func(t *testing.T) {
		t.Parallel()

		if meta := LoadSidecar(""); len(meta) != 0 {
			t.Errorf("meta = %v, want empty", meta)
		}
	})
}

// ---------------------------------------------------------------------------
// TestMergeFrontMatter - Precedence
// ---------------------------------------------------------------------------

func TestMergeFrontMatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		inline  FrontMatter
		sidecar FrontMatter
		want    map[string]any
	}{
		{
			name:    "inline wins on collision",
			inline:  FrontMatter{"title": "Inline"},
			sidecar: FrontMatter{"title": "Sidecar", "author": "Jane"},
			want:    map[string]any{"title": "Inline", "author": "Jane"},
		},
		{
			name:    "sidecar fills gaps",
			inline:  FrontMatter{},
			sidecar: FrontMatter{"author": "Jane"},
			want:    map[string]any{"author": "Jane"},
		},
		{
			name:    "both empty",
			inline:  FrontMatter{},
			sidecar: FrontMatter{},
			want:    map[string]any{},
		},
		{
			name:    "nil maps tolerated",
			inline:  nil,
			sidecar: nil,
			want:    map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			merged := MergeFrontMatter(tt.inline, tt.sidecar)

			if merged == nil {
				t.Fatal("merged mapping is nil")
			}
			if len(merged) != len(tt.want) {
				t.Fatalf("merged has %d keys, want %d", len(merged), len(tt.want))
			}
			for k, want := range tt.want {
				if got := merged[k]; got != want {
					t.Errorf("merged[%q] = %v, want %v", k, got, want)
				}
			}
		})
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
