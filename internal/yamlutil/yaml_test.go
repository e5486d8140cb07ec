package yamlutil

// Notes:
// - Unmarshal: input validation (nil, oversized, nil destination)
// - Marshal/Unmarshal round trip through map values

import (
	"errors"
	"strings"
	"testing"
)

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	t.Run("valid mapping", func(t *testing.T) {
		t.Parallel()

		var out map[string]any
		if err := Unmarshal([]byte("title: Doc\ncount: 3\n"), &out); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if out["title"] != "Doc" {
			t.Errorf("title = %v", out["title"])
		}
	})

	t.Run("empty data", func(t *testing.T) {
		t.Parallel()

		var out map[string]any
		if err := Unmarshal(nil, &out); !errors.Is(err, ErrNilData) {
			t.Errorf("err = %v, want ErrNilData", err)
		}
	})

	t.Run("nil destination", func(t *testing.T) {
		t.Parallel()

		if err := Unmarshal([]byte("a: 1"), nil); !errors.Is(err, ErrNilDestination) {
			t.Errorf("err = %v, want ErrNilDestination", err)
		}
	})

	t.Run("oversized input", func(t *testing.T) {
		t.Parallel()

		var out map[string]any
		big := []byte("a: " + strings.Repeat("x", MaxInputSize))
		if err := Unmarshal(big, &out); !errors.Is(err, ErrInputTooLarge) {
			t.Errorf("err = %v, want ErrInputTooLarge", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		var out map[string]any
		if err := Unmarshal([]byte("[unclosed"), &out); err == nil {
			t.Error("invalid YAML did not error")
		}
	})
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	in := map[string]any{"title": "Doc", "tags": []any{"a", "b"}}
	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var out map[string]any
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out["title"] != "Doc" {
		t.Errorf("title = %v", out["title"])
	}
	tags, ok := out["tags"].([]any)
	if !ok || len(tags) != 2 {
		t.Errorf("tags = %v", out["tags"])
	}
}
