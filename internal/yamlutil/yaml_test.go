package yamlutil

import (
	"errors"
	"testing"
)

func TestUnmarshal(t *testing.T) {
	t.Run("decodes mapping", func(t *testing.T) {
		var got map[string]any
		if err := Unmarshal([]byte("title: hello\ncount: 3\n"), &got); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got["title"] != "hello" {
			t.Errorf("title = %v, want hello", got["title"])
		}
	})

	t.Run("empty input leaves destination untouched", func(t *testing.T) {
		var got map[string]any
		if err := Unmarshal(nil, &got); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("destination = %v, want nil", got)
		}
	})

	t.Run("nil destination rejected", func(t *testing.T) {
		if err := Unmarshal([]byte("a: 1"), nil); !errors.Is(err, ErrNilDestination) {
			t.Fatalf("error = %v, want ErrNilDestination", err)
		}
	})

	t.Run("invalid yaml reported", func(t *testing.T) {
		var got map[string]any
		if err := Unmarshal([]byte("a: [unclosed"), &got); err == nil {
			t.Fatal("expected error for invalid YAML")
		}
	})
}

func TestUnmarshalStrict(t *testing.T) {
	type cfg struct {
		Name string `yaml:"name"`
	}

	t.Run("known fields pass", func(t *testing.T) {
		var got cfg
		if err := UnmarshalStrict([]byte("name: x\n"), &got); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		var got cfg
		if err := UnmarshalStrict([]byte("name: x\nbogus: y\n"), &got); err == nil {
			t.Fatal("expected error for unknown field")
		}
	})
}

func TestMarshalRoundTrip(t *testing.T) {
	in := map[string]any{"title": "T", "toc": true}

	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var out map[string]any
	if err := Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out["title"] != "T" {
		t.Errorf("title = %v, want T", out["title"])
	}
	if out["toc"] != true {
		t.Errorf("toc = %v, want true", out["toc"])
	}
}
