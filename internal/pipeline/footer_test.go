package pipeline

import (
	"strings"
	"testing"
)

func TestRenderFooter(t *testing.T) {
	vars := FooterVars{
		URLSource:     "https://example.com/src/my-post",
		URLIssue:      "https://example.com/issues/new?title=my-post",
		CanonicalURL:  "https://example.com/posts/my-post",
		CanonicalName: "my-post",
	}

	t.Run("known variables substituted", func(t *testing.T) {
		got, err := RenderFooter("Read at {{.canonical_url}} ({{.canonical_name}})", vars)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "Read at https://example.com/posts/my-post (my-post)"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("unknown variables left as literal placeholders", func(t *testing.T) {
		got, err := RenderFooter("by {{.author_name}} on {{.canonical_name}}", vars)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "by {{.author_name}} on my-post"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("source link gated on flag", func(t *testing.T) {
		tmpl := "{{if .include_source_in_footer}}Source: {{.url_source}}{{end}}footer"

		off, err := RenderFooter(tmpl, vars)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(off, vars.URLSource) {
			t.Errorf("source URL present with flag off: %q", off)
		}

		on := vars
		on.IncludeSourceInFooter = true
		got, err := RenderFooter(tmpl, on)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(got, vars.URLSource) {
			t.Errorf("source URL missing with flag on: %q", got)
		}
	})

	t.Run("invalid template reported", func(t *testing.T) {
		if _, err := RenderFooter("{{if}}", vars); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestAppendFooter(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no trailing newline", "body"},
		{"one trailing newline", "body\n"},
		{"many trailing newlines", "body\n\n\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AppendFooter(tt.content, "FOOTER")
			if got != "body\n\nFOOTER" {
				t.Errorf("got %q, want %q", got, "body\n\nFOOTER")
			}
		})
	}
}
