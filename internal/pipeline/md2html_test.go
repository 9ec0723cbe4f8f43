package pipeline

import (
	"context"
	"strings"
	"testing"
)

func TestPreviewConverterToHTML(t *testing.T) {
	conv := NewPreviewConverter()
	ctx := context.Background()

	t.Run("produces standalone document", func(t *testing.T) {
		got, err := conv.ToHTML(ctx, "my-post", "# Hello\n\nWorld")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"<!DOCTYPE html>", "<title>my-post</title>", "<h1", "Hello"} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("highlights fenced code", func(t *testing.T) {
		got, err := conv.ToHTML(ctx, "p", "```python\nprint(1)\n```\n")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(got, "<pre") {
			t.Errorf("expected highlighted pre block:\n%s", got)
		}
	})

	t.Run("title escaped", func(t *testing.T) {
		got, err := conv.ToHTML(ctx, "a<b", "x")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(got, "<title>a&lt;b</title>") {
			t.Errorf("title not escaped:\n%s", got)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := conv.ToHTML(cancelled, "t", "x"); err == nil {
			t.Fatal("expected context error")
		}
	})
}
