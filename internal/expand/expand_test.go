package expand

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestExpand(t *testing.T) {
	e := &Expander{}

	t.Run("python snippet fenced with language", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "train.py", "import ml\n")

		got, err := e.Expand(`before {{expand("train.py")}} after`, root, "", "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "before ```python\nimport ml\n``` after"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("directive args appended to fence info", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "setup.sh", "make install")

		got, err := e.Expand(`{{expand("setup.sh")}}`, root, "", "", "skip=True")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(got, "```sh skip=True\n") {
			t.Errorf("fence info missing args: %q", got)
		}
	})

	t.Run("markdown inlined verbatim", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "note.md", "## Included\n\ntext\n")

		got, err := e.Expand(`{{expand("note.md")}}`, root, "", "", "skip=True")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(got, "```") {
			t.Errorf("markdown should not be fenced: %q", got)
		}
		if !strings.Contains(got, "## Included") {
			t.Errorf("content missing: %q", got)
		}
	})

	t.Run("single pass does not re-expand included directives", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "outer.md", `{{expand("outer.md")}}`)

		got, err := e.Expand(`{{expand("outer.md")}}`, root, "", "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(got, `{{expand("outer.md")}}`) {
			t.Errorf("inner directive should survive as literal text: %q", got)
		}
	})

	t.Run("missing snippet fails", func(t *testing.T) {
		root := t.TempDir()
		_, err := e.Expand(`{{expand("gone.py")}}`, root, "", "", "")
		if !errors.Is(err, ErrSnippetNotFound) {
			t.Fatalf("error = %v, want ErrSnippetNotFound", err)
		}
	})

	t.Run("path escaping root rejected", func(t *testing.T) {
		root := t.TempDir()
		_, err := e.Expand(`{{expand("../secret.py")}}`, root, "", "", "")
		if !errors.Is(err, ErrOutsideRoot) {
			t.Fatalf("error = %v, want ErrOutsideRoot", err)
		}
	})

	t.Run("url variables substituted", func(t *testing.T) {
		root := t.TempDir()
		content := "See {{url_source}} or report at {{ url_issue }}."

		got, err := e.Expand(content, root, "https://s", "https://i", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "See https://s or report at https://i." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("unknown placeholders untouched", func(t *testing.T) {
		root := t.TempDir()
		content := "keep {{mystery_var}} literal"

		got, err := e.Expand(content, root, "s", "i", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != content {
			t.Errorf("got %q, want unchanged", got)
		}
	})
}
