package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeSite(t *testing.T, root, yaml string) {
	t.Helper()
	for _, d := range []string{"posts", "static"} {
		if err := os.MkdirAll(filepath.Join(root, d), 0o750); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, FileName), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
}

const validYAML = `path_to_posts: posts
path_to_static: static
prefix_img: images
authors:
  - Ada Lovelace
urls:
  source: https://github.com/example/posts/tree/master
  issue: https://github.com/example/posts/issues/new?title=
  site: https://example.com/posts
`

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		root := t.TempDir()
		writeSite(t, root, validYAML)

		cfg, err := Load(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.PostsDir() != filepath.Join(root, "posts") {
			t.Errorf("PostsDir = %q", cfg.PostsDir())
		}
		if cfg.PrefixImg != "images" {
			t.Errorf("PrefixImg = %q", cfg.PrefixImg)
		}
		if len(cfg.Authors) != 1 || cfg.Authors[0] != "Ada Lovelace" {
			t.Errorf("Authors = %v", cfg.Authors)
		}
	})

	t.Run("discovered from nested directory", func(t *testing.T) {
		root := t.TempDir()
		writeSite(t, root, validYAML)
		nested := filepath.Join(root, "posts", "my-post")
		if err := os.MkdirAll(nested, 0o750); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(nested)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Root != root {
			t.Errorf("Root = %q, want %q", cfg.Root, root)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := Load(t.TempDir()); !errors.Is(err, ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("missing required field", func(t *testing.T) {
		root := t.TempDir()
		writeSite(t, root, "path_to_posts: posts\n")
		if _, err := Load(root); err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("missing posts directory", func(t *testing.T) {
		root := t.TempDir()
		writeSite(t, root, validYAML)
		if err := os.RemoveAll(filepath.Join(root, "posts")); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(root); !errors.Is(err, ErrMissingDir) {
			t.Fatalf("error = %v, want ErrMissingDir", err)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		root := t.TempDir()
		writeSite(t, root, validYAML+"bogus_key: 1\n")
		if _, err := Load(root); !errors.Is(err, ErrParse) {
			t.Fatalf("error = %v, want ErrParse", err)
		}
	})
}

func TestLoadLocal(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StaticDir() != filepath.Join(dir, "output") {
		t.Errorf("StaticDir = %q", cfg.StaticDir())
	}
	if _, err := os.Stat(filepath.Join(dir, "output")); err != nil {
		t.Errorf("output directory not created: %v", err)
	}
}

func TestFooterTemplatePath(t *testing.T) {
	cfg := &Config{Root: "/site"}
	if got := cfg.FooterTemplatePath(); got != "" {
		t.Errorf("empty template should yield empty path, got %q", got)
	}
	cfg.FooterTemplate = "footer.tmpl"
	if got := cfg.FooterTemplatePath(); got != filepath.Join("/site", "footer.tmpl") {
		t.Errorf("got %q", got)
	}
}
