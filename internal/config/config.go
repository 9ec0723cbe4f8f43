// Package config loads the site configuration that drives rendering.
//
// The configuration file, nbpress.yaml, is discovered by walking up from the
// working directory, so commands work from anywhere inside a site checkout.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/nbpress/go-nbpress/internal/fileutil"
	"github.com/nbpress/go-nbpress/internal/yamlutil"
)

// FileName is the configuration file searched for in parent directories.
const FileName = "nbpress.yaml"

// maxSearchLevels bounds the upward directory walk during discovery.
const maxSearchLevels = 6

// Sentinel errors for configuration loading.
var (
	ErrNotFound   = errors.New("config: " + FileName + " not found")
	ErrParse      = errors.New("config: failed to parse")
	ErrMissingDir = errors.New("config: configured directory does not exist")
)

// Config holds all site-level settings for document generation.
type Config struct {
	// Root is the directory containing the configuration file. Set during
	// loading, never read from the file itself.
	Root string `yaml:"-"`

	PathToPosts  string `yaml:"path_to_posts"`
	PathToStatic string `yaml:"path_to_static"`
	PrefixImg    string `yaml:"prefix_img"`

	// Authors is the static author list stamped into every rendered post.
	Authors []string `yaml:"authors"`

	// FooterTemplate is a template file path relative to Root. Empty
	// disables footer injection.
	FooterTemplate string `yaml:"footer_template"`

	URLs URLConfig `yaml:"urls"`
}

// URLConfig holds the base URLs used to derive per-post links.
type URLConfig struct {
	// Source is the base URL of the repository directory holding posts.
	Source string `yaml:"source"`
	// Issue is the issue-creation URL; the escaped post reference is
	// appended as the title query parameter.
	Issue string `yaml:"issue"`
	// Site is the canonical site base for published posts.
	Site string `yaml:"site"`
}

// Validate checks that required fields are present.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.PathToPosts, validation.Required),
		validation.Field(&c.PathToStatic, validation.Required),
	)
}

// PostsDir returns the absolute posts directory.
func (c *Config) PostsDir() string {
	return filepath.Join(c.Root, c.PathToPosts)
}

// StaticDir returns the absolute static output directory.
func (c *Config) StaticDir() string {
	return filepath.Join(c.Root, c.PathToStatic)
}

// FooterTemplatePath returns the absolute footer template path, or "" when
// no footer is configured.
func (c *Config) FooterTemplatePath() string {
	if c.FooterTemplate == "" {
		return ""
	}
	return filepath.Join(c.Root, c.FooterTemplate)
}

// Load discovers and parses the configuration, searching startDir and its
// parents. Both configured directories must exist.
func Load(startDir string) (*Config, error) {
	path, ok := fileutil.FindUpwards(FileName, startDir, maxSearchLevels)
	if !ok {
		return nil, fmt.Errorf("%w: searched %d levels up from %s", ErrNotFound, maxSearchLevels, startDir)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- discovered config path
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	cfg.Root = filepath.Dir(path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	for _, dir := range []string{cfg.PostsDir(), cfg.StaticDir()} {
		if !fileutil.DirExists(dir) {
			return nil, fmt.Errorf("%w: %s", ErrMissingDir, dir)
		}
	}
	return cfg, nil
}

// LoadLocal builds a throwaway configuration rendering into ./output,
// creating the directory if needed. Used for one-off renders outside a site
// checkout.
func LoadLocal(dir string) (*Config, error) {
	out := filepath.Join(dir, "output")
	if err := os.MkdirAll(out, 0o750); err != nil {
		return nil, fmt.Errorf("config: creating %s: %w", out, err)
	}
	return &Config{
		Root:         dir,
		PathToPosts:  ".",
		PathToStatic: "output",
	}, nil
}
