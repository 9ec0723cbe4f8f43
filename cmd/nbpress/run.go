package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	nbpress "github.com/nbpress/go-nbpress"
	"github.com/nbpress/go-nbpress/internal/config"
	"github.com/nbpress/go-nbpress/internal/frontmatter"
	"github.com/nbpress/go-nbpress/internal/hints"
	"github.com/nbpress/go-nbpress/internal/pipeline"
)

// ErrNoPosts reports that neither post arguments nor --all were given.
var ErrNoPosts = errors.New("usage: nbpress [flags] <post>... | nbpress --all")

// sourceExtensions are the file extensions treated as post sources.
var sourceExtensions = map[string]bool{".md": true, ".ipynb": true}

// run loads configuration, builds the renderer pool, and renders the
// requested posts.
func run(ctx context.Context, flags *cliFlags, args []string, logger *log.Logger) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	posts := args
	if flags.all || flags.watch {
		posts, err = discoverPosts(cfg.PostsDir())
		if err != nil {
			return err
		}
	}
	if len(posts) == 0 {
		return ErrNoPosts
	}

	factory, err := rendererFactory(cfg, flags, logger)
	if err != nil {
		return err
	}

	pool := nbpress.NewRendererPool(nbpress.ResolvePoolSize(flags.workers), factory)
	defer pool.Close()

	if err := renderAll(ctx, pool, cfg, flags, posts, logger); err != nil {
		return err
	}

	if flags.watch {
		return watch(ctx, pool, cfg, flags, logger)
	}
	return nil
}

// loadConfig resolves the site configuration, or a throwaway local one.
func loadConfig(flags *cliFlags) (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if flags.local {
		return config.LoadLocal(wd)
	}

	cfg, err := config.Load(wd)
	if errors.Is(err, config.ErrNotFound) {
		return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound())
	}
	return cfg, err
}

// rendererFactory builds the renderer constructor shared by the pool.
func rendererFactory(cfg *config.Config, flags *cliFlags, logger *log.Logger) (func() *nbpress.Renderer, error) {
	opts := []nbpress.Option{
		nbpress.WithLogger(logger),
		nbpress.WithImagePrefix(cfg.PrefixImg),
		nbpress.WithImageDir(cfg.StaticDir()),
		nbpress.WithAuthors(cfg.Authors),
		nbpress.WithURLs(nbpress.URLSet{
			SourceBase: cfg.URLs.Source,
			IssueBase:  cfg.URLs.Issue,
			SiteBase:   cfg.URLs.Site,
		}),
	}

	if path := cfg.FooterTemplatePath(); path != "" {
		tmpl, err := os.ReadFile(path) // #nosec G304 -- template path comes from site config
		if err != nil {
			return nil, fmt.Errorf("reading footer template: %w", err)
		}
		opts = append(opts, nbpress.WithFooterTemplate(string(tmpl)))
	}

	if flags.noExecute {
		opts = append(opts, nbpress.WithExecutionDisabled())
	}

	postsDir := cfg.PostsDir()
	return func() *nbpress.Renderer {
		return nbpress.NewRenderer(postsDir, opts...)
	}, nil
}

// renderAll renders posts concurrently through the pool and writes results
// into the static directory.
func renderAll(ctx context.Context, pool *nbpress.RendererPool, cfg *config.Config, flags *cliFlags, posts []string, logger *log.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(pool.Size())

	for _, post := range posts {
		g.Go(func() error {
			r := pool.Acquire()
			defer pool.Release(r)
			return renderOne(ctx, r, cfg, flags, post, logger)
		})
	}
	return g.Wait()
}

// renderOne renders a single post and writes the markdown (and optional HTML
// preview) into the static directory.
func renderOne(ctx context.Context, r *nbpress.Renderer, cfg *config.Config, flags *cliFlags, post string, logger *log.Logger) error {
	result, err := r.Render(ctx, post, nbpress.RenderOptions{
		IncludeSourceInFooter: flags.includeSource,
	})
	if err != nil {
		return decorate(fmt.Errorf("rendering %s: %w", post, err))
	}

	outPath := filepath.Join(cfg.StaticDir(), result.CanonicalName+".md")
	if err := os.WriteFile(outPath, []byte(result.Markdown), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	logger.Info("rendered", "post", result.CanonicalName, "out", outPath)

	if !flags.preview {
		return nil
	}

	title := result.CanonicalName
	if meta, err := frontmatter.Parse(result.Markdown, false); err == nil {
		if t, ok := meta["title"].(string); ok {
			title = t
		}
	}

	html, err := pipeline.NewPreviewConverter().ToHTML(ctx, title, frontmatter.Delete(result.Markdown))
	if err != nil {
		return err
	}
	htmlPath := filepath.Join(cfg.StaticDir(), result.CanonicalName+".html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", htmlPath, err)
	}
	logger.Info("preview written", "out", htmlPath)
	return nil
}

// discoverPosts lists renderable sources, one per post directory. A post
// directory holds either a markdown file or a notebook; markdown wins when
// both exist.
func discoverPosts(postsDir string) ([]string, error) {
	entries, err := os.ReadDir(postsDir)
	if err != nil {
		return nil, fmt.Errorf("reading posts directory: %w", err)
	}

	var posts []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		source, ok, err := findSource(filepath.Join(postsDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if ok {
			posts = append(posts, filepath.Join(entry.Name(), source))
		}
	}
	return posts, nil
}

// findSource picks the post source inside one post directory.
func findSource(dir string) (string, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, fmt.Errorf("reading post directory: %w", err)
	}

	var notebook string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch ext := strings.ToLower(filepath.Ext(entry.Name())); {
		case ext == ".md":
			return entry.Name(), true, nil
		case sourceExtensions[ext] && notebook == "":
			notebook = entry.Name()
		}
	}
	return notebook, notebook != "", nil
}

// decorate appends an actionable hint to known error classes.
func decorate(err error) error {
	switch {
	case errors.Is(err, nbpress.ErrNoExecutor):
		return fmt.Errorf("%w%s", err, hints.ForNoExecutor())
	case errors.Is(err, frontmatter.ErrMissing):
		return fmt.Errorf("%w%s", err, hints.ForMissingFrontMatter())
	default:
		return err
	}
}
