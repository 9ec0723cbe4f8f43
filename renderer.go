package nbpress

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nbpress/go-nbpress/internal/expand"
	"github.com/nbpress/go-nbpress/internal/frontmatter"
	"github.com/nbpress/go-nbpress/internal/headers"
	"github.com/nbpress/go-nbpress/internal/images"
	"github.com/nbpress/go-nbpress/internal/notebook"
	"github.com/nbpress/go-nbpress/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ CellConverter    = (*notebook.Converter)(nil)
	_ HeaderValidator  = (*headers.Validator)(nil)
	_ FragmentExpander = (*expand.Expander)(nil)
	_ ImageProcessor   = imageProcessor{}
)

// markdownExt is the native source format; anything else goes through the
// cell converter first.
const markdownExt = ".md"

// expandArgs is appended to fences generated by expansion so executors skip
// them: expanded snippets are shown, never run.
const expandArgs = "skip=True"

// dateLayout is ISO-8601 with UTC offset at second precision.
const dateLayout = "2006-01-02T15:04:05-07:00"

// Renderer orchestrates the render pipeline for posts under one directory.
// A Renderer is immutable after construction and safe for concurrent use;
// every render call operates on its own copies of text and metadata.
type Renderer struct {
	cfg       rendererConfig
	logger    *log.Logger
	converter CellConverter
	headers   HeaderValidator
	expander  FragmentExpander
	images    ImageProcessor
	executor  ExecutorFactory
}

// NewRenderer creates a Renderer for posts under postsDir. Use options to
// customize behavior (e.g., WithFooterTemplate, WithExecutorFactory).
func NewRenderer(postsDir string, opts ...Option) *Renderer {
	r := &Renderer{
		cfg: rendererConfig{
			postsDir: postsDir,
			now:      time.Now,
		},
		logger:    log.Default(),
		converter: &notebook.Converter{},
		headers:   &headers.Validator{},
		expander:  &expand.Expander{},
		images:    imageProcessor{},
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render runs the full pipeline for the post at name, a path relative to the
// posts directory. It returns the final markdown and the post's canonical
// name. Any collaborator failure aborts the render; no partial output is
// returned.
func (r *Renderer) Render(ctx context.Context, name string, opts RenderOptions) (*RenderResult, error) {
	if name == "" {
		return nil, ErrEmptyPostName
	}

	srcPath := filepath.Join(r.cfg.postsDir, name)
	content, err := r.load(srcPath)
	if err != nil {
		return nil, err
	}

	if err := r.headers.Check(content); err != nil {
		return nil, err
	}

	// First parse validates document structure before any transformation.
	structure := pipeline.ParseBlocks(content)

	meta, err := frontmatter.Parse(content, true)
	if err != nil {
		return nil, err
	}
	fm, err := NewFrontMatter(meta)
	if err != nil {
		return nil, err
	}

	canonical, err := canonicalName(srcPath)
	if err != nil {
		return nil, err
	}
	urlSource, urlIssue := r.deriveURLs(canonical)

	r.logger.Debug("rendering post",
		"post", canonical, "blocks", len(structure),
		"expand", fm.Settings.AllowExpand, "execute", fm.Settings.ExecuteCode)

	if fm.Settings.AllowExpand {
		content, err = r.expander.Expand(content, r.cfg.postsDir, urlSource, urlIssue, expandArgs)
		if err != nil {
			return nil, err
		}
		r.logger.Debug("expanded snippet directives", "post", canonical)
	}

	if fm.Settings.ExecuteCode && !r.cfg.executionDisabled {
		content, err = r.runSnippets(ctx, content, fm, canonical)
		if err != nil {
			return nil, err
		}
		r.logger.Debug("merged execution output", "post", canonical)
	}

	meta["date"] = r.cfg.now().Format(dateLayout)
	meta["authors"] = append([]string{}, r.cfg.authors...)
	meta["toc"] = true

	if r.cfg.footerTemplate != "" {
		footer, err := pipeline.RenderFooter(r.cfg.footerTemplate, pipeline.FooterVars{
			URLSource:             urlSource,
			URLIssue:              urlIssue,
			IncludeSourceInFooter: opts.IncludeSourceInFooter,
			CanonicalURL:          r.canonicalURL(canonical),
			CanonicalName:         canonical,
		})
		if err != nil {
			return nil, err
		}
		content = pipeline.AppendFooter(content, footer)
	}

	var prefix string
	if r.cfg.imgPrefix != "" {
		prefix = path.Join(r.cfg.imgPrefix, canonical)
	}
	content = r.images.Process(content, prefix, false)
	if first := r.images.First(content); first != "" {
		meta["images"] = []string{first}
	}

	final, err := frontmatter.Replace(content, meta)
	if err != nil {
		return nil, err
	}

	return &RenderResult{Markdown: final, CanonicalName: canonical}, nil
}

// load reads the post source, converting non-markdown formats first.
func (r *Renderer) load(srcPath string) (string, error) {
	if filepath.Ext(srcPath) != markdownExt {
		return r.converter.Convert(srcPath)
	}

	raw, err := os.ReadFile(srcPath) // #nosec G304 -- post path comes from the posts directory
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadPost, err)
	}
	return string(raw), nil
}

// runSnippets executes the document's code blocks inside one scoped executor
// session and merges the results back into the text. The session is closed
// on every exit path.
func (r *Renderer) runSnippets(ctx context.Context, content string, fm *FrontMatter, canonical string) (merged string, err error) {
	if r.executor == nil {
		return "", ErrNoExecutor
	}

	session, err := r.executor.NewSession(fm, r.cfg.imgDir, canonical)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	// Re-parse: expansion may have introduced new blocks.
	parsed := pipeline.ParseBlocks(content)
	blocks := make([]CodeBlock, len(parsed))
	for i, b := range parsed {
		blocks[i] = CodeBlock{Info: b.Info, Text: b.Text}
	}

	executed, err := session.Execute(ctx, blocks)
	if err != nil {
		return "", err
	}

	outputs := make([]string, len(executed))
	for i, b := range executed {
		outputs[i] = b.Output
	}
	merged = pipeline.InjectOutputs(content, outputs)

	for _, b := range executed {
		if b.Hide {
			merged = pipeline.RemoveHiddenBlock(merged, b.Info, b.Text)
		}
	}
	for _, b := range executed {
		merged = pipeline.StripInfoDirectives(merged, b.Info)
	}
	return merged, nil
}

// deriveURLs builds the per-post repository and issue links.
func (r *Renderer) deriveURLs(canonical string) (urlSource, urlIssue string) {
	if r.cfg.urls.SourceBase != "" {
		urlSource = strings.TrimRight(r.cfg.urls.SourceBase, "/") + "/" + canonical
	}
	if r.cfg.urls.IssueBase != "" {
		urlIssue = r.cfg.urls.IssueBase + url.QueryEscape("Issue in "+canonical)
	}
	return urlSource, urlIssue
}

// canonicalURL builds the published location of a post.
func (r *Renderer) canonicalURL(canonical string) string {
	if r.cfg.urls.SiteBase == "" {
		return ""
	}
	return strings.TrimRight(r.cfg.urls.SiteBase, "/") + "/" + canonical
}

// canonicalName derives the post identifier from the resolved parent
// directory of the source path.
func canonicalName(srcPath string) (string, error) {
	abs, err := filepath.Abs(srcPath)
	if err != nil {
		return "", fmt.Errorf("nbpress: resolving %q: %w", srcPath, err)
	}
	return filepath.Base(filepath.Dir(abs)), nil
}

// imageProcessor adapts the images package to the ImageProcessor interface.
type imageProcessor struct{}

func (imageProcessor) Process(content, prefix string, absolute bool) string {
	return images.Process(content, prefix, absolute)
}

func (imageProcessor) First(content string) string {
	return images.First(content)
}
