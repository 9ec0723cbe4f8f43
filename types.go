package nbpress

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// CodeBlock is one fenced code region handed to the executor: the fence's
// full info string (language plus any execution directives) and its body.
type CodeBlock struct {
	Info string
	Text string
}

// ExecutionBlock is a CodeBlock after execution. Output holds the rendered
// result text to inject after the block; Hide requests that the block's
// source be dropped from the final document.
type ExecutionBlock struct {
	Info   string
	Text   string
	Output string
	Hide   bool
}

// RenderResult is the externally visible output of a render call.
type RenderResult struct {
	// Markdown is the final, publish-ready document text.
	Markdown string
	// CanonicalName identifies the post, derived from its containing
	// directory. It feeds stable URLs and image prefixes.
	CanonicalName string
}

// RenderOptions carries per-call parameters.
type RenderOptions struct {
	// IncludeSourceInFooter exposes the source-repository link to the
	// footer template.
	IncludeSourceInFooter bool
}

// CellConverter turns a non-markdown source file into markdown text.
type CellConverter interface {
	Convert(path string) (string, error)
}

// HeaderValidator checks raw markdown before any transformation.
type HeaderValidator interface {
	Check(content string) error
}

// FragmentExpander resolves snippet-inclusion directives. args is appended
// to generated fence info strings so executors can recognize expanded
// snippets.
type FragmentExpander interface {
	Expand(content, rootPath, urlSource, urlIssue, args string) (string, error)
}

// ImageProcessor rewrites image links and reports the first image of a
// document.
type ImageProcessor interface {
	Process(content, prefix string, absolute bool) string
	First(content string) string
}

// ExecutorFactory opens one executor session per render call.
type ExecutorFactory interface {
	NewSession(fm *FrontMatter, imgDir, canonicalName string) (ExecutorSession, error)
}

// ExecutorSession runs the code blocks of a single document. Close releases
// any execution-environment resources (interpreter, kernel, sandbox) and is
// called on every exit path of the render.
type ExecutorSession interface {
	Execute(ctx context.Context, blocks []CodeBlock) ([]ExecutionBlock, error)
	Close() error
}

// URLSet holds the base URLs a renderer derives per-post links from. Any
// base may be empty, in which case the derived link is empty too.
type URLSet struct {
	// SourceBase is the repository directory holding post sources; the
	// canonical name is appended as a path segment.
	SourceBase string
	// IssueBase is an issue-creation URL; the escaped post reference is
	// appended as the title query value.
	IssueBase string
	// SiteBase is the published site prefix for canonical URLs.
	SiteBase string
}

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	postsDir          string
	imgDir            string
	imgPrefix         string
	footerTemplate    string
	urls              URLSet
	authors           []string
	executionDisabled bool
	now               func() time.Time
}

// WithImageDir sets the filesystem directory executors write images into.
func WithImageDir(dir string) Option {
	return func(r *Renderer) { r.cfg.imgDir = dir }
}

// WithImagePrefix sets the markdown image-link prefix. The canonical name is
// appended per post, so different posts never collide.
func WithImagePrefix(prefix string) Option {
	return func(r *Renderer) { r.cfg.imgPrefix = prefix }
}

// WithFooterTemplate sets the footer template text. Empty disables the
// footer stage.
func WithFooterTemplate(tmpl string) Option {
	return func(r *Renderer) { r.cfg.footerTemplate = tmpl }
}

// WithURLs sets the base URLs for derived per-post links.
func WithURLs(urls URLSet) Option {
	return func(r *Renderer) { r.cfg.urls = urls }
}

// WithAuthors sets the static author list stamped into rendered posts.
func WithAuthors(authors []string) Option {
	return func(r *Renderer) { r.cfg.authors = authors }
}

// WithExecutionDisabled renders posts that request execution without running
// their code. Blocks keep their source text and no output is injected.
func WithExecutionDisabled() Option {
	return func(r *Renderer) { r.cfg.executionDisabled = true }
}

// WithLogger sets the structured logger used by the renderer.
func WithLogger(logger *log.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

// WithCellConverter replaces the default notebook converter.
func WithCellConverter(c CellConverter) Option {
	return func(r *Renderer) { r.converter = c }
}

// WithHeaderValidator replaces the default heading validator.
func WithHeaderValidator(v HeaderValidator) Option {
	return func(r *Renderer) { r.headers = v }
}

// WithFragmentExpander replaces the default snippet expander.
func WithFragmentExpander(e FragmentExpander) Option {
	return func(r *Renderer) { r.expander = e }
}

// WithImageProcessor replaces the default image-link processor.
func WithImageProcessor(p ImageProcessor) Option {
	return func(r *Renderer) { r.images = p }
}

// WithExecutorFactory wires in the execution engine for posts that set
// execute_code.
func WithExecutorFactory(f ExecutorFactory) Option {
	return func(r *Renderer) { r.executor = f }
}
