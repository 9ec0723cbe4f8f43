package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// ErrPreviewRender reports a failed markdown-to-HTML conversion.
var ErrPreviewRender = errors.New("pipeline: preview rendering failed")

// previewTemplate wraps Goldmark's fragment output in a complete HTML5
// document so the preview opens directly in a browser.
const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// PreviewConverter renders final post markdown to standalone HTML for local
// review before publishing.
type PreviewConverter struct {
	md goldmark.Markdown
}

// NewPreviewConverter creates a converter with GFM extensions and chroma
// syntax highlighting, matching what the blog engine applies at publish time.
func NewPreviewConverter() *PreviewConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithLineNumbers(false),
					chromahtml.TabWidth(4),
				),
			),
		),
		goldmark.WithRendererOptions(
			htmlrenderer.WithXHTML(),
		),
	)
	return &PreviewConverter{md: md}
}

// ToHTML converts markdown content to a standalone HTML5 document. Goldmark
// has no native context support, so cancellation is handled with a goroutine
// and select.
func (c *PreviewConverter) ToHTML(ctx context.Context, title, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrPreviewRender, err)}
			return
		}
		done <- result{html: fmt.Sprintf(previewTemplate, html.EscapeString(title), buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
