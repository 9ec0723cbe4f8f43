package pipeline

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// CodeBlock is one fenced code region found in a document tree. Info carries
// the fence's full info string, which may include execution directives after
// the language token. Text always ends with a newline for non-empty blocks,
// mirroring how the fence body appears in the source.
type CodeBlock struct {
	Info string
	Text string
}

// treeParser is configured once; goldmark.Markdown is safe for concurrent use.
var treeParser = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// ParseBlocks parses content into a document tree and returns its fenced
// code blocks in source order. Parsing markdown never fails; a document with
// no fences yields an empty slice.
func ParseBlocks(content string) []CodeBlock {
	source := []byte(content)
	doc := treeParser.Parser().Parse(text.NewReader(source))

	var blocks []CodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var info string
		if fence.Info != nil {
			info = string(fence.Info.Segment.Value(source))
		}

		var buf bytes.Buffer
		for i := 0; i < fence.Lines().Len(); i++ {
			seg := fence.Lines().At(i)
			buf.Write(seg.Value(source))
		}

		blocks = append(blocks, CodeBlock{Info: info, Text: buf.String()})
		return ast.WalkContinue, nil
	})
	return blocks
}
