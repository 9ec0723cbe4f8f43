// Package headers validates the heading structure of a post before
// rendering. The post title belongs in front matter and is rendered by the
// blog engine as the page H1, so a level-1 heading in the body would produce
// a duplicate title on the published page.
package headers

import (
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrTopLevelHeading reports a level-1 heading in the post body.
var ErrTopLevelHeading = errors.New("headers: level-1 heading found, titles belong in front matter")

var parser = goldmark.New()

// Validator checks post markdown for heading violations.
type Validator struct{}

// Check parses content and fails on the first level-1 heading. Parsing with
// a real markdown parser keeps "#" lines inside code fences from triggering
// false positives.
func (v *Validator) Check(content string) error {
	source := []byte(content)
	doc := parser.Parser().Parse(text.NewReader(source))

	var found *ast.Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			found = h
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	if found != nil {
		return fmt.Errorf("%w: %q", ErrTopLevelHeading, headingText(found, source))
	}
	return nil
}

func headingText(h *ast.Heading, source []byte) string {
	if h.Lines().Len() == 0 {
		return ""
	}
	seg := h.Lines().At(0)
	return string(seg.Value(source))
}
