// Package frontmatter locates, parses, deletes, and re-serializes the YAML
// metadata block at the top of a markdown document.
//
// A metadata block is the region delimited by the first two lines that equal
// "---" exactly. The opening marker must sit on the very first line. Later
// literal "---" lines (horizontal rules, YAML document separators inside code
// blocks) are never misidentified because scanning stops at the second marker.
package frontmatter

import (
	"errors"
	"fmt"

	"github.com/nbpress/go-nbpress/internal/linespan"
	"github.com/nbpress/go-nbpress/internal/yamlutil"
)

// Marker delimits the metadata block.
const Marker = "---"

// Sentinel errors for front matter operations.
var (
	ErrMissing      = errors.New("frontmatter: document has no YAML front matter")
	ErrMalformed    = errors.New("frontmatter: malformed front matter")
	ErrMissingField = errors.New("frontmatter: required field missing")
)

// requiredFields must be present when parsing with validation. description is
// required because Open Graph tags on the blog engine depend on it.
var requiredFields = []string{"title", "description"}

// Locate returns the 0-indexed line positions of the opening and closing
// markers. It fails with ErrMissing when no marker line exists at all, and
// with ErrMalformed when the opening marker is not the first line or the
// closing marker is absent.
func Locate(content string) (start, end int, err error) {
	var idx []int
	for i, line := range linespan.Lines(content) {
		if line == Marker {
			idx = append(idx, i)
		}
		if len(idx) == 2 {
			break
		}
	}

	if len(idx) == 0 {
		return 0, 0, ErrMissing
	}
	if idx[0] != 0 {
		return 0, 0, fmt.Errorf("%w: metadata not located at the top (line %d)", ErrMalformed, idx[0]+1)
	}
	if len(idx) < 2 {
		return 0, 0, fmt.Errorf("%w: closing %s marker not found", ErrMalformed, Marker)
	}
	return idx[0], idx[1], nil
}

// Parse locates the metadata block and YAML-decodes the enclosed lines. An
// empty block decodes to an empty mapping. When validate is true, the mapping
// must contain every required field or ErrMissingField is returned.
func Parse(content string, validate bool) (map[string]any, error) {
	start, end, err := Locate(content)
	if err != nil {
		return nil, err
	}

	lines := linespan.Lines(content)
	block := linespan.Join(lines[start+1 : end])

	meta := map[string]any{}
	if err := yamlutil.Unmarshal([]byte(block), &meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if validate {
		if err := Validate(meta); err != nil {
			return nil, err
		}
	}
	return meta, nil
}

// Validate checks that every required field is present in the mapping.
func Validate(meta map[string]any) error {
	for _, field := range requiredFields {
		if _, ok := meta[field]; !ok {
			return fmt.Errorf("%w: %q in %v", ErrMissingField, field, meta)
		}
	}
	return nil
}

// Delete removes the metadata block, both markers included. Documents without
// front matter are returned unchanged, which makes deletion idempotent.
func Delete(content string) string {
	_, end, err := Locate(content)
	if err != nil {
		return content
	}
	return linespan.Join(linespan.Lines(content)[end+1:])
}

// Replace re-serializes meta between fresh markers and prepends it to the
// content that follows the original metadata block. Anything before the
// opening marker is discarded along with the old block.
func Replace(content string, meta map[string]any) (string, error) {
	_, end, err := Locate(content)
	if err != nil {
		return "", err
	}

	encoded, err := yamlutil.Marshal(meta)
	if err != nil {
		return "", err
	}

	body := linespan.Join(linespan.Lines(content)[end+1:])
	return fmt.Sprintf("%s\n%s%s\n", Marker, encoded, Marker) + body, nil
}
