// Package linespan provides line-oriented editing of markdown text: locating
// marker lines and deleting or extracting the spans between them.
//
// Line numbers exposed by this package are 1-indexed, matching how editors
// and error messages refer to lines. Internally lines are 0-indexed slices.
package linespan

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for span operations.
var (
	ErrInvalidRange   = errors.New("linespan: invalid line range")
	ErrMarkerNotFound = errors.New("linespan: marker line not found")
)

// Lines splits content into lines without a trailing empty element.
// "a\nb\n" and "a\nb" both split to ["a", "b"], so joining with Join is
// lossless except for a possible trailing-newline normalization.
func Lines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Join is the inverse of Lines.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}

// FindLines scans content top-down and returns the 1-indexed line number of
// the first occurrence of each target. Scanning stops as soon as every target
// has been found. Targets that never appear are simply absent from the
// result; callers that require a target must treat a missing key as an error.
func FindLines(content string, targets []string) map[string]int {
	pending := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		pending[t] = struct{}{}
	}

	found := make(map[string]int, len(targets))
	for i, line := range Lines(content) {
		if _, ok := pending[line]; ok {
			found[line] = i + 1
			delete(pending, line)
		}
		if len(pending) == 0 {
			break
		}
	}
	return found
}

// DeleteBetween removes lines start through end, both 1-indexed and both
// inclusive. Returns ErrInvalidRange when start is below 1 or end precedes
// start.
func DeleteBetween(content string, start, end int) (string, error) {
	if start < 1 || end < start {
		return "", fmt.Errorf("%w: got start=%d end=%d", ErrInvalidRange, start, end)
	}
	lines := Lines(content)
	kept := make([]string, 0, len(lines))
	kept = append(kept, lines[:min(start-1, len(lines))]...)
	if end < len(lines) {
		kept = append(kept, lines[end:]...)
	}
	return Join(kept), nil
}

// DeleteBetweenContent resolves both markers to line numbers via FindLines
// and deletes the span between them, markers included.
func DeleteBetweenContent(content, startMarker, endMarker string) (string, error) {
	start, end, err := resolveMarkers(content, startMarker, endMarker)
	if err != nil {
		return "", err
	}
	return DeleteBetween(content, start, end)
}

// ExtractBetweenContent resolves both markers and returns the lines strictly
// between them, excluding the marker lines themselves, joined with newlines.
func ExtractBetweenContent(content, startMarker, endMarker string) (string, error) {
	start, end, err := resolveMarkers(content, startMarker, endMarker)
	if err != nil {
		return "", err
	}
	lines := Lines(content)
	if end-1 < start {
		return "", nil
	}
	return Join(lines[start : end-1]), nil
}

// resolveMarkers maps two marker lines to their 1-indexed positions.
func resolveMarkers(content, startMarker, endMarker string) (int, int, error) {
	located := FindLines(content, []string{startMarker, endMarker})

	start, ok := located[startMarker]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrMarkerNotFound, startMarker)
	}
	end, ok := located[endMarker]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrMarkerNotFound, endMarker)
	}
	return start, end, nil
}
