package pipeline

import (
	"regexp"
	"strings"

	"github.com/nbpress/go-nbpress/internal/linespan"
)

// fenceLine matches a fence delimiter line per CommonMark: up to three spaces
// of indent, a run of at least three backticks or tildes, then the rest of
// the line (info string on openers, spaces only on closers).
var fenceLine = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})(.*)$")

// InjectOutputs merges per-block output text into content. The i-th output is
// inserted immediately after the closing fence of the i-th fenced block.
// Empty outputs consume their position without inserting anything. Blocks are
// disjoint regions of the source, so insertions can never collide.
//
// Fence matching follows CommonMark so positions agree with the parsed block
// model: a closer must use the opener's delimiter character at equal or
// greater length, and delimiter lines inside a longer fence stay literal.
func InjectOutputs(content string, outputs []string) string {
	lines := linespan.Lines(content)
	result := make([]string, 0, len(lines))

	var openMarker string
	next := 0

	for _, line := range lines {
		result = append(result, line)

		m := fenceLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		marker, rest := m[1], m[2]

		if openMarker == "" {
			// Backtick openers cannot carry backticks in the info string.
			if marker[0] == '`' && strings.Contains(rest, "`") {
				continue
			}
			openMarker = marker
			continue
		}

		if marker[0] != openMarker[0] || len(marker) < len(openMarker) || strings.TrimSpace(rest) != "" {
			continue
		}

		// Closing fence of the current block.
		openMarker = ""
		if next < len(outputs) {
			if out := outputs[next]; out != "" {
				result = append(result, linespan.Lines(out)...)
			}
			next++
		}
	}
	return linespan.Join(result)
}

// RemoveHiddenBlock deletes every textual occurrence of the fenced block with
// exactly the given info string and body. Matching is literal: distinct
// blocks sharing identical info and text are all removed, so hidden text
// never survives through a duplicate.
func RemoveHiddenBlock(content, info, text string) string {
	block := "```" + info + "\n" + text + "```"
	return strings.ReplaceAll(content, block, "")
}

// StripInfoDirectives replaces every occurrence of the full info string with
// its first whitespace-delimited token, dropping execution directives from
// the rendered fence tag. The replacement is content-wide on purpose; the
// same info string appearing in prose is rewritten too, matching the
// established behavior of the renderer.
func StripInfoDirectives(content, info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return content
	}
	return strings.ReplaceAll(content, info, fields[0])
}
