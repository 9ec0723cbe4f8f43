// Package expand resolves snippet-inclusion directives in post markdown.
//
// A directive looks like {{expand("src/train.py")}} on its own or inside
// prose. The referenced file is inlined as a fenced code block with its
// language inferred from the extension; markdown files are inlined verbatim.
// Directive arguments (typically an execution-skip flag) are appended to the
// generated fence info string so the snippet executor leaves expanded
// snippets alone. Expansion is a single pass: directives inside included
// content are not resolved again, which guards against recursive
// self-reference.
//
// The pass also substitutes {{url_source}} and {{url_issue}} references so
// posts can link to their own repository location. Unrecognized {{...}}
// placeholders are left untouched.
package expand

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Sentinel errors for expansion.
var (
	ErrSnippetNotFound = errors.New("expand: snippet file not found")
	ErrOutsideRoot     = errors.New("expand: snippet path escapes root directory")
)

var (
	directive    = regexp.MustCompile(`\{\{\s*expand\(\s*['"]([^'"]+)['"]\s*\)\s*\}\}`)
	urlSourceVar = regexp.MustCompile(`\{\{\s*url_source\s*\}\}`)
	urlIssueVar  = regexp.MustCompile(`\{\{\s*url_issue\s*\}\}`)
)

// fenceLanguages maps file extensions to fence language tags.
var fenceLanguages = map[string]string{
	".py":   "python",
	".r":    "r",
	".sh":   "sh",
	".sql":  "sql",
	".js":   "javascript",
	".ts":   "typescript",
	".go":   "go",
	".yaml": "yaml",
	".yml":  "yaml",
	".toml": "toml",
	".json": "json",
	".txt":  "text",
}

// Expander inlines snippet files referenced by expand directives.
type Expander struct{}

// Expand resolves every directive in content against rootPath and substitutes
// the repository URL variables. args, when non-empty, is appended to each
// generated fence info string.
func (e *Expander) Expand(content, rootPath, urlSource, urlIssue, args string) (string, error) {
	var failure error

	expanded := directive.ReplaceAllStringFunc(content, func(match string) string {
		if failure != nil {
			return match
		}
		name := directive.FindStringSubmatch(match)[1]

		snippet, err := readSnippet(rootPath, name)
		if err != nil {
			failure = err
			return match
		}

		if strings.EqualFold(filepath.Ext(name), ".md") {
			return snippet
		}
		return fence(name, snippet, args)
	})
	if failure != nil {
		return "", failure
	}

	expanded = urlSourceVar.ReplaceAllLiteralString(expanded, urlSource)
	expanded = urlIssueVar.ReplaceAllLiteralString(expanded, urlIssue)
	return expanded, nil
}

// readSnippet loads a snippet file, confining resolution to rootPath.
func readSnippet(rootPath, name string) (string, error) {
	clean := filepath.Clean(filepath.Join(rootPath, name))

	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return "", err
	}
	absPath, err := filepath.Abs(clean)
	if err != nil {
		return "", err
	}
	if absPath != absRoot && !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, name)
	}

	data, err := os.ReadFile(absPath) // #nosec G304 -- path confined to root above
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q", ErrSnippetNotFound, name)
		}
		return "", fmt.Errorf("expand: reading %q: %w", name, err)
	}
	return string(data), nil
}

// fence wraps snippet content in a fenced code block.
func fence(name, content, args string) string {
	info := fenceLanguages[strings.ToLower(filepath.Ext(name))]
	if info == "" {
		info = "text"
	}
	if args != "" {
		info += " " + args
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return "```" + info + "\n" + content + "```"
}
