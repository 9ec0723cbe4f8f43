// Package hints provides actionable error hints for common failure
// scenarios, formatted as "\n  hint: <text>" for appending to error output.
package hints

import "strings"

// ForConfigNotFound suggests how to get a configuration in place.
func ForConfigNotFound() string {
	return format("create nbpress.yaml in your site root, or pass --local to render into ./output")
}

// ForNoExecutor explains how to render posts that request execution.
func ForNoExecutor() string {
	return format("re-run with --no-execute, or set execute_code: false in the post front matter")
}

// ForMissingFrontMatter points at the expected document shape.
func ForMissingFrontMatter() string {
	return format("posts must start with a --- delimited YAML block containing title and description")
}

func format(hint string) string {
	if strings.TrimSpace(hint) == "" {
		return ""
	}
	return "\n  hint: " + hint
}
