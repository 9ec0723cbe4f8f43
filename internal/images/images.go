// Package images rewrites markdown image links so relative paths resolve
// under the blog engine's image prefix for a given post.
package images

import (
	"path"
	"regexp"
	"strings"
)

// imageLink matches markdown image syntax ![alt](target).
var imageLink = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)`)

// Process prefixes every relative image target with prefix. Absolute targets,
// URLs and data URIs pass through untouched. When absolute is true the
// rewritten targets gain a leading slash so the blog engine resolves them
// from the site root.
func Process(content, prefix string, absolute bool) string {
	return imageLink.ReplaceAllStringFunc(content, func(link string) string {
		m := imageLink.FindStringSubmatch(link)
		alt, target := m[1], m[2]

		if isExternal(target) || strings.HasPrefix(target, "/") {
			return link
		}

		rewritten := target
		if prefix != "" {
			rewritten = path.Join(prefix, target)
		}
		if absolute && !strings.HasPrefix(rewritten, "/") {
			rewritten = "/" + rewritten
		}
		return "![" + alt + "](" + rewritten + ")"
	})
}

// First returns the target of the first image link, or "" when the document
// has none. Used to populate the post's open-graph image metadata.
func First(content string) string {
	m := imageLink.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return m[2]
}

func isExternal(target string) bool {
	return strings.HasPrefix(target, "http://") ||
		strings.HasPrefix(target, "https://") ||
		strings.HasPrefix(target, "data:")
}
