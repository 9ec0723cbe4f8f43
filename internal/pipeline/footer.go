package pipeline

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

// FooterVars carries the named variables a footer template may reference.
type FooterVars struct {
	URLSource             string
	URLIssue              string
	IncludeSourceInFooter bool
	CanonicalURL          string
	CanonicalName         string
}

// simpleAction matches a template action that is a bare variable reference,
// like {{.name}} or {{ .name }}. Pipelines and control actions are excluded.
var simpleAction = regexp.MustCompile(`\{\{\s*\.([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// templateData converts vars to the map the template executes against.
// Keys use snake_case so templates read like the front matter they sit near.
func (v FooterVars) templateData() map[string]any {
	return map[string]any{
		"url_source":               v.URLSource,
		"url_issue":                v.URLIssue,
		"include_source_in_footer": v.IncludeSourceInFooter,
		"canonical_url":            v.CanonicalURL,
		"canonical_name":           v.CanonicalName,
	}
}

// RenderFooter evaluates tmplText with the given variables. Bare references
// to variables outside the known set are left in the output as literal
// placeholders instead of failing; footer templates are evaluated before all
// context is necessarily known, so undefined substitution must be lenient.
func RenderFooter(tmplText string, vars FooterVars) (string, error) {
	data := vars.templateData()

	// Escape unknown bare references so they survive execution verbatim.
	escaped := simpleAction.ReplaceAllStringFunc(tmplText, func(action string) string {
		name := simpleAction.FindStringSubmatch(action)[1]
		if _, ok := data[name]; ok {
			return action
		}
		return fmt.Sprintf("{{%q}}", action)
	})

	tmpl, err := template.New("footer").Parse(escaped)
	if err != nil {
		return "", fmt.Errorf("pipeline: parsing footer template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("pipeline: rendering footer template: %w", err)
	}
	return buf.String(), nil
}

// AppendFooter attaches footer to content with exactly one blank-line
// separator, regardless of how many trailing newlines content carries.
func AppendFooter(content, footer string) string {
	return strings.TrimRight(content, "\n") + "\n\n" + footer
}
