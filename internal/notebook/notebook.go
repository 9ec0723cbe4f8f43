// Package notebook converts Jupyter notebook files to markdown text so the
// rendering pipeline only ever deals with the native markdown format.
//
// Markdown cells pass through verbatim. Code cells become fenced blocks
// tagged with the notebook's kernel language. Cell outputs are dropped; the
// pipeline re-executes code when the post requests it.
package notebook

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotNotebook reports a file that is not a parseable notebook document.
var ErrNotNotebook = errors.New("notebook: not a valid notebook file")

// defaultLanguage is used when the notebook carries no kernel metadata.
const defaultLanguage = "python"

// file mirrors the subset of the nbformat schema the converter reads.
type file struct {
	Cells    []cell   `json:"cells"`
	Metadata metadata `json:"metadata"`
}

type cell struct {
	CellType string    `json:"cell_type"`
	Source   multiline `json:"source"`
}

type metadata struct {
	Kernelspec struct {
		Language string `json:"language"`
	} `json:"kernelspec"`
	LanguageInfo struct {
		Name string `json:"name"`
	} `json:"language_info"`
}

// multiline decodes the nbformat source field, which is either a single
// string or a list of line fragments.
type multiline string

func (m *multiline) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = multiline(s)
		return nil
	}
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	*m = multiline(strings.Join(parts, ""))
	return nil
}

// Converter turns notebook files into markdown text.
type Converter struct{}

// Convert reads a notebook file and returns its markdown rendition.
func (c *Converter) Convert(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- post path comes from the posts directory
	if err != nil {
		return "", fmt.Errorf("notebook: reading %q: %w", path, err)
	}

	var nb file
	if err := json.Unmarshal(data, &nb); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotNotebook, err)
	}
	if nb.Cells == nil {
		return "", fmt.Errorf("%w: no cells", ErrNotNotebook)
	}

	lang := nb.Metadata.Kernelspec.Language
	if lang == "" {
		lang = nb.Metadata.LanguageInfo.Name
	}
	if lang == "" {
		lang = defaultLanguage
	}

	var parts []string
	for _, cl := range nb.Cells {
		src := strings.TrimRight(string(cl.Source), "\n")
		switch cl.CellType {
		case "markdown", "raw":
			parts = append(parts, src)
		case "code":
			parts = append(parts, "```"+lang+"\n"+src+"\n```")
		}
	}
	return strings.Join(parts, "\n\n") + "\n", nil
}
