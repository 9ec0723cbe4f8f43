package nbpress

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/nbpress/go-nbpress/internal/yamlutil"
)

// Settings are the per-post execution-control flags, nested under the
// "nbpress" key of the front matter.
type Settings struct {
	AllowExpand bool `yaml:"allow_expand"`
	ExecuteCode bool `yaml:"execute_code"`
}

// FrontMatter is the typed projection of a post's metadata. The pipeline
// depends on these fields; everything else the author wrote passes through
// untouched in Raw and is re-serialized at the end of the render.
type FrontMatter struct {
	Title       string
	Description string
	Settings    Settings

	// Raw is the full user metadata mapping the projection was built from.
	Raw map[string]any
}

// frontMatterShape is the YAML shape used to project the generic mapping.
type frontMatterShape struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Settings    Settings `yaml:"nbpress"`
}

// NewFrontMatter projects a parsed metadata mapping onto the typed model.
// Posts execute code by default; expansion is opt-in.
func NewFrontMatter(meta map[string]any) (*FrontMatter, error) {
	encoded, err := yamlutil.Marshal(meta)
	if err != nil {
		return nil, err
	}

	shape := frontMatterShape{
		Settings: Settings{ExecuteCode: true},
	}
	if err := yamlutil.Unmarshal(encoded, &shape); err != nil {
		return nil, fmt.Errorf("nbpress: projecting front matter: %w", err)
	}

	fm := &FrontMatter{
		Title:       shape.Title,
		Description: shape.Description,
		Settings:    shape.Settings,
		Raw:         meta,
	}
	if err := fm.Validate(); err != nil {
		return nil, err
	}
	return fm, nil
}

// Validate checks the fields the pipeline depends on.
func (f *FrontMatter) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Title, validation.Required),
		validation.Field(&f.Description, validation.Required),
	)
}
