// Package yamlutil wraps YAML encoding to isolate the external dependency.
// Callers never import the YAML library directly, so it can be swapped
// without touching the rest of the module.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

var ErrNilDestination = errors.New("yamlutil: nil destination pointer")

// Unmarshal decodes YAML data into v. Empty input is not an error; the
// destination is simply left untouched, which matches how an empty front
// matter block decodes to an empty mapping.
func Unmarshal(data []byte, v any) error {
	if v == nil {
		return ErrNilDestination
	}
	if len(data) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict decodes YAML data into v, rejecting unknown fields.
func UnmarshalStrict(data []byte, v any) error {
	if v == nil {
		return ErrNilDestination
	}
	if len(data) == 0 {
		return nil
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Marshal encodes v as YAML.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
