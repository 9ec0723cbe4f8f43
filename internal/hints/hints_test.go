package hints

import (
	"strings"
	"testing"
)

func TestHintsFormat(t *testing.T) {
	tests := []struct {
		name string
		hint string
	}{
		{"config not found", ForConfigNotFound()},
		{"no executor", ForNoExecutor()},
		{"missing front matter", ForMissingFrontMatter()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.HasPrefix(tt.hint, "\n  hint: ") {
				t.Errorf("hint %q missing standard prefix", tt.hint)
			}
		})
	}
}
