package headers

import (
	"errors"
	"testing"
)

func TestCheck(t *testing.T) {
	v := &Validator{}

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"h2 and below allowed", "## Section\n\n### Sub\n\ntext", false},
		{"atx h1 rejected", "## ok\n\n# Title\n\ntext", true},
		{"setext h1 rejected", "Title\n=====\n\ntext", true},
		{"hash inside code fence ignored", "```sh\n# comment\n```\n", false},
		{"hash inside inline code ignored", "use `# marker` here", false},
		{"empty document", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Check(tt.content)
			if tt.wantErr {
				if !errors.Is(err, ErrTopLevelHeading) {
					t.Fatalf("error = %v, want ErrTopLevelHeading", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
