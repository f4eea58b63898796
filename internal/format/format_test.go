package format

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		wantErr string // substring; "" means valid
	}{
		{"default nested", "worktrees/{branch}", ""},
		{"sibling", "../{repo}-{branch}", ""},
		{"centralized", "~/worktrees/{repo}/{branch}", ""},
		{"absolute", "/tmp/wt/{repo}-{branch}", ""},
		{"branch only", "{branch}", ""},
		{"empty", "", "empty"},
		{"whitespace", "   ", "empty"},
		{"missing branch", "worktrees/{repo}", "must contain {branch}"},
		{"static only", "worktrees/fixed", "must contain {branch}"},
		{"unknown placeholder", "{origin}/{branch}", "unknown placeholder"},
		{"typo", "{brnch}", "unknown placeholder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.format)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate(%q) = %v, want nil", tt.format, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate(%q) = %v, want error containing %q", tt.format, err, tt.wantErr)
			}
		})
	}
}
