package log

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

// TestCommand verifies that external command logging respects verbose mode.
//
// Scenario: Commands are executed with verbose on and off
// Expected: The "$ cmd args" trace only appears in verbose mode
func TestCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		want    string
	}{
		{
			name:    "verbose prints command",
			verbose: true,
			want:    "$ git clone https://example.com/repo.git\n",
		},
		{
			name:    "non-verbose prints nothing",
			verbose: false,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			l := New(&buf, tt.verbose, false)
			l.Command("git", "clone", "https://example.com/repo.git")

			if got := buf.String(); got != tt.want {
				t.Errorf("Command output = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestQuietSuppressesOutput verifies quiet mode silences Printf and Println
// but keeps warnings visible.
func TestQuietSuppressesOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, false, true)

	l.Printf("scanning %s\n", "/tmp")
	l.Println("done")
	if got := buf.String(); got != "" {
		t.Errorf("quiet logger wrote %q, want empty", got)
	}

	l.Warnf("registry unreadable: %v", "permission denied")
	if got := buf.String(); !strings.Contains(got, "Warning: registry unreadable") {
		t.Errorf("quiet logger dropped warning, got %q", got)
	}
}

// TestFromContext verifies logger retrieval from context.
func TestFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, true, false)

	ctx := WithLogger(context.Background(), l)
	got := FromContext(ctx)
	if got != l {
		t.Error("FromContext did not return the attached logger")
	}

	// Missing logger falls back to a no-op that must not panic.
	fallback := FromContext(context.Background())
	fallback.Printf("dropped")
	fallback.Command("git", "status")
	if fallback.Verbose() {
		t.Error("fallback logger should not be verbose")
	}
}
