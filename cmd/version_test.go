package cmd

import (
	"strings"
	"testing"

	"github.com/rnwolfe/tally/internal/version"
)

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name  string
		short bool
		want  string
	}{
		{"full", false, "tally " + version.Full()},
		{"short", true, version.Short()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			versionShort = tt.short
			t.Cleanup(func() { versionShort = false })

			out := captureStdout(t, func() { versionCmd.Run(versionCmd, nil) })
			if got := strings.TrimSpace(out); got != tt.want {
				t.Fatalf("output = %q, want %q", got, tt.want)
			}
		})
	}
}
