package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func reset(t *testing.T) {
	t.Helper()
	v, c, d := Version, Commit, Date
	Version, Commit, Date = "dev", "none", "unknown"
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
}

func TestFullAndShort(t *testing.T) {
	if !strings.HasPrefix(Full(), Version+" (") {
		t.Fatalf("Full() = %q", Full())
	}
	if Short() != Version {
		t.Fatalf("Short() = %q, want %q", Short(), Version)
	}
}

func TestFromBuildInfo(t *testing.T) {
	tests := []struct {
		name                              string
		info                              *debug.BuildInfo
		wantVersion, wantCommit, wantDate string
	}{
		{"nil", nil, "dev", "none", "unknown"},
		{
			"devel build keeps dev",
			&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			"dev", "none", "unknown",
		},
		{
			"tagged with vcs",
			&debug.BuildInfo{
				Main: debug.Module{Version: "v0.3.0"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123456789abcdef"},
					{Key: "vcs.time", Value: "2026-02-01T10:00:00Z"},
				},
			},
			"v0.3.0", "0123456", "2026-02-01T10:00:00Z",
		},
		{
			"dirty tree",
			&debug.BuildInfo{Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc"},
				{Key: "vcs.modified", Value: "true"},
			}},
			"dev", "abc-dirty", "unknown",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reset(t)
			fromBuildInfo(tt.info)
			if Version != tt.wantVersion || Commit != tt.wantCommit || Date != tt.wantDate {
				t.Fatalf("got %q %q %q, want %q %q %q", Version, Commit, Date, tt.wantVersion, tt.wantCommit, tt.wantDate)
			}
		})
	}
}
