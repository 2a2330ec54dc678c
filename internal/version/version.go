// Package version reports which build of tally is running.
package version

import "runtime/debug"

// Set at build time via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Full returns the version with commit and build date.
func Full() string {
	return Version + " (" + Commit + ") " + Date
}

func Short() string {
	return Version
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		fromBuildInfo(info)
	}
}

// fromBuildInfo fills whatever ldflags left at its default from the module
// and VCS data Go embeds in the binary, so `go install` builds report a real
// version.
func fromBuildInfo(info *debug.BuildInfo) {
	if info == nil {
		return
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		if s.Value == "" {
			continue
		}
		switch {
		case s.Key == "vcs.revision" && Commit == "none":
			Commit = s.Value[:min(7, len(s.Value))]
		case s.Key == "vcs.time" && Date == "unknown":
			Date = s.Value
		case s.Key == "vcs.modified" && s.Value == "true" && Commit != "none":
			Commit += "-dirty"
		}
	}
}
