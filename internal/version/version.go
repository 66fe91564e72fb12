// Package version reports build information for the tourney binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via ldflags. When left unset, the VCS stamp embedded by
// the Go toolchain is used instead.
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the version line printed by `tourney --version`.
func String() string {
	commit, built := Commit, BuildTime
	if commit == "unknown" {
		if info, ok := debug.ReadBuildInfo(); ok {
			commit, built = fromBuildInfo(info, commit, built)
		}
	}
	return fmt.Sprintf("tourney dev (commit: %s, built: %s)", short(commit), built)
}

func fromBuildInfo(info *debug.BuildInfo, commit, built string) (string, string) {
	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			commit = s.Value
		case "vcs.time":
			built = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if dirty && commit != "unknown" {
		commit = short(commit) + "+dirty"
	}
	return commit, built
}

func short(commit string) string {
	if len(commit) > 7 && commit[7] != '+' {
		return commit[:7]
	}
	return commit
}
