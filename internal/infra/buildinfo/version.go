package buildinfo

import (
	"runtime"
	"runtime/debug"
)

// Build-time variables (set via ldflags).
var (
	// Version is the semantic version.
	Version = "dev"

	// Commit is the git commit hash.
	Commit = "unknown"

	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// Info contains build information.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"build_time" yaml:"build_time"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// Get returns the build information.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    commit(),
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// String returns the version line printed by --version.
func String() string {
	info := Get()
	return info.Version + " (commit: " + info.Commit + ", built: " + info.BuildTime + ", " + info.GoVersion + ")"
}

func commit() string {
	if Commit != "unknown" {
		return Commit
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return Commit
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return Commit
}
