// Package version reports the adb-autoconnect build version.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// These variables can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/muurk/adb-autoconnect/internal/version.Version=v1.2.3 \
//	                   -X github.com/muurk/adb-autoconnect/internal/version.Commit=abc123"
//
// When unset, Get falls back to the VCS stamp in the build info.
var (
	// Version is the semantic version of the application
	Version = ""
	// Commit is the git commit hash
	Commit = ""
)

// Info describes the running binary.
type Info struct {
	Version   string
	Commit    string
	GoVersion string
}

// Get returns the build information of the running binary.
func Get() Info {
	bi, _ := debug.ReadBuildInfo()
	return resolve(Version, Commit, bi)
}

// String returns "<version> (commit: <commit>)".
func (i Info) String() string {
	return fmt.Sprintf("%s (commit: %s)", i.Version, i.Commit)
}

// Full returns the full version string including commit
func Full() string {
	return Get().String()
}

// resolve fills in the blanks left by ldflags from bi. bi may be nil.
func resolve(version, commit string, bi *debug.BuildInfo) Info {
	info := Info{Version: version, Commit: commit}

	if bi != nil {
		info.GoVersion = bi.GoVersion

		var revision, modified, vcsTime string
		for _, setting := range bi.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				modified = setting.Value
			case "vcs.time":
				vcsTime = setting.Value
			}
		}

		if info.Commit == "" && revision != "" {
			info.Commit = revision
			if len(info.Commit) > 7 {
				info.Commit = info.Commit[:7]
			}
			if modified == "true" {
				info.Commit += "-dirty"
			}
		}

		// Build info carries no tags, so the commit date stands in.
		if info.Version == "" && vcsTime != "" {
			if t, err := time.Parse(time.RFC3339, vcsTime); err == nil {
				info.Version = "dev-" + t.Format("20060102")
			}
		}

		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
	}

	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	return info
}
