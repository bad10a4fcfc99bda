// Package version reports how the running binary was built. Values stamped
// with -ldflags win; otherwise the VCS settings embedded by the Go toolchain
// are used.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

const unknown = "unknown"

// Set by main from its own ldflags-stamped variables.
var (
	Version   = "dev"
	BuildTime = unknown
	GitCommit = unknown
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info describes the build.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	Modified  bool   `json:"modified"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get collects build information.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == unknown {
				info.GitCommit = shortCommit(s.Value)
			}
		case "vcs.time":
			if info.BuildTime == unknown {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

func shortCommit(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// String renders the one-line form printed by "cookbook version".
func (i Info) String() string {
	commit := i.GitCommit
	if i.Modified {
		commit += "+dirty"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "cookbook %s (%s)", i.Version, commit)
	if i.BuildTime != unknown {
		fmt.Fprintf(&b, " built %s", i.BuildTime)
	}
	fmt.Fprintf(&b, " with %s on %s", i.GoVersion, i.Platform)
	return b.String()
}
