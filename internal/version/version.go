// Package version holds build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X git.home.luguber.info/inful/gitin/internal/version.Version=v1.0.0"
package version

import "fmt"

var (
	Version   = "unknown"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// String renders the line printed by --version.
func String() string {
	return fmt.Sprintf("gitin %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
