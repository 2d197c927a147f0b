// Package version carries build metadata injected via -ldflags.
package version

import "fmt"

var (
	// Version is the semantic version or "dev" for local builds.
	Version = "dev"
	// Commit is the git commit hash the binary was built from.
	Commit = "unknown"
	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"
)

// String renders the full version line used in logs and the -version flag.
func String() string {
	return fmt.Sprintf("guildbot %s (commit %s, built %s)", Version, Commit, BuildTime)
}
