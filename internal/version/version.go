// Package version holds build metadata for aset-analyzer binaries.
package version

import "fmt"

// Set with -ldflags "-X aset-analyzer/internal/version.Version=..."
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the build metadata for --version output.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
