// Package metadata exposes build information stamped in at link time.
package metadata

import "fmt"

// Set via -ldflags "-X ogparsing/pkg/metadata.version=..." at build time.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// Version returns the short version string.
func Version() string {
	return version
}

// BuildInfo returns the full build description.
func BuildInfo() string {
	return fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate)
}
