package version

import "fmt"

// These variables are set via ldflags during build, e.g.
// -X github.com/philipparndt/gomeasure/version.Version=v0.3.0
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GetVersion returns the version string
func GetVersion() string {
	return Version
}

// GetFullVersion returns the version with commit and build date when known
func GetFullVersion() string {
	if Version == "dev" || GitCommit == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (%s, %s)", Version, GitCommit, BuildDate)
}
