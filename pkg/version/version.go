// Package version holds build metadata injected at link time.
package version

var (
	// Version is the release series of simferm. Release builds override
	// this with -ldflags "-X github.com/ChuckGl/simferm/pkg/version.Version=...".
	// It also appears in the run log completion summary, so it stays a
	// plain number unless overridden.
	Version = "39"

	// GitCommit is the commit the binary was built from.
	GitCommit = "unknown"
)
