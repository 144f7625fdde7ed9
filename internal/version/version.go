// Package version provides build-time version information for frontend-smoke.
// The variables are set at build time via -ldflags, for example:
//
//	go build -ldflags "-X github.com/educacion-app/frontend-smoke/internal/version.Version=v0.3.0"
package version

import (
	"fmt"
	"runtime"
)

// Build-time variables set via ldflags
var (
	// Version is the release tag (e.g. "v0.3.0"), or "dev" for local builds
	Version = "dev"

	// GitCommit is the short git commit SHA
	GitCommit = "unknown"

	// BuildDate is the build timestamp
	BuildDate = "unknown"
)

// Info is the structured form printed by `frontend-smoke version --json`.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// GetInfo returns the current build information, including the Go
// toolchain the binary was compiled with.
func GetInfo() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

// String returns a short human-readable version.
// Format: "v0.3.0 (abc1234)"
func String() string {
	return fmt.Sprintf("%s (%s)", Version, GitCommit)
}

// Full returns the version with commit, build date and Go toolchain, as
// printed by `frontend-smoke version`.
func Full() string {
	return fmt.Sprintf("%s (%s) built %s with %s", Version, GitCommit, BuildDate, runtime.Version())
}
