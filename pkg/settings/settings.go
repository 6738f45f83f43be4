// Package settings provides build metadata, runtime parameters, and
// context helpers used across the barpad CLI packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "barpad"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds configuration settings for a single execution of the filter.
// The target width and the token literals live in the spacer options; Run
// carries only the process-level knobs.
type Run struct {
	MinLogLevel int8
	IsQuiet     bool
	ExitOnError bool
}

// NewCliParams returns the default Run parameters for CLI invocations:
// info-level logging, not quiet, and a non-zero exit on stream errors.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		IsQuiet:     false,
		ExitOnError: true,
	}
}
