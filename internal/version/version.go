// Package version holds build-time metadata injected via -ldflags and the
// helpers that render it for --version and the version subcommand.
package version

import (
	"fmt"
	"runtime"
	"time"
)

// UnknownValue is substituted for any build-time variable the linker left
// unset (a local `go build` with no -ldflags, for instance).
const UnknownValue = "unknown"

// ShortCommitHashLength is how many leading characters of a full commit hash
// are shown in the human-readable version string.
const ShortCommitHashLength = 7

// These are overridden at build time via -ldflags
// "-X github.com/msoap/rq/internal/version.Version=...".
var (
	Version     = "dev"
	Commit      = UnknownValue
	Date        = UnknownValue
	BuiltBy     = UnknownValue
	BuildNumber = "0"
)

// BuildInfo is a snapshot of all version/build metadata plus the runtime
// environment the binary is executing under.
type BuildInfo struct {
	Version   string
	Commit    string
	Date      string
	BuiltBy   string
	GoVersion string
	Platform  string
}

// Get returns the current BuildInfo snapshot.
func Get() *BuildInfo {
	return &BuildInfo{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		BuiltBy:   BuiltBy,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// GetVersion returns the short version string shown by --version: just the
// version, or "version (build N)" when a non-zero build number was baked in.
func GetVersion() string {
	if BuildNumber != "" && BuildNumber != "0" {
		return fmt.Sprintf("%s (build %s)", Version, BuildNumber)
	}
	return Version
}

// GetFullVersionInfo returns the multi-clause string shown by the version
// subcommand, omitting any clause whose underlying value is UnknownValue.
func GetFullVersionInfo() string {
	return Get().banner()
}

// String renders every field verbatim, one per line: the full commit hash and
// the build date exactly as baked in by the linker.
func (b *BuildInfo) String() string {
	return fmt.Sprintf("rq version %s\nCommit: %s\nBuilt: %s\nBuilt by: %s\nGo version: %s\nPlatform: %s",
		b.Version, b.Commit, b.Date, b.BuiltBy, b.GoVersion, b.Platform)
}

// banner renders the human-readable version line shown by the version
// subcommand. Unknown fields are dropped rather than printed as
// "(unknown)"/"built unknown"/"by unknown".
func (b *BuildInfo) banner() string {
	s := fmt.Sprintf("rq version %s", b.Version)

	if b.Commit != "" && b.Commit != UnknownValue {
		commit := b.Commit
		if len(commit) > ShortCommitHashLength {
			commit = commit[:ShortCommitHashLength]
		}
		s += fmt.Sprintf(" (%s)", commit)
	}

	if b.Date != "" && b.Date != UnknownValue {
		s += fmt.Sprintf(" built %s", formatBuildDate(b.Date))
	}

	if b.BuiltBy != "" && b.BuiltBy != UnknownValue {
		s += fmt.Sprintf(" by %s", b.BuiltBy)
	}

	s += fmt.Sprintf("\n%s %s/%s", b.GoVersion, runtime.GOOS, runtime.GOARCH)

	return s
}

// Short renders just "rq <version>", used in contexts too narrow for the
// full multi-line banner (shell completions, progress headers).
func (b *BuildInfo) Short() string {
	return fmt.Sprintf("rq %s", b.Version)
}

// formatBuildDate converts the ldflags date format (2006-01-02_15:04:05)
// into the space-separated form shown in the version banner. Any date that
// doesn't match the expected layout is passed through unchanged.
func formatBuildDate(d string) string {
	t, err := time.Parse("2006-01-02_15:04:05", d)
	if err != nil {
		return d
	}
	return t.Format("2006-01-02 15:04:05")
}
