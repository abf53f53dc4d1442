// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Archiver is the canonical application identifier used for filesystem paths and CLI branding.
	Archiver = "archiver"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is sent with every request to the archive.
	UserAgent = Archiver + "/" + Version + " (terminal archive browser)"
)

// Build metadata, injected with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// AsciiArtLogo is the banner printed above the CLI help.
const AsciiArtLogo = `
  __ _ _ __ ___| |__ (_)_   _____ _ __
 / _` + "`" + ` | '__/ __| '_ \| \ \ / / _ \ '__|
| (_| | | | (__| | | | |\ V /  __/ |
 \__,_|_|  \___|_| |_|_| \_/ \___|_|`
