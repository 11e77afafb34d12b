// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Mediadex is the canonical application identifier used for filesystem paths and CLI branding.
	Mediadex = "mediadex"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent identifies outgoing requests toward upstream metadata services.
	// Several upstreams (MusicBrainz in particular) reject clients without a descriptive agent.
	UserAgent = Mediadex + "/" + Version + " (https://github.com/mediadex-cli/mediadex)"

	// BrowserUserAgent is sent by the browser-fingerprint client for upstreams behind anti-bot CDNs.
	BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// AsciiArtLogo is the CLI banner shown on the root help screen.
	AsciiArtLogo = `
                     _ _           _
  _ __ ___   ___  __| (_) __ _  __| | _____  __
 | '_ ` + "`" + ` _ \ / _ \/ _` + "`" + ` | |/ _` + "`" + ` |/ _` + "`" + ` |/ _ \ \/ /
 | | | | | |  __/ (_| | | (_| | (_| |  __/>  <
 |_| |_| |_|\___|\__,_|_|\__,_|\__,_|\___/_/\_\
`
)

// Build metadata stamped through ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
