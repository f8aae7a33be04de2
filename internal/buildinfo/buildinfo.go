// Package buildinfo holds version information injected at build time via ldflags.
package buildinfo

var (
	Version    = "dev"
	Codename   = "Pebble"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Short returns the version with its codename, e.g. "0.2.0 (Pebble)".
func Short() string {
	return Version + " (" + Codename + ")"
}
