// Package mintforge holds shared metadata for the mintforge CLI.
package mintforge

// Version is the CLI version, overridable at build time with
// -ldflags "-X github.com/mintforge/mintforge.Version=...".
var Version = "0.2.0"
