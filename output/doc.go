// Package output provides styled terminal output for the mintforge CLI.
//
// Messages carry one of a small set of severities (info, success, warning,
// error) rendered with lipgloss colors and symbols. When a log file is
// configured, every message is mirrored to it as a JSON line with a
// timestamp and level, so failed runs can be reconstructed afterwards.
// Nothing consumes the log format programmatically; it exists for humans.
package output
