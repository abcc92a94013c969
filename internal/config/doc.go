// Package config provides TOML configuration for costau with live reload.
//
// The configuration lives in a single file under the user config directory
// (typically ~/.config/costau/config.toml); defaults are written there on
// first run so the file is always available to edit.
//
//	debounce_ms    = 300      # idle delay before an evaluation starts
//	precision_bits = 64       # big.Float precision of approximations
//	theme          = "dark"
//
//	[history]
//	enabled = true
//	path    = ""              # default: under the user config dir
//
//	[logging]
//	level  = "info"           # debug, info, warn, error
//	format = "text"           # text or json
//	file   = ""               # default: stderr
//
// A Manager can watch the file and apply edits while the application runs;
// the debounce delay and theme take effect immediately. Malformed or invalid
// edits are reported on the error channel and ignored, so the last good
// configuration stays active.
package config
