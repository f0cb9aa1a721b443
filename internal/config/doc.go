// SPDX-License-Identifier: MPL-2.0

// Package config handles launcher configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/cjc/config.cue (or the XDG equivalent on
// Linux, ~/Library/Application Support/cjc/config.cue on macOS, %APPDATA%\cjc\config.cue
// on Windows), falling back to ./config.cue. Every key can be overridden from the
// environment with the CJC_ prefix (log.verbose becomes CJC_LOG_VERBOSE).
//
// Files are validated against the embedded #Config schema (config_schema.cue)
// before they are merged over the defaults.
package config
