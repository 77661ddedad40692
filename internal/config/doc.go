// SPDX-License-Identifier: MPL-2.0

// Package config handles ksatool configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/ksatool/config.cue (or the XDG equivalent on
// Linux, ~/Library/Application Support/ksatool/config.cue on macOS, %APPDATA%\ksatool\config.cue
// on Windows), falling back to ./config.cue. Files are validated against the embedded
// #Config schema before they are merged over the defaults; KSATOOL_* environment
// variables override both.
package config
