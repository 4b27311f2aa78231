// Package config loads the standups runtime configuration.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/standups/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. Missing or empty fields use their defaults
//
// # TOML Format
//
//	save_debounce = "1s"       # quiet interval before the collection is saved
//	settle_delay = "400ms"     # pause before a finished meeting is appended
//	storage = "file"           # "file" or "bolt"
//	log_file = "~/.local/state/standups/standups.log"
//	log_level = "info"
//	transcript_file = "~/dictation/live.txt"
//
// An empty transcript_file disables live transcription. The data directory
// (~/.local/share/standups) is fixed and cannot be configured.
//
// # Error Handling
//
// Load returns errors for unreadable files, invalid TOML, unparsable or
// negative durations, unknown storage backends and unknown log levels. A
// missing file is not an error.
package config
