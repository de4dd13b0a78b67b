// Package config loads vocab's TOML configuration.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/vocab/config.toml
//  3. If the file doesn't exist, use defaults
//  4. Empty fields keep their defaults
//
// # TOML Format
//
//	settle_delay = "500ms"          # default: 500ms on darwin, 100ms elsewhere
//	min_interaction_delay = "2s"
//	debounce_window = "250ms"
//
//	[store]
//	backend = "sqlite"              # sqlite | toml | memory
//	path = "~/.local/share/vocab/vocab.db"
//
//	[log]
//	level = "info"
//	format = "json"                 # json | text
//	file = "~/.local/share/vocab/vocab.log"
//
// Durations use time.ParseDuration syntax. Tilde expansion is applied to
// every path. Load validates the result and returns an error for negative
// durations, unknown backends, levels and formats, or malformed TOML.
package config
