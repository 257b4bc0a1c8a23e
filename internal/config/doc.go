// Package config provides hexstorm's settings.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//  1. built-in defaults
//  2. the config file (hexstorm.toml, or a .yaml/.yml file)
//  3. HEXSTORM_* environment variables
//
// A config file looks like:
//
//	[editor]
//	formatter = "hex"     # hex, bin or dec
//	bytes_per_row = 0     # 0 fits the terminal
//	max_undo = 1000
//	read_only = false
//
//	[log]
//	level = "info"
//	file = "/tmp/hexstorm.log"
//
//	[watch]
//	enabled = true
//	debounce_ms = 100
//
//	[plugin]
//	scripts = ["~/.config/hexstorm/init.lua"]
//
// Environment variables map SECTION_KEY to section.key, so
// HEXSTORM_WATCH_DEBOUNCE_MS sets watch.debounce_ms. A few short names
// are accepted too: HEXSTORM_FORMATTER, HEXSTORM_BYTES_PER_ROW,
// HEXSTORM_MAX_UNDO, HEXSTORM_READ_ONLY, HEXSTORM_WATCH and
// HEXSTORM_SCRIPTS (comma-separated).
//
// Typed sections (Editor, Log, Watch, Plugin) fall back to defaults on
// bad values and record the problem in ConfigErrors.
package config
