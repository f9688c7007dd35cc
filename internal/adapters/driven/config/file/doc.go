// Package file provides the TOML-backed configuration store.
//
// Keys are exposed in dot notation ("storage.backend") and written back as
// nested TOML tables, so config.toml stays hand-editable:
//
//	[storage]
//	backend = "sqlite"
//	save_delay_ms = 250
//
//	[layout]
//	min_ratio = 0.2
package file
