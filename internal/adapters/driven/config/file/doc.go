// Package file provides the file-based settings store for dunesync.
//
// Settings live in an optional TOML file (dunesync.toml by default):
//
//	[manifest]
//	path = "queries.yml"
//
//	[queries]
//	dir = "queries"
//
//	[dune]
//	base_url = "https://api.dune.com"
//	timeout_seconds = 10
//
//	[watch]
//	debounce_ms = 500
//
//	[changes]
//	source = "env"
//
// Nested tables are flattened to dot-notation keys ("dune.base_url").
package file
