// Package domain defines the core entities for dunesync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - QueryID: the numeric identifier of a remote query
//   - Query: remote query metadata returned by the query service
//   - QueryFile: a local SQL file whose name encodes a QueryID
//   - Plan: the target query IDs selected for one sync run
//   - SyncConfig: everything a sync run needs, passed explicitly
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
