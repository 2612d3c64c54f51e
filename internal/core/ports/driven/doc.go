// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ManifestLoader: Reads the tracked query IDs
//   - QueryService: Fetches and updates remote queries
//   - Reporter: Writes severity-tagged progress lines
//
// # Optional Interfaces
//
//   - ChangeSource: Lists changed query files (env, git, GitHub)
//   - ChangeWatcher: Streams batches of changed files for watch mode
//   - ConfigStore: Settings file. Defaults apply without it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
