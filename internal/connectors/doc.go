// Package connectors holds the clients dunesync uses to reach remote systems.
//
//   - dune: the Dune query API (get and update query SQL)
//   - git: changed files between two commits of a local checkout
//   - github: changed files between two commits via the GitHub compare API
//
// Each connector implements a driven port from internal/core/ports/driven.
package connectors
