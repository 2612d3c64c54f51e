// Package services implements the driving port interfaces.
// Services contain the sync logic (planning, file matching and pushing)
// and orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no external dependencies.
package services
