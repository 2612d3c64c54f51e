// Package manifest loads the queries.yml manifest that lists the tracked
// Dune query IDs.
//
// The manifest is a YAML mapping with a single meaningful key:
//
//	query_ids:
//	  - 3237721
//	  - "3237745"
//
// Values that cannot be read as a non-negative integer are reported back in
// domain.Manifest.Skipped instead of failing the load.
package manifest
