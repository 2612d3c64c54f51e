package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// QueryID identifies a remote query. Valid IDs are non-negative.
type QueryID int64

// String returns the decimal form of the ID.
func (id QueryID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Query is the remote metadata of a query.
type Query struct {
	// ID is the remote query ID.
	ID QueryID

	// Name is the human-readable query name.
	Name string

	// Description is the optional query description.
	Description string

	// Tags are the labels attached to the query.
	Tags []string

	// Version is the remote revision counter.
	Version int

	// SQL is the current query body.
	SQL string

	// Engine is the query engine the query runs on.
	Engine string

	// IsPrivate reports whether the query is private.
	IsPrivate bool

	// IsArchived reports whether the query is archived.
	IsArchived bool

	// Owner is the account owning the query.
	Owner string
}

// QueryFile is a local SQL file matched to a query ID by its name.
type QueryFile struct {
	// ID is the query ID encoded in the file name.
	ID QueryID

	// Name is the file's base name.
	Name string

	// Path is the file's path including the queries directory.
	Path string
}

// FileCollision records two files in the queries directory that encode
// the same query ID.
type FileCollision struct {
	ID      QueryID
	Kept    string
	Ignored string
}

// FormatQueryIDs renders IDs as a bracketed, comma-separated list.
func FormatQueryIDs(ids []QueryID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}
