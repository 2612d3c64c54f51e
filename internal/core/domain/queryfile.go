package domain

import (
	"path"
	"sort"
	"strconv"
	"strings"
)

const (
	// QueryFileExtension is the suffix of local query files.
	QueryFileExtension = ".sql"

	// QueryIDDelimiter separates the free-form name from the query ID.
	QueryIDDelimiter = "___"
)

// ExtractQueryID returns the query ID encoded in a file name of the form
// <name>___<id>.sql. The ID is the all-digit run between the last delimiter
// and the final extension. ok is false when the name does not follow the
// convention.
func ExtractQueryID(fileName string) (QueryID, bool) {
	if !strings.HasSuffix(fileName, QueryFileExtension) {
		return 0, false
	}
	idx := strings.LastIndex(fileName, QueryIDDelimiter)
	if idx < 0 {
		return 0, false
	}

	text := fileName[idx+len(QueryIDDelimiter):]
	if dot := strings.LastIndex(text, "."); dot >= 0 {
		text = text[:dot]
	}
	if !isDigits(text) {
		return 0, false
	}

	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}
	return QueryID(id), true
}

// ParseChangedQueryIDs extracts query IDs from a comma-separated list of
// changed file paths. Paths are matched on their base name; empty entries
// are ignored and paths that do not follow the naming convention are
// returned in rejected.
func ParseChangedQueryIDs(raw string) (ids []QueryID, rejected []string) {
	seen := make(map[QueryID]struct{})
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		id, ok := ExtractQueryID(path.Base(toSlash(p)))
		if !ok {
			rejected = append(rejected, p)
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, rejected
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// toSlash converts Windows path separators to slashes.
func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
