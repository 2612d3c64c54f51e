package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/VaitaR/DuneQueryRepo/internal/core/domain"
	"github.com/VaitaR/DuneQueryRepo/internal/logger"
)

// MatchQueryFiles maps query IDs to the files in dir that encode them.
// Only regular files named <name>___<id>.sql are considered; other entries
// are ignored. Entries are visited in lexicographic order, so when several
// files share an ID the lexicographically last one is kept and each
// displaced file is reported as a collision.
func MatchQueryFiles(dir string) (map[domain.QueryID]domain.QueryFile, []domain.FileCollision, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrQueriesDirNotFound, dir)
		}
		return nil, nil, fmt.Errorf("read queries directory: %w", err)
	}

	files := make(map[domain.QueryID]domain.QueryFile)
	var collisions []domain.FileCollision

	// os.ReadDir returns entries sorted by filename.
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, ok := domain.ExtractQueryID(entry.Name())
		if !ok {
			logger.Debug("Ignoring %s: not a query file", entry.Name())
			continue
		}

		if prev, exists := files[id]; exists {
			collisions = append(collisions, domain.FileCollision{
				ID:      id,
				Kept:    entry.Name(),
				Ignored: prev.Name,
			})
		}
		files[id] = domain.QueryFile{
			ID:   id,
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
		}
	}

	return files, collisions, nil
}
