package github

import (
	"context"
	"strings"

	"github.com/VaitaR/DuneQueryRepo/internal/core/ports/driven"
)

// Ensure CompareSource implements the interface.
var _ driven.ChangeSource = (*CompareSource)(nil)

// CompareSource reports the files changed between two commits.
// Removed files are left out since there is nothing to push for them.
type CompareSource struct {
	client *Client
	owner  string
	repo   string
	base   string
	head   string
}

// NewCompareSource creates a change source for owner/repo between base and head.
func NewCompareSource(client *Client, owner, repo, base, head string) *CompareSource {
	return &CompareSource{
		client: client,
		owner:  owner,
		repo:   repo,
		base:   base,
		head:   head,
	}
}

// Name returns "github".
func (s *CompareSource) Name() string {
	return "github"
}

// ChangedFiles returns the paths of added, modified, renamed and copied files.
func (s *CompareSource) ChangedFiles(ctx context.Context) ([]string, error) {
	files, err := s.client.CompareFiles(ctx, s.owner, s.repo, s.base, s.head)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		if f.GetStatus() == FileStatusRemoved {
			continue
		}
		paths = append(paths, f.GetFilename())
	}
	return paths, nil
}

// ParseRepository splits an "owner/name" string such as GITHUB_REPOSITORY.
func ParseRepository(s string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", ErrInvalidRepository
	}
	return owner, repo, nil
}
