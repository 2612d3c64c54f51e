// Package git lists the files changed between two commits of the local
// repository with "git diff --name-only".
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/VaitaR/DuneQueryRepo/internal/core/ports/driven"
)

// Default refs compare the last commit with its parent.
const (
	DefaultBase = "HEAD~1"
	DefaultHead = "HEAD"
)

// ErrMissingRef indicates an empty base or head ref.
var ErrMissingRef = errors.New("git: base and head refs are required")

// Runner executes git with args in dir and returns its standard output.
type Runner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// ExecRunner runs the git binary found in PATH.
func ExecRunner(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stderr strings.Builder
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return output, fmt.Errorf("git %s failed: %w\n%s",
			strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return output, nil
}

// Ensure DiffSource implements the interface.
var _ driven.ChangeSource = (*DiffSource)(nil)

// DiffSource reports files added, copied, modified or renamed between two
// refs. Deleted files are left out.
type DiffSource struct {
	dir  string
	base string
	head string
	run  Runner
}

// Option configures a DiffSource.
type Option func(*DiffSource)

// WithRunner replaces the git runner. Useful for tests.
func WithRunner(run Runner) Option {
	return func(s *DiffSource) {
		s.run = run
	}
}

// NewDiffSource creates a change source for the repository at dir.
// Empty refs default to HEAD~1 and HEAD.
func NewDiffSource(dir, base, head string, opts ...Option) *DiffSource {
	if base == "" {
		base = DefaultBase
	}
	if head == "" {
		head = DefaultHead
	}
	s := &DiffSource{
		dir:  dir,
		base: base,
		head: head,
		run:  ExecRunner,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns "git".
func (s *DiffSource) Name() string {
	return "git"
}

// ChangedFiles returns the changed paths relative to the repository root.
func (s *DiffSource) ChangedFiles(ctx context.Context) ([]string, error) {
	if strings.TrimSpace(s.base) == "" || strings.TrimSpace(s.head) == "" {
		return nil, ErrMissingRef
	}

	output, err := s.run(ctx, s.dir, "diff", "--name-only", "--diff-filter=ACMR", s.base, s.head, "--")
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths, nil
}
