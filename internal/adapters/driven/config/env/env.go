// Package env reads dunesync settings from the process environment and an
// optional .env file.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/subosito/gotenv"
)

// Environment variable names.
const (
	VarAPIKey            = "DUNE_API_KEY"
	VarBaseURL           = "DUNE_API_BASE_URL"
	VarRequestTimeout    = "DUNE_API_REQUEST_TIMEOUT"
	VarFullSync          = "FULL_SYNC"
	VarChangedQueryFiles = "CHANGED_QUERY_FILES"
	VarGitHubToken       = "GITHUB_TOKEN"
	VarGitHubRepository  = "GITHUB_REPOSITORY"
)

// DefaultDotEnvFile is the .env file loaded when no path is given.
const DefaultDotEnvFile = ".env"

// LoadDotEnv loads variables from the .env file at path into the process
// environment. Variables already set in the environment win. A missing file
// is not an error. It returns the names of the variables it set, sorted.
func LoadDotEnv(path string) ([]string, error) {
	if path == "" {
		path = DefaultDotEnvFile
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	vars, err := gotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var loaded []string
	for key, value := range vars {
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return loaded, fmt.Errorf("set %s: %w", key, err)
		}
		loaded = append(loaded, key)
	}
	sort.Strings(loaded)
	return loaded, nil
}

// IsTruthy reports whether s is one of 1, true, yes, y or on, ignoring case
// and surrounding whitespace.
func IsTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// ParseTimeout parses DUNE_API_REQUEST_TIMEOUT. A bare number is taken as
// seconds; anything else must be a Go duration such as "1m30s".
func ParseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("%s must be positive, got %q", VarRequestTimeout, s)
		}
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", VarRequestTimeout, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %q", VarRequestTimeout, s)
	}
	return d, nil
}

// Vars is a snapshot of the environment variables dunesync reads.
type Vars struct {
	APIKey            string
	BaseURL           string
	RequestTimeout    string
	FullSync          bool
	ChangedQueryFiles string
	GitHubToken       string
	GitHubRepository  string
}

// Read snapshots the variables using getenv. Pass os.Getenv in production.
func Read(getenv func(string) string) Vars {
	return Vars{
		APIKey:            strings.TrimSpace(getenv(VarAPIKey)),
		BaseURL:           strings.TrimSpace(getenv(VarBaseURL)),
		RequestTimeout:    strings.TrimSpace(getenv(VarRequestTimeout)),
		FullSync:          IsTruthy(getenv(VarFullSync)),
		ChangedQueryFiles: strings.TrimSpace(getenv(VarChangedQueryFiles)),
		GitHubToken:       strings.TrimSpace(getenv(VarGitHubToken)),
		GitHubRepository:  strings.TrimSpace(getenv(VarGitHubRepository)),
	}
}
