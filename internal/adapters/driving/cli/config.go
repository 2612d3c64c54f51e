package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/VaitaR/DuneQueryRepo/internal/adapters/driven/config/env"
	"github.com/VaitaR/DuneQueryRepo/internal/adapters/driven/config/file"
	"github.com/VaitaR/DuneQueryRepo/internal/core/domain"
	"github.com/VaitaR/DuneQueryRepo/internal/logger"
)

// Defaults relative to the working directory.
const (
	DefaultManifestPath = "queries.yml"
	DefaultQueriesDir   = "queries"
)

// Changed-file sources.
const (
	ChangesEnv    = "env"
	ChangesGit    = "git"
	ChangesGitHub = "github"
)

// Settings are the resolved values for one command run.
// Precedence: flags, environment (including .env), settings file, defaults.
type Settings struct {
	SettingsPath string
	ManifestPath string
	QueriesDir   string

	APIKey         string
	BaseURL        string
	RequestTimeout time.Duration

	FullSync     bool
	ChangedFiles string

	// Changes selects where changed files come from: env, git or github.
	Changes          string
	Base             string
	Head             string
	GitHubToken      string
	GitHubRepository string

	Debounce time.Duration

	ContinueOnError bool
	DryRun          bool
	FailOnMissing   bool
}

// SyncConfig converts the settings to a sync service configuration.
func (s Settings) SyncConfig() domain.SyncConfig {
	return domain.SyncConfig{
		ManifestPath:    s.ManifestPath,
		QueriesDir:      s.QueriesDir,
		FullSync:        s.FullSync,
		ChangedFiles:    s.ChangedFiles,
		ContinueOnError: s.ContinueOnError,
		DryRun:          s.DryRun,
	}
}

// options holds the raw flag values shared by all commands.
type options struct {
	configPath   string
	envFile      string
	manifestPath string
	queriesDir   string
	color        string
	verbose      bool

	full            bool
	changed         string
	changes         string
	base            string
	head            string
	timeout         time.Duration
	debounce        time.Duration
	continueOnError bool
	dryRun          bool
	failOnMissing   bool
}

// resolveSettings merges flags, environment, .env and the settings file.
func resolveSettings(cmd *cobra.Command, opts *options, deps *Dependencies) (Settings, error) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	store, err := file.NewConfigStore(opts.configPath)
	if err != nil {
		return Settings{}, WrapExitError(ExitUsage, "load settings", err)
	}

	s := Settings{SettingsPath: store.Path()}

	s.ManifestPath = DefaultManifestPath
	if v := store.GetString(file.KeyManifestPath); v != "" {
		s.ManifestPath = v
	}
	if changed("manifest") {
		s.ManifestPath = opts.manifestPath
	}

	s.QueriesDir = DefaultQueriesDir
	if v := store.GetString(file.KeyQueriesDir); v != "" {
		s.QueriesDir = v
	}
	if changed("queries-dir") {
		s.QueriesDir = opts.queriesDir
	}

	// The .env file sits next to the manifest unless given explicitly.
	envFile := filepath.Join(filepath.Dir(s.ManifestPath), env.DefaultDotEnvFile)
	if changed("env-file") {
		envFile = opts.envFile
	}
	loaded, err := env.LoadDotEnv(envFile)
	if err != nil {
		return Settings{}, WrapExitError(ExitUsage, "load .env", err)
	}
	if len(loaded) > 0 {
		logger.Debug("Loaded %v from %s", loaded, envFile)
	}

	vars := env.Read(deps.getenv)
	s.APIKey = vars.APIKey
	s.GitHubToken = vars.GitHubToken
	s.GitHubRepository = vars.GitHubRepository

	s.BaseURL = store.GetString(file.KeyDuneBaseURL)
	if vars.BaseURL != "" {
		s.BaseURL = vars.BaseURL
	}

	if secs := store.GetInt(file.KeyDuneTimeoutSeconds); secs > 0 {
		s.RequestTimeout = time.Duration(secs) * time.Second
	}
	if vars.RequestTimeout != "" {
		d, err := env.ParseTimeout(vars.RequestTimeout)
		if err != nil {
			return Settings{}, WrapExitError(ExitUsage, "", err)
		}
		s.RequestTimeout = d
	}
	if changed("timeout") {
		s.RequestTimeout = opts.timeout
	}

	s.FullSync = vars.FullSync
	if changed("full") {
		s.FullSync = opts.full
	}
	s.ChangedFiles = vars.ChangedQueryFiles
	if changed("changed") {
		s.ChangedFiles = strings.TrimSpace(opts.changed)
	}

	s.Changes = ChangesEnv
	if v := store.GetString(file.KeyChangesSource); v != "" {
		s.Changes = v
	}
	if changed("changes") {
		s.Changes = opts.changes
	}
	s.Base, s.Head = opts.base, opts.head

	if ms := store.GetInt(file.KeyWatchDebounceMS); ms > 0 {
		s.Debounce = time.Duration(ms) * time.Millisecond
	}
	if changed("debounce") {
		s.Debounce = opts.debounce
	}

	s.ContinueOnError = opts.continueOnError
	s.DryRun = opts.dryRun
	s.FailOnMissing = opts.failOnMissing

	logger.Debug("Settings: manifest=%s queries=%s changes=%s full=%t settings=%s",
		s.ManifestPath, s.QueriesDir, s.Changes, s.FullSync, s.SettingsPath)
	return s, nil
}

// validateChanges checks the changed-file source and fills git's default
// refs. Only commands that read a change source call it.
func (s *Settings) validateChanges() error {
	switch s.Changes {
	case ChangesEnv:
	case ChangesGit:
		if s.Base == "" {
			s.Base = "HEAD~1"
		}
		if s.Head == "" {
			s.Head = "HEAD"
		}
	case ChangesGitHub:
		if s.Base == "" || s.Head == "" {
			return NewExitError(ExitUsage, "--changes github requires --base and --head")
		}
	default:
		return NewExitError(ExitUsage,
			fmt.Sprintf("invalid changes source %q (want env, git or github)", s.Changes))
	}
	return nil
}
