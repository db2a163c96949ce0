package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/taskbridge/taskbridge/internal/domain"
)

// Loader loads the optional repository configuration from TOML.
type Loader struct {
	repoRoot string
}

// NewLoader creates a new Loader for the given repository root.
func NewLoader(repoRoot string) *Loader {
	return &Loader{repoRoot: repoRoot}
}

// Load returns the repository configuration merged over the built-in
// defaults. A missing file yields the defaults.
func (l *Loader) Load() (*domain.Config, error) {
	base := domain.NewDefaultConfig()

	path := filepath.Join(l.repoRoot, domain.ConfigFileName)
	file, err := l.loadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return nil, err
	}

	return mergeConfigs(base, file), nil
}

// loadFile loads a single TOML config file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is fixed relative to the repo root
	if err != nil {
		return nil, err
	}

	var cfg domain.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeConfigs overlays non-zero fields of over onto base.
func mergeConfigs(base, over *domain.Config) *domain.Config {
	out := *base

	if over.Paths.Tasks != "" {
		out.Paths.Tasks = over.Paths.Tasks
	}
	if over.Paths.Reports != "" {
		out.Paths.Reports = over.Paths.Reports
	}
	if over.Paths.Ledger != "" {
		out.Paths.Ledger = over.Paths.Ledger
	}
	if over.Paths.TaskContract != "" {
		out.Paths.TaskContract = over.Paths.TaskContract
	}
	if over.Paths.ReportContract != "" {
		out.Paths.ReportContract = over.Paths.ReportContract
	}
	if len(over.GitHub.IssueLabels) > 0 {
		out.GitHub.IssueLabels = over.GitHub.IssueLabels
	}
	if len(over.GitHub.BaseBranches) > 0 {
		out.GitHub.BaseBranches = over.GitHub.BaseBranches
	}
	if over.Log.Level != "" {
		out.Log.Level = over.Log.Level
	}
	if over.SecretsFile != "" {
		out.SecretsFile = over.SecretsFile
	}

	return &out
}
