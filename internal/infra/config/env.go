// Package config provides configuration loading functionality.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Env holds the environment-level options taskbridge recognizes.
// Fields are ordered to minimize memory padding.
type Env struct {
	GitHubToken   string `env:"GITHUB_TOKEN"`
	GHToken       string `env:"GH_TOKEN"`
	Repository    string `env:"GITHUB_REPOSITORY"`
	ProjectNumber string `env:"GITHUB_PROJECT_NUMBER"`
	CI            bool   `env:"CI"`
}

// LoadEnv reads the recognized environment variables.
func LoadEnv(ctx context.Context) (*Env, error) {
	var env Env
	if err := envconfig.Process(ctx, &env); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &env, nil
}

// Token returns the bearer token, accepting either variable name.
// GITHUB_TOKEN wins when both are set.
func (e *Env) Token() string {
	if e.GitHubToken != "" {
		return e.GitHubToken
	}
	return e.GHToken
}
