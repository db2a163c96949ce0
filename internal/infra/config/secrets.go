package config

import (
	"fmt"
	"os"

	"github.com/taskbridge/taskbridge/internal/domain"
)

// SecretsFile appends interactively entered tokens to a local untracked
// env file so future runs pick them up from the environment.
type SecretsFile struct {
	path string
}

// NewSecretsFile creates a token sink at path.
func NewSecretsFile(path string) *SecretsFile {
	return &SecretsFile{path: path}
}

// Ensure SecretsFile implements domain.TokenSink interface.
var _ domain.TokenSink = (*SecretsFile)(nil)

// SaveToken appends GITHUB_TOKEN=<token> to the secrets file.
func (s *SecretsFile) SaveToken(token string) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) // #nosec G304 - path comes from configuration
	if err != nil {
		return fmt.Errorf("open secrets file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err := fmt.Fprintf(f, "\nGITHUB_TOKEN=%s\n", token); err != nil {
		return fmt.Errorf("write secrets file: %w", err)
	}
	return nil
}

// Path returns the secrets file location for user-facing messages.
func (s *SecretsFile) Path() string {
	return s.path
}
