package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRepository(t *testing.T) {
	tests := []struct {
		name      string
		override  string
		remoteURL string
		want      string
	}{
		{"override wins", "owner/override", "git@github.com:other/repo.git", "owner/override"},
		{"ssh form", "", "git@github.com:owner/repo.git", "owner/repo"},
		{"ssh without suffix", "", "git@github.com:owner/repo", "owner/repo"},
		{"https form", "", "https://github.com/owner/repo.git", "owner/repo"},
		{"https without suffix", "", "https://github.com/owner/repo", "owner/repo"},
		{"trailing whitespace", "", "https://github.com/owner/repo.git\n", "owner/repo"},
		{"non-github remote", "", "git@gitlab.com:owner/repo.git", ""},
		{"no remote", "", "", ""},
		{"malformed path", "", "https://github.com/owner", ""},
		{"extra path segments", "", "https://github.com/owner/repo/extra", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRepository(tt.override, tt.remoteURL))
		})
	}
}

func TestParseAuthChoice(t *testing.T) {
	tests := []struct {
		input   string
		want    AuthChoice
		wantErr bool
	}{
		{"1", AuthChoiceSession, false},
		{"2", AuthChoiceToken, false},
		{"3", AuthChoiceSkip, false},
		{"", 0, true},
		{"4", 0, true},
		{"yes", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAuthChoice(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidChoice)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
