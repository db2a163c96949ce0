package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/taskbridge/taskbridge/internal/domain"
)

const probeTimeout = 8 * time.Second

// AuthResolverInput contains the parameters for resolving authentication.
type AuthResolverInput struct {
	// Token is a bearer token taken from the environment, empty when unset.
	Token string

	// CI forces non-interactive resolution.
	CI bool
}

// AuthResolver decides how the run talks to GitHub. It probes the gh CLI
// session first, falls back to an environment token, and only then prompts.
// The prompt I/O lives behind AuthPrompter so the decision logic stays
// testable.
type AuthResolver struct {
	probe    domain.SessionProbe
	prompter domain.AuthPrompter
	sink     domain.TokenSink
	logger   domain.Logger
}

// NewAuthResolver creates a new AuthResolver use case.
func NewAuthResolver(probe domain.SessionProbe, prompter domain.AuthPrompter, sink domain.TokenSink, logger domain.Logger) *AuthResolver {
	return &AuthResolver{probe: probe, prompter: prompter, sink: sink, logger: logger}
}

// Execute resolves authentication for the run.
//
// Returns ErrAuthRequired when no backend succeeds in CI mode,
// ErrAuthAborted when the user chose to authenticate out-of-band and retry,
// and ErrAuthSkipped when the user declined GitHub integration entirely.
func (uc *AuthResolver) Execute(ctx context.Context, in AuthResolverInput) (*domain.Auth, error) {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := uc.probe.Status(probeCtx); err != nil {
		uc.logger.Debug("gh session unavailable", "error", err)
	} else {
		uc.logger.Debug("authenticated via gh session")
		return &domain.Auth{Method: domain.AuthSession}, nil
	}

	if in.Token != "" {
		uc.logger.Debug("authenticated via environment token")
		return &domain.Auth{Method: domain.AuthToken, Token: in.Token}, nil
	}

	if in.CI {
		return nil, domain.ErrAuthRequired
	}

	choice, err := uc.prompter.Choose()
	if err != nil {
		return nil, err
	}
	switch choice {
	case domain.AuthChoiceSession:
		return nil, domain.ErrAuthAborted
	case domain.AuthChoiceToken:
		token, err := uc.prompter.ReadToken()
		if err != nil {
			return nil, err
		}
		if err := uc.sink.SaveToken(token); err != nil {
			uc.logger.Warn("failed to save token", "error", err)
		}
		return &domain.Auth{Method: domain.AuthToken, Token: token}, nil
	case domain.AuthChoiceSkip:
		return nil, domain.ErrAuthSkipped
	default:
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidChoice, choice)
	}
}
