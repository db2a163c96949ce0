// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/taskbridge/taskbridge/internal/domain"
	"github.com/taskbridge/taskbridge/internal/infra/config"
	"github.com/taskbridge/taskbridge/internal/infra/executor"
	"github.com/taskbridge/taskbridge/internal/infra/gh"
	"github.com/taskbridge/taskbridge/internal/infra/git"
	"github.com/taskbridge/taskbridge/internal/infra/logging"
	"github.com/taskbridge/taskbridge/internal/infra/yamlstore"
	"github.com/taskbridge/taskbridge/internal/usecase"
)

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tasks     domain.TaskStore
	Reports   domain.ReportStore
	Ledger    domain.LedgerStore
	Contracts domain.ContractStore
	Documents domain.DocumentSource
	Executor  domain.CommandExecutor
	Clock     domain.Clock
	Logger    domain.Logger

	// Git is nil when the working directory is not inside a git
	// repository; validation commands still work, integration does not.
	Git domain.Git

	// Configuration
	Config   *domain.Config
	Env      *config.Env
	RepoRoot string
}

// New creates a new Container rooted at the enclosing git repository of dir,
// or at dir itself when no repository is found.
func New(ctx context.Context, dir string) (*Container, error) {
	repoRoot := dir
	var gitPort domain.Git
	gitClient, err := git.NewClient(dir)
	switch {
	case err == nil:
		repoRoot = gitClient.RepoRoot()
		gitPort = gitClient
	case errors.Is(err, domain.ErrNotGitRepository):
		// validation-only mode
	default:
		return nil, err
	}

	cfg, err := config.NewLoader(repoRoot).Load()
	if err != nil {
		return nil, err
	}

	env, err := config.LoadEnv(ctx)
	if err != nil {
		return nil, err
	}

	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.Log.Level))

	return &Container{
		Tasks:     yamlstore.NewTaskStore(filepath.Join(repoRoot, cfg.Paths.Tasks)),
		Reports:   yamlstore.NewReportStore(filepath.Join(repoRoot, cfg.Paths.Reports)),
		Ledger:    yamlstore.NewLedgerFile(filepath.Join(repoRoot, cfg.Paths.Ledger)),
		Contracts: yamlstore.NewContracts(
			filepath.Join(repoRoot, cfg.Paths.TaskContract),
			filepath.Join(repoRoot, cfg.Paths.ReportContract),
		),
		Documents: yamlstore.NewDocuments(),
		Executor:  executor.NewClient(),
		Clock:     domain.RealClock{},
		Logger:    logger,
		Git:       gitPort,
		Config:    cfg,
		Env:       env,
		RepoRoot:  repoRoot,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(
	cfg *domain.Config,
	tasks domain.TaskStore,
	reports domain.ReportStore,
	ledger domain.LedgerStore,
	contracts domain.ContractStore,
	documents domain.DocumentSource,
	gitPort domain.Git,
	clock domain.Clock,
	logger domain.Logger,
) *Container {
	return &Container{
		Tasks:     tasks,
		Reports:   reports,
		Ledger:    ledger,
		Contracts: contracts,
		Documents: documents,
		Git:       gitPort,
		Clock:     clock,
		Logger:    logger,
		Config:    cfg,
		Env:       &config.Env{},
	}
}

// UseCase factory methods

// ValidateTasksUseCase returns a new ValidateTasks use case.
func (c *Container) ValidateTasksUseCase() *usecase.ValidateTasks {
	return usecase.NewValidateTasks(c.Documents, c.Contracts)
}

// ValidateReportsUseCase returns a new ValidateReports use case.
func (c *Container) ValidateReportsUseCase() *usecase.ValidateReports {
	return usecase.NewValidateReports(c.Documents, c.Contracts)
}

// ValidateLinkageUseCase returns a new ValidateLinkage use case.
func (c *Container) ValidateLinkageUseCase() *usecase.ValidateLinkage {
	return usecase.NewValidateLinkage(c.Tasks, c.Reports, c.Ledger, c.Logger)
}

// IntegrateUseCase returns a new Integrate use case. progress receives
// human-readable step output; prompter handles interactive auth.
func (c *Container) IntegrateUseCase(progress io.Writer, prompter domain.AuthPrompter) (*usecase.Integrate, error) {
	if c.Git == nil {
		return nil, domain.ErrNotGitRepository
	}

	secrets := config.NewSecretsFile(filepath.Join(c.RepoRoot, c.Config.SecretsFile))
	auth := usecase.NewAuthResolver(
		gh.NewProbe(c.Executor, c.RepoRoot),
		prompter,
		secrets,
		c.Logger,
	)

	return usecase.NewIntegrate(
		c.Tasks,
		c.Reports,
		c.Ledger,
		c.Git,
		auth,
		c.forgeFactory(),
		c.Clock,
		c.Logger,
		progress,
		c.Config.GitHub,
	), nil
}

// forgeFactory selects the transport matching the resolved auth method.
func (c *Container) forgeFactory() usecase.ForgeFactory {
	return func(ctx context.Context, auth domain.Auth) (domain.Forge, error) {
		if auth.Method == domain.AuthToken {
			return gh.NewRESTForge(ctx, auth.Token), nil
		}
		return gh.NewCLIForge(c.Executor, c.RepoRoot), nil
	}
}
