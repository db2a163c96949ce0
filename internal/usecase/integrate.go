package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/taskbridge/taskbridge/internal/domain"
)

// networkTimeout bounds each remote call (forge API, remote branch probe,
// push) individually rather than the run as a whole.
const networkTimeout = 8 * time.Second

// ForgeFactory builds the Forge implementation matching the resolved auth
// method: the gh CLI for a session, direct REST calls for a bearer token.
type ForgeFactory func(ctx context.Context, auth domain.Auth) (domain.Forge, error)

// IntegrateInput contains the parameters for running the integration.
type IntegrateInput struct {
	TaskID string

	// SkipPR stops after the issue stage; no branch, commit, push or PR.
	SkipPR bool

	// CI forces non-interactive auth resolution.
	CI bool

	// RepoOverride is the owner/repo slug from the environment, empty when
	// unset.
	RepoOverride string

	// Token is a bearer token from the environment, empty when unset.
	Token string

	// ProjectNumber is the project board override; recognized but not
	// acted upon beyond a warning.
	ProjectNumber string
}

// IntegrateOutput contains the outcome of the integration run.
type IntegrateOutput struct {
	Repo   string
	Branch string
	Issue  *domain.IssueRef
	PR     *domain.PullRef
}

// Integrate is the use case that turns a completed task into its external
// representation: a tracking issue, a branch with a synthesized commit, a
// pull request, and a ledger entry.
//
// Failure severity is staged: a missing task, unresolved repository or
// unresolved auth aborts the run; a missing report or a failed issue
// reconcile degrades it with a warning; a PR-stage failure after a
// successful issue stage is reported distinctly, with the ledger already
// updated.
type Integrate struct {
	tasks    domain.TaskStore
	reports  domain.ReportStore
	ledger   domain.LedgerStore
	git      domain.Git
	auth     *AuthResolver
	newForge ForgeFactory
	clock    domain.Clock
	logger   domain.Logger
	progress io.Writer

	labels       []string
	baseBranches []string
}

// NewIntegrate creates a new Integrate use case.
func NewIntegrate(
	tasks domain.TaskStore,
	reports domain.ReportStore,
	ledger domain.LedgerStore,
	git domain.Git,
	auth *AuthResolver,
	newForge ForgeFactory,
	clock domain.Clock,
	logger domain.Logger,
	progress io.Writer,
	github domain.GitHubConfig,
) *Integrate {
	return &Integrate{
		tasks:        tasks,
		reports:      reports,
		ledger:       ledger,
		git:          git,
		auth:         auth,
		newForge:     newForge,
		clock:        clock,
		logger:       logger,
		progress:     progress,
		labels:       github.IssueLabels,
		baseBranches: github.BaseBranches,
	}
}

// Execute runs the integration pipeline for one task id.
func (uc *Integrate) Execute(ctx context.Context, in IntegrateInput) (*IntegrateOutput, error) {
	task, err := uc.tasks.Load(in.TaskID)
	if err != nil {
		return nil, err
	}

	report, err := uc.reports.Load(in.TaskID)
	if err != nil {
		// A missing or unreadable report degrades to task-only content.
		uc.logger.Warn("no usable report, continuing without it", "task", in.TaskID, "error", err)
		report = nil
	}

	repo, err := uc.resolveRepo(in.RepoOverride)
	if err != nil {
		return nil, err
	}
	uc.printf("Repository: %s\n", repo)

	auth, err := uc.resolveAuth(ctx, in)
	if err != nil {
		return nil, err
	}
	uc.printf("Authenticated via %s\n", auth.Method)

	forge, err := uc.newForge(ctx, *auth)
	if err != nil {
		return nil, err
	}

	issue := uc.reconcileIssue(ctx, forge, repo, task, report)
	if issue != nil {
		uc.printf("Issue: %s\n", issue.URL)
	}

	out := &IntegrateOutput{
		Repo:   repo,
		Branch: domain.BranchName(task.ID, task.Title),
		Issue:  issue,
	}

	if in.ProjectNumber != "" {
		uc.logger.Warn("project board integration is not implemented, ignoring project number",
			"project", in.ProjectNumber)
	}

	var prErr error
	if in.SkipPR {
		uc.printf("Skipping branch and pull request\n")
	} else {
		out.PR, prErr = uc.publish(ctx, forge, repo, task, report, issue, out.Branch)
		if out.PR != nil {
			uc.printf("Pull request: %s\n", out.PR.URL)
		}
	}

	if err := uc.mergeLedger(task.ID, out.Branch, issue, out.PR); err != nil {
		return nil, err
	}
	uc.printf("Ledger updated for %s\n", task.ID)

	if prErr != nil {
		return out, prErr
	}
	return out, nil
}

func (uc *Integrate) resolveRepo(override string) (string, error) {
	remoteURL, err := uc.git.RemoteURL("origin")
	if err != nil {
		uc.logger.Debug("no origin remote", "error", err)
		remoteURL = ""
	}
	repo := domain.ResolveRepository(override, remoteURL)
	if repo == "" {
		return "", domain.ErrNoRepository
	}
	return repo, nil
}

func (uc *Integrate) resolveAuth(ctx context.Context, in IntegrateInput) (*domain.Auth, error) {
	return uc.auth.Execute(ctx, AuthResolverInput{Token: in.Token, CI: in.CI})
}

// reconcileIssue finds the tracking issue by the task id in the title and
// updates its body, or creates it. Any failure degrades the run to a nil
// issue reference with a warning; the pipeline continues.
func (uc *Integrate) reconcileIssue(ctx context.Context, forge domain.Forge, repo string, task *domain.Task, report *domain.Report) *domain.IssueRef {
	callCtx, cancel := context.WithTimeout(ctx, networkTimeout)
	defer cancel()

	body := domain.IssueBody(task, report)

	issues, err := forge.SearchIssues(callCtx, repo, task.ID)
	if err != nil {
		uc.logger.Warn("issue search failed, skipping issue stage", "task", task.ID, "error", err)
		return nil
	}
	for _, candidate := range issues {
		if !strings.Contains(candidate.Title, task.ID) {
			continue
		}
		ref, err := forge.UpdateIssueBody(callCtx, repo, candidate.Number, body)
		if err != nil {
			uc.logger.Warn("issue update failed", "issue", candidate.Number, "error", err)
			return nil
		}
		return ref
	}

	ref, err := forge.CreateIssue(callCtx, repo, domain.NewIssue{
		Title:  domain.IssueTitle(task),
		Body:   body,
		Labels: uc.labels,
	})
	if err != nil {
		uc.logger.Warn("issue creation failed, continuing without issue", "task", task.ID, "error", err)
		return nil
	}
	return ref
}

// publish drives the branch/commit/push/PR stage. Errors here leave the
// branch and commit in place and are reported distinctly from issue-stage
// failures.
func (uc *Integrate) publish(ctx context.Context, forge domain.Forge, repo string, task *domain.Task, report *domain.Report, issue *domain.IssueRef, branch string) (*domain.PullRef, error) {
	if err := uc.ensureBranch(ctx, branch); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPullRequestFailed, err)
	}
	uc.printf("Branch: %s\n", branch)

	if err := uc.commitIfDirty(task, issue); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPullRequestFailed, err)
	}

	if err := uc.push(ctx, branch); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPullRequestFailed, err)
	}

	pr, err := uc.createPullRequest(ctx, forge, repo, task, report, issue, branch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPullRequestFailed, err)
	}
	return pr, nil
}

// ensureBranch checks out the task branch, reusing it when it already exists
// locally or on the remote.
func (uc *Integrate) ensureBranch(ctx context.Context, branch string) error {
	local, err := uc.git.LocalBranchExists(branch)
	if err != nil {
		return err
	}
	if local {
		uc.logger.Info("reusing existing local branch", "branch", branch)
		return uc.git.Checkout(branch, false)
	}

	probeCtx, cancel := context.WithTimeout(ctx, networkTimeout)
	defer cancel()
	remote, err := uc.git.RemoteBranchExists(probeCtx, branch)
	if err != nil {
		uc.logger.Warn("remote branch probe failed, assuming absent", "branch", branch, "error", err)
		remote = false
	}
	if remote {
		uc.logger.Info("reusing existing remote branch", "branch", branch)
		return uc.git.Checkout(branch, false)
	}
	return uc.git.Checkout(branch, true)
}

func (uc *Integrate) commitIfDirty(task *domain.Task, issue *domain.IssueRef) error {
	dirty, err := uc.git.HasUncommittedChanges()
	if err != nil {
		return err
	}
	if !dirty {
		uc.logger.Debug("working tree clean, nothing to commit")
		return nil
	}
	if err := uc.git.StageAll(); err != nil {
		return err
	}
	return uc.git.Commit(domain.CommitMessage(task, issue))
}

// push tries a normal push first and falls back to exactly one forced push
// on rejection.
func (uc *Integrate) push(ctx context.Context, branch string) error {
	pushCtx, cancel := context.WithTimeout(ctx, networkTimeout)
	defer cancel()
	err := uc.git.Push(pushCtx, branch, false)
	if err == nil {
		return nil
	}
	uc.logger.Warn("push rejected, retrying with force", "branch", branch, "error", err)

	forceCtx, cancel := context.WithTimeout(ctx, networkTimeout)
	defer cancel()
	return uc.git.Push(forceCtx, branch, true)
}

// createPullRequest tries the configured base branches in order; the first
// base that accepts the PR wins.
func (uc *Integrate) createPullRequest(ctx context.Context, forge domain.Forge, repo string, task *domain.Task, report *domain.Report, issue *domain.IssueRef, branch string) (*domain.PullRef, error) {
	callCtx, cancel := context.WithTimeout(ctx, networkTimeout)
	defer cancel()

	newPR := domain.NewPullRequest{
		Title: domain.IssueTitle(task),
		Body:  domain.PRBody(task, report, issue),
		Head:  branch,
	}

	var lastErr error
	for _, base := range uc.baseBranches {
		newPR.Base = base
		pr, err := forge.CreatePullRequest(callCtx, repo, newPR)
		if err == nil {
			return pr, nil
		}
		uc.logger.Warn("pull request creation failed", "base", base, "error", err)
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("no base branches configured")
	}
	return nil, lastErr
}

// mergeLedger records the outcome durably. An unparsable ledger is replaced
// with a fresh one, loudly.
func (uc *Integrate) mergeLedger(taskID, branch string, issue *domain.IssueRef, pr *domain.PullRef) error {
	ledger, err := uc.ledger.Load()
	if err != nil {
		if !errors.Is(err, domain.ErrLedgerUnparsable) {
			return err
		}
		uc.logger.Warn("ledger unparsable, starting fresh", "error", err)
		ledger = domain.NewLedger()
	}
	ledger.Merge(taskID, branch, issue, pr, uc.clock.Now())
	return uc.ledger.Save(ledger)
}

func (uc *Integrate) printf(format string, args ...any) {
	if uc.progress != nil {
		fmt.Fprintf(uc.progress, format, args...)
	}
}
