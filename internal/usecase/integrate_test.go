package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbridge/taskbridge/internal/domain"
	"github.com/taskbridge/taskbridge/internal/testutil"
)

// integrateFixture bundles the mocks behind a wired Integrate use case.
type integrateFixture struct {
	tasks   *testutil.MockTaskStore
	reports *testutil.MockReportStore
	ledger  *testutil.MockLedgerStore
	git     *testutil.MockGit
	forge   *testutil.MockForge
	probe   *testutil.MockSessionProbe
	uc      *Integrate
}

func newIntegrateFixture() *integrateFixture {
	f := &integrateFixture{
		tasks:   testutil.NewMockTaskStore(),
		reports: testutil.NewMockReportStore(),
		ledger:  testutil.NewMockLedgerStore(),
		git:     &testutil.MockGit{RemoteURLV: "git@github.com:owner/repo.git"},
		forge:   &testutil.MockForge{},
		probe:   &testutil.MockSessionProbe{},
	}

	f.tasks.Tasks["T001"] = &domain.Task{
		ID:                 "T001",
		Title:              "Fix login bug",
		Goal:               "Users can log in again",
		AcceptanceCriteria: []string{"login works"},
	}
	f.reports.Reports["T001"] = &domain.Report{
		Status:  "completed",
		Summary: []string{"fixed it"},
	}
	f.forge.CreateRef = &domain.IssueRef{URL: "https://github.com/owner/repo/issues/5", Number: 5}
	f.forge.UpdateRef = &domain.IssueRef{URL: "https://github.com/owner/repo/issues/5", Number: 5}
	f.forge.PRRef = &domain.PullRef{URL: "https://github.com/owner/repo/pull/6", Number: 6}

	auth := NewAuthResolver(f.probe, &testutil.MockAuthPrompter{}, &testutil.MockTokenSink{}, testutil.NopLogger{})
	newForge := func(_ context.Context, _ domain.Auth) (domain.Forge, error) {
		return f.forge, nil
	}
	clock := &testutil.MockClock{NowTime: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)}

	f.uc = NewIntegrate(
		f.tasks, f.reports, f.ledger, f.git,
		auth, newForge, clock, testutil.NopLogger{}, nil,
		domain.GitHubConfig{
			IssueLabels:  []string{"agent-task", "automation"},
			BaseBranches: []string{"main", "master"},
		},
	)
	return f
}

func TestIntegrate_Execute_FullRun(t *testing.T) {
	f := newIntegrateFixture()
	f.git.Dirty = true

	out, err := f.uc.Execute(context.Background(), IntegrateInput{TaskID: "T001"})

	require.NoError(t, err)
	assert.Equal(t, "owner/repo", out.Repo)
	assert.Equal(t, "feature/T001-fix-login-bug", out.Branch)
	require.NotNil(t, out.Issue)
	assert.Equal(t, 5, out.Issue.Number)
	require.NotNil(t, out.PR)
	assert.Equal(t, 6, out.PR.Number)

	// New branch was created and uncommitted changes were committed.
	assert.Equal(t, "feature/T001-fix-login-bug", f.git.CheckedOut)
	assert.True(t, f.git.CheckedOutNew)
	assert.True(t, f.git.StagedAll)
	assert.True(t, strings.HasPrefix(f.git.CommitMsg, "fix(T001): fix login bug"))
	assert.Contains(t, f.git.CommitMsg, "Closes #5")

	// Issue was created with the fixed labels.
	require.NotNil(t, f.forge.CreatedIssue)
	assert.Equal(t, "[T001] Fix login bug", f.forge.CreatedIssue.Title)
	assert.Equal(t, []string{"agent-task", "automation"}, f.forge.CreatedIssue.Labels)

	// Ledger holds the outcome, including the shared branch name.
	require.NotNil(t, f.ledger.Saved)
	entry := f.ledger.Saved.Find("T001")
	require.NotNil(t, entry)
	assert.Equal(t, "completed", entry.Status)
	assert.Equal(t, "feature/T001-fix-login-bug", entry.GitHub.Branch)
	assert.Equal(t, 5, entry.GitHub.IssueNumber)
	assert.Equal(t, 6, entry.GitHub.PRNumber)
	assert.Equal(t, "2025-03-14", entry.Completed)
}

func TestIntegrate_Execute_UpdatesExistingIssue(t *testing.T) {
	f := newIntegrateFixture()
	f.forge.SearchResult = []domain.Issue{
		{Title: "[T002] Unrelated", Number: 3},
		{Title: "[T001] Fix login bug", Number: 5},
	}

	out, err := f.uc.Execute(context.Background(), IntegrateInput{TaskID: "T001"})

	require.NoError(t, err)
	// The matching issue was updated in place, never recreated.
	assert.Nil(t, f.forge.CreatedIssue)
	assert.Equal(t, 5, f.forge.UpdatedNumber)
	assert.Contains(t, f.forge.UpdatedBody, "*This issue was automatically created by taskbridge.*")
	assert.Equal(t, 5, out.Issue.Number)
}

func TestIntegrate_Execute_IssueFailureDegrades(t *testing.T) {
	f := newIntegrateFixture()
	f.forge.CreateErr = errors.New("api down")

	out, err := f.uc.Execute(context.Background(), IntegrateInput{TaskID: "T001"})

	require.NoError(t, err)
	assert.Nil(t, out.Issue)
	require.NotNil(t, out.PR)

	// The ledger entry still lands, without issue references.
	entry := f.ledger.Saved.Find("T001")
	require.NotNil(t, entry)
	assert.Zero(t, entry.GitHub.IssueNumber)
	assert.Equal(t, 6, entry.GitHub.PRNumber)
}

func TestIntegrate_Execute_ForcePushFallback(t *testing.T) {
	t.Run("rejection triggers exactly one forced push", func(t *testing.T) {
		f := newIntegrateFixture()
		f.git.PushErrs = []error{errors.New("rejected: non-fast-forward"), nil}

		out, err := f.uc.Execute(context.Background(), IntegrateInput{TaskID: "T001"})

		require.NoError(t, err)
		assert.Equal(t, []bool{false, true}, f.git.PushCalls)
		require.NotNil(t, out.PR)
	})

	t.Run("forced push failure is a PR-stage failure", func(t *testing.T) {
		f := newIntegrateFixture()
		f.git.PushErrs = []error{errors.New("rejected"), errors.New("still rejected")}

		out, err := f.uc.Execute(context.Background(), IntegrateInput{TaskID: "T001"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrPullRequestFailed)
		assert.Equal(t, []bool{false, true}, f.git.PushCalls)
		assert.Nil(t, out.PR)

		// The issue stage succeeded and is already in the ledger.
		entry := f.ledger.Saved.Find("T001")
		require.NotNil(t, entry)
		assert.Equal(t, 5, entry.GitHub.IssueNumber)
	})
}

func TestIntegrate_Execute_BaseBranchFallback(t *testing.T) {
	t.Run("retries against master", func(t *testing.T) {
		f := newIntegrateFixture()
		f.forge.PRErrs = []error{errors.New("no main branch"), nil}

		out, err := f.uc.Execute(context.Background(), IntegrateInput{TaskID: "T001"})

		require.NoError(t, err)
		require.Len(t, f.forge.CreatedPRs, 2)
		assert.Equal(t, "main", f.forge.CreatedPRs[0].Base)
		assert.Equal(t, "master", f.forge.CreatedPRs[1].Base)
		require.NotNil(t, out.PR)
	})

	t.Run("all bases failing is distinct from issue failure", func(t *testing.T) {
		f := newIntegrateFixture()
		f.forge.PRErrs = []error{errors.New("no main"), errors.New("no master")}

		out, err := f.uc.Execute(context.Background(), IntegrateInput{TaskID: "T001"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrPullRequestFailed)
		assert.NotNil(t, out.Issue)
		assert.Nil(t, out.PR)
	})
}

func TestIntegrate_Execute_SkipPR(t *testing.T) {
	f := newIntegrateFixture()
	f.git.Dirty = true

	out, err := f.uc.Execute(context.Background(), IntegrateInput{TaskID: "T001", SkipPR: true})

	require.NoError(t, err)
	assert.Nil(t, out.PR)

	// No branch, commit or push happened.
	assert.Empty(t, f.git.CheckedOut)
	assert.False(t, f.git.StagedAll)
	assert.Empty(t, f.git.PushCalls)
	assert.Empty(t, f.forge.CreatedPRs)

	// The ledger entry still lands with the branch name and issue ref.
	entry := f.ledger.Saved.Find("T001")
	require.NotNil(t, entry)
	assert.Equal(t, "feature/T001-fix-login-bug", entry.GitHub.Branch)
	assert.Equal(t, 5, entry.GitHub.IssueNumber)
}

func TestIntegrate_Execute_ReusesExistingBranch(t *testing.T) {
	f := newIntegrateFixture()
	f.git.LocalExists = true

	_, err := f.uc.Execute(context.Background(), IntegrateInput{TaskID: "T001"})

	require.NoError(t, err)
	assert.Equal(t, "feature/T001-fix-login-bug", f.git.CheckedOut)
	assert.False(t, f.git.CheckedOutNew)
}

func TestIntegrate_Execute_MissingReportDegrades(t *testing.T) {
	f := newIntegrateFixture()
	delete(f.reports.Reports, "T001")

	out, err := f.uc.Execute(context.Background(), IntegrateInput{TaskID: "T001"})

	require.NoError(t, err)
	require.NotNil(t, f.forge.CreatedIssue)
	assert.NotContains(t, f.forge.CreatedIssue.Body, "## Implementation Report")
	require.NotNil(t, out.PR)
}

func TestIntegrate_Execute_UnreadableReportDegrades(t *testing.T) {
	f := newIntegrateFixture()
	f.reports.LoadErr = errors.New("parse report T001: yaml: line 3: mapping values are not allowed in this context")

	out, err := f.uc.Execute(context.Background(), IntegrateInput{TaskID: "T001"})

	require.NoError(t, err)
	require.NotNil(t, f.forge.CreatedIssue)
	assert.NotContains(t, f.forge.CreatedIssue.Body, "## Implementation Report")
	require.NotNil(t, out.PR)
	assert.NotNil(t, f.ledger.Saved)
}

func TestIntegrate_Execute_MissingTaskIsFatal(t *testing.T) {
	f := newIntegrateFixture()

	_, err := f.uc.Execute(context.Background(), IntegrateInput{TaskID: "T999"})

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Nil(t, f.ledger.Saved)
}

func TestIntegrate_Execute_NoRepositoryIsFatal(t *testing.T) {
	f := newIntegrateFixture()
	f.git.RemoteURLV = "git@gitlab.com:owner/repo.git"

	_, err := f.uc.Execute(context.Background(), IntegrateInput{TaskID: "T001"})

	assert.ErrorIs(t, err, domain.ErrNoRepository)
}

func TestIntegrate_Execute_RepoOverrideWins(t *testing.T) {
	f := newIntegrateFixture()
	f.git.RemoteURLErr = errors.New("no remote")

	out, err := f.uc.Execute(context.Background(), IntegrateInput{
		TaskID:       "T001",
		RepoOverride: "override/repo",
	})

	require.NoError(t, err)
	assert.Equal(t, "override/repo", out.Repo)
}

func TestIntegrate_Execute_CIWithoutAuthIsFatal(t *testing.T) {
	f := newIntegrateFixture()
	f.probe.Err = errors.New("not logged in")

	_, err := f.uc.Execute(context.Background(), IntegrateInput{TaskID: "T001", CI: true})

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.Nil(t, f.ledger.Saved)
}

func TestIntegrate_Execute_UnparsableLedgerStartsFresh(t *testing.T) {
	f := newIntegrateFixture()
	f.ledger.LoadErr = domain.ErrLedgerUnparsable

	_, err := f.uc.Execute(context.Background(), IntegrateInput{TaskID: "T001"})

	require.NoError(t, err)
	require.NotNil(t, f.ledger.Saved)
	assert.Equal(t, domain.LedgerVersion, f.ledger.Saved.Version)
	assert.NotNil(t, f.ledger.Saved.Find("T001"))
}

func TestIntegrate_Execute_MergeIsIdempotent(t *testing.T) {
	f := newIntegrateFixture()

	_, err := f.uc.Execute(context.Background(), IntegrateInput{TaskID: "T001"})
	require.NoError(t, err)

	// Second run over the same ledger must not duplicate the entry.
	f.ledger.Ledger = f.ledger.Saved
	_, err = f.uc.Execute(context.Background(), IntegrateInput{TaskID: "T001"})
	require.NoError(t, err)

	assert.Len(t, f.ledger.Saved.Tasks, 1)
	assert.Equal(t, 2, f.ledger.Saves)
}
