package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbridge/taskbridge/internal/app"
	"github.com/taskbridge/taskbridge/internal/domain"
	"github.com/taskbridge/taskbridge/internal/testutil"
)

// newIntegrateContainer wires a container whose gh probe always fails, so
// the auth prompt becomes reachable.
func newIntegrateContainer() (*app.Container, *testutil.MockCommandExecutor) {
	tasks := testutil.NewMockTaskStore()
	tasks.Tasks["T001"] = &domain.Task{ID: "T001", Title: "Fix login bug", Goal: "works"}

	git := &testutil.MockGit{RemoteURLV: "git@github.com:owner/repo.git"}

	c := app.NewWithDeps(
		domain.NewDefaultConfig(),
		tasks,
		testutil.NewMockReportStore(),
		testutil.NewMockLedgerStore(),
		nil, nil, git,
		&testutil.MockClock{}, testutil.NopLogger{},
	)

	executor := testutil.NewMockCommandExecutor()
	executor.Errs["gh auth status"] = errors.New("not logged in")
	c.Executor = executor
	return c, executor
}

func TestIntegrateCommand_SkipIsNotAFailure(t *testing.T) {
	c, _ := newIntegrateContainer()

	root := NewRootCommand(c, "test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader("3\n"))
	root.SetArgs([]string{"integrate", "T001"})

	err := root.Execute()

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Skipped GitHub integration.")
	// The prompt menu went to stderr.
	assert.Contains(t, errOut.String(), "Skip GitHub integration")
}

func TestIntegrateCommand_CIWithoutAuth(t *testing.T) {
	c, _ := newIntegrateContainer()

	root := NewRootCommand(c, "test")
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"integrate", "T001", "--ci"})

	err := root.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no GitHub authentication available")
}

func TestIntegrateCommand_InvalidChoice(t *testing.T) {
	c, _ := newIntegrateContainer()

	root := NewRootCommand(c, "test")
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader("7\n"))
	root.SetArgs([]string{"integrate", "T001"})

	err := root.Execute()

	assert.ErrorIs(t, err, domain.ErrInvalidChoice)
}

func TestIntegrateCommand_OutsideRepository(t *testing.T) {
	c, _ := newIntegrateContainer()
	c.Git = nil

	root := NewRootCommand(c, "test")
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"integrate", "T001"})

	err := root.Execute()

	assert.ErrorIs(t, err, domain.ErrNotGitRepository)
}

func TestStdinPrompter(t *testing.T) {
	t.Run("parses choices", func(t *testing.T) {
		root := NewRootCommand(nil, "test")
		root.SetErr(&bytes.Buffer{})
		root.SetIn(strings.NewReader("2\nghp_token\n"))
		p := newStdinPrompter(root)

		choice, err := p.Choose()
		require.NoError(t, err)
		assert.Equal(t, domain.AuthChoiceToken, choice)

		token, err := p.ReadToken()
		require.NoError(t, err)
		assert.Equal(t, "ghp_token", token)
	})

	t.Run("invalid input", func(t *testing.T) {
		root := NewRootCommand(nil, "test")
		root.SetErr(&bytes.Buffer{})
		root.SetIn(strings.NewReader("maybe\n"))

		_, err := newStdinPrompter(root).Choose()
		assert.ErrorIs(t, err, domain.ErrInvalidChoice)
	})
}
