package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskbridge/taskbridge/internal/app"
	"github.com/taskbridge/taskbridge/internal/domain"
	"github.com/taskbridge/taskbridge/internal/usecase"
)

// newIntegrateCommand creates the integrate command.
func newIntegrateCommand(c *app.Container) *cobra.Command {
	var opts struct {
		SkipPR bool
		CI     bool
	}

	cmd := &cobra.Command{
		Use:   "integrate <task-id>",
		Short: "Create the issue, branch, PR and ledger entry for a task",
		Long: `Run the GitHub integration pipeline for a completed task.

The task's tracking issue is created or updated (matched by the task id
in the issue title), a feature branch is checked out, uncommitted
changes are committed with a synthesized message, the branch is pushed,
a pull request is opened, and the outcome is recorded in the ledger.

Examples:
  # Full integration
  taskbridge integrate T001

  # Issue and ledger only, no branch or PR
  taskbridge integrate T001 --skip-pr

  # Non-interactive (fails instead of prompting for auth)
  taskbridge integrate T001 --ci`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := c.IntegrateUseCase(cmd.OutOrStdout(), newStdinPrompter(cmd))
			if err != nil {
				return err
			}

			ci := opts.CI || c.Env.CI

			out, err := uc.Execute(cmd.Context(), usecase.IntegrateInput{
				TaskID:        args[0],
				SkipPR:        opts.SkipPR,
				CI:            ci,
				RepoOverride:  c.Env.Repository,
				Token:         c.Env.Token(),
				ProjectNumber: c.Env.ProjectNumber,
			})
			if err != nil {
				// Declining GitHub integration is a valid outcome, not a
				// failure.
				if errors.Is(err, domain.ErrAuthSkipped) {
					fmt.Fprintln(cmd.OutOrStdout(), "Skipped GitHub integration.")
					return nil
				}
				if errors.Is(err, domain.ErrAuthAborted) {
					return fmt.Errorf("not authenticated: run 'gh auth login' and retry")
				}
				if errors.Is(err, domain.ErrAuthRequired) {
					return fmt.Errorf("no GitHub authentication available: set GITHUB_TOKEN or log in with 'gh auth login'")
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Integration complete for %s\n", out.Repo)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.SkipPR, "skip-pr", false, "Create/update the issue and ledger entry only")
	cmd.Flags().BoolVar(&opts.CI, "ci", false, "Never prompt; fail if no auth backend succeeds")

	return cmd
}
