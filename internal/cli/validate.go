package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taskbridge/taskbridge/internal/app"
	"github.com/taskbridge/taskbridge/internal/domain"
	"github.com/taskbridge/taskbridge/internal/usecase"
)

// newValidateCommand creates the validate command group.
func newValidateCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate documents and their cross-references",
	}

	cmd.AddCommand(
		newValidateTasksCommand(c),
		newValidateReportsCommand(c),
		newValidateLinkageCommand(c),
	)

	return cmd
}

// newValidateTasksCommand creates the validate tasks command.
func newValidateTasksCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks [path]",
		Short: "Validate task documents against the task contract",
		Long: `Validate task documents against the task contract.

Checks every YAML document under the tasks directory (or the given file
or directory). All documents are checked; validation does not stop at
the first failure.

Examples:
  # Validate the whole tasks store
  taskbridge validate tasks

  # Validate a single document
  taskbridge validate tasks .agent/tasks/T001.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(c.RepoRoot, c.Config.Paths.Tasks)
			if len(args) > 0 {
				path = args[0]
			}

			out, err := c.ValidateTasksUseCase().Execute(cmd.Context(), usecase.ValidateTasksInput{Path: path})
			if err != nil {
				return err
			}
			return reportViolations(cmd, "task", out.Files, out.Violations)
		},
	}
}

// newValidateReportsCommand creates the validate reports command.
func newValidateReportsCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "reports [path]",
		Short: "Validate report documents against the report contract",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(c.RepoRoot, c.Config.Paths.Reports)
			if len(args) > 0 {
				path = args[0]
			}

			out, err := c.ValidateReportsUseCase().Execute(cmd.Context(), usecase.ValidateReportsInput{Path: path})
			if err != nil {
				return err
			}
			return reportViolations(cmd, "report", out.Files, out.Violations)
		},
	}
}

// newValidateLinkageCommand creates the validate linkage command.
func newValidateLinkageCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "linkage",
		Short: "Check task/report/ledger cross-references",
		Long: `Check that tasks, reports and the ledger reference each other.

Every task should have a report, every report a task, and every task a
ledger entry. Ids are derived from filenames and ledger entries.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ValidateLinkageUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}

			if len(out.Violations) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "OK: %d task(s), %d report(s), %d ledger entry(s) fully linked\n", out.Tasks, out.Reports, out.Ledger)
				return nil
			}
			for _, v := range out.Violations {
				fmt.Fprintln(cmd.ErrOrStderr(), v.String())
			}
			return fmt.Errorf("%d linkage violation(s)", len(out.Violations))
		},
	}
}

// reportViolations prints violations one per line to stderr and a summary to
// stdout. A non-empty violation list becomes a non-zero exit.
func reportViolations(cmd *cobra.Command, kind string, files int, violations []domain.Violation) error {
	if len(violations) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "OK: %d %s document(s) valid\n", files, kind)
		return nil
	}
	for _, v := range violations {
		fmt.Fprintln(cmd.ErrOrStderr(), v.String())
	}
	return fmt.Errorf("%d violation(s) in %d %s document(s)", len(violations), files, kind)
}
