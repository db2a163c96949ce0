// Package cli provides the command-line interface for taskbridge.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/taskbridge/taskbridge/internal/app"
)

// Command group IDs.
const (
	groupValidation  = "validation"
	groupIntegration = "integration"
)

// NewRootCommand creates the root command for taskbridge.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskbridge",
		Short: "Bridge local task documents to GitHub",
		Long: `taskbridge turns locally authored task and report documents into
their external representation: a tracking issue, a branch, a pull
request, and a durable local ledger.

Tasks, reports and the ledger live under .agent/ by convention and are
kept mutually consistent by the validate commands.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
	}

	root.AddGroup(
		&cobra.Group{ID: groupValidation, Title: "Validation Commands:"},
		&cobra.Group{ID: groupIntegration, Title: "Integration Commands:"},
	)

	validateCmd := newValidateCommand(c)
	validateCmd.GroupID = groupValidation

	integrateCmd := newIntegrateCommand(c)
	integrateCmd.GroupID = groupIntegration

	root.AddCommand(
		validateCmd,
		integrateCmd,
	)

	return root
}
