// Package executor provides command execution functionality.
package executor

import (
	"context"
	"os/exec"

	"github.com/taskbridge/taskbridge/internal/domain"
)

// Client implements domain.CommandExecutor.
type Client struct{}

// NewClient creates a new command executor client.
func NewClient() *Client {
	return &Client{}
}

// Ensure Client implements domain.CommandExecutor interface.
var _ domain.CommandExecutor = (*Client)(nil)

// Execute runs the command and returns its standard output. The context
// bounds the command's lifetime; a hung collaborator cannot wedge the run.
// On failure the returned *exec.ExitError carries the captured stderr.
func (c *Client) Execute(ctx context.Context, cmd *domain.ExecCommand) ([]byte, error) {
	// #nosec G204 - cmd.Program and cmd.Args come from trusted callers
	execCmd := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}
	return execCmd.Output()
}
