package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskbridge/taskbridge/internal/domain"
)

// stdinPrompter implements domain.AuthPrompter on the command's streams.
// The menu goes to stderr so piped stdout stays machine-readable.
type stdinPrompter struct {
	in  *bufio.Reader
	err io.Writer
}

func newStdinPrompter(cmd *cobra.Command) *stdinPrompter {
	return &stdinPrompter{
		in:  bufio.NewReader(cmd.InOrStdin()),
		err: cmd.ErrOrStderr(),
	}
}

// Ensure stdinPrompter implements domain.AuthPrompter interface.
var _ domain.AuthPrompter = (*stdinPrompter)(nil)

// Choose presents the three auth options and returns the user's choice.
func (p *stdinPrompter) Choose() (domain.AuthChoice, error) {
	fmt.Fprintln(p.err, "GitHub authentication required:")
	fmt.Fprintln(p.err, "  1) Log in with the gh CLI (aborts; run 'gh auth login' and retry)")
	fmt.Fprintln(p.err, "  2) Enter a personal access token")
	fmt.Fprintln(p.err, "  3) Skip GitHub integration")
	fmt.Fprint(p.err, "Choice: ")

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return 0, fmt.Errorf("read choice: %w", err)
	}
	return domain.ParseAuthChoice(strings.TrimSpace(line))
}

// ReadToken asks for a personal access token.
func (p *stdinPrompter) ReadToken() (string, error) {
	fmt.Fprint(p.err, "Token: ")
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(line), nil
}
