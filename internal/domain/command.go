package domain

// ExecCommand describes an external command to run.
// Fields are ordered to minimize memory padding.
type ExecCommand struct {
	Program string
	Args    []string
	Dir     string
}

// NewExecCommand creates a command with arguments.
func NewExecCommand(dir, program string, args ...string) *ExecCommand {
	return &ExecCommand{
		Program: program,
		Args:    args,
		Dir:     dir,
	}
}
