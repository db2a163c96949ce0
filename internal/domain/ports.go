package domain

import (
	"context"
	"time"
)

// TaskStore reads task documents from the tasks store.
type TaskStore interface {
	// Load retrieves a task by id. Returns ErrTaskNotFound if absent.
	Load(id string) (*Task, error)

	// IDs returns all task ids present in the store, derived from
	// filenames.
	IDs() ([]string, error)
}

// ReportStore reads report documents from the reports store.
type ReportStore interface {
	// Load retrieves the report for a task id. Returns ErrReportNotFound
	// if absent.
	Load(id string) (*Report, error)

	// IDs returns all report ids, with the `.report` suffix stripped.
	IDs() ([]string, error)
}

// LedgerStore loads and saves the ledger document as a whole.
type LedgerStore interface {
	// Load returns the ledger. A missing file yields a fresh empty
	// ledger; an unparsable file yields ErrLedgerUnparsable.
	Load() (*Ledger, error)

	// Save rewrites the whole ledger document atomically.
	Save(ledger *Ledger) error
}

// ContractStore loads declarative schema documents.
type ContractStore interface {
	// LoadTask returns the task contract.
	LoadTask() (*Contract, error)

	// LoadReport returns the report contract.
	LoadReport() (*Contract, error)
}

// DocumentSource provides raw document access for batch validation.
type DocumentSource interface {
	// Files lists the YAML files under path (recursively, sorted), or
	// [path] when path is a single file.
	Files(path string) ([]string, error)

	// Read decodes one document into a generic mapping.
	Read(path string) (map[string]any, error)
}

// Git provides the source-control primitives the orchestrator needs.
type Git interface {
	// RemoteURL returns the URL of the named remote.
	RemoteURL(name string) (string, error)

	// LocalBranchExists checks if a local branch exists.
	LocalBranchExists(branch string) (bool, error)

	// RemoteBranchExists checks if the branch exists on origin.
	RemoteBranchExists(ctx context.Context, branch string) (bool, error)

	// Checkout switches to the branch, creating it when create is true.
	Checkout(branch string, create bool) error

	// HasUncommittedChanges checks the working tree for staged or
	// unstaged changes.
	HasUncommittedChanges() (bool, error)

	// StageAll stages every change in the working tree.
	StageAll() error

	// Commit records the staged changes with the given message.
	Commit(message string) error

	// Push pushes the branch to origin, forced when force is true.
	Push(ctx context.Context, branch string, force bool) error
}

// Forge is the remote repository API. Two implementations exist: the
// authenticated gh CLI and direct REST calls with a bearer token. One is
// selected at auth resolution time and threaded through the orchestrator.
type Forge interface {
	// SearchIssues returns candidate issues for the query; callers match
	// titles themselves.
	SearchIssues(ctx context.Context, repo, query string) ([]Issue, error)

	// CreateIssue creates a new issue.
	CreateIssue(ctx context.Context, repo string, in NewIssue) (*IssueRef, error)

	// UpdateIssueBody replaces the body of an issue, leaving the title
	// untouched.
	UpdateIssueBody(ctx context.Context, repo string, number int, body string) (*IssueRef, error)

	// CreatePullRequest opens a pull request.
	CreatePullRequest(ctx context.Context, repo string, in NewPullRequest) (*PullRef, error)
}

// SessionProbe checks whether a logged-in gh CLI session is available.
type SessionProbe interface {
	// Status returns nil when the session tool reports success.
	Status(ctx context.Context) error
}

// AuthPrompter is the I/O side of interactive auth resolution. The decision
// logic consumes only the enumerated choice, so it is testable without a
// terminal.
type AuthPrompter interface {
	// Choose presents the three options and returns the user's choice.
	Choose() (AuthChoice, error)

	// ReadToken asks for a personal access token.
	ReadToken() (string, error)
}

// TokenSink persists a manually entered token for future runs.
type TokenSink interface {
	// SaveToken appends the token to the local untracked secrets file.
	SaveToken(token string) error
}

// CommandExecutor runs external commands.
type CommandExecutor interface {
	// Execute runs the command and returns its standard output.
	Execute(ctx context.Context, cmd *ExecCommand) ([]byte, error)
}

// Logger is the minimal logging surface used across layers.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
