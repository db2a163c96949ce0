package domain

import "time"

// LedgerVersion is the current ledger document version.
const LedgerVersion = 2

// GitHubLinks holds the external references recorded for a ledger entry.
type GitHubLinks struct {
	IssueURL    string `yaml:"issue_url,omitempty"`
	IssueNumber int    `yaml:"issue_number,omitempty"`
	Branch      string `yaml:"branch,omitempty"`
	PRURL       string `yaml:"pr_url,omitempty"`
	PRNumber    int    `yaml:"pr_number,omitempty"`
}

// LedgerEntry is the durable integration outcome for one task id.
type LedgerEntry struct {
	ID        string      `yaml:"id"`
	Status    string      `yaml:"status,omitempty"`
	GitHub    GitHubLinks `yaml:"github,omitempty"`
	Completed string      `yaml:"completed,omitempty"` // date, YYYY-MM-DD
}

// Ledger is the versioned record of integration outcomes per task id.
// It is an in-memory model with a narrow load/merge/save contract; the
// store layer owns (de)serialization and atomic writes.
type Ledger struct {
	Version int            `yaml:"version"`
	Tasks   []*LedgerEntry `yaml:"tasks"`
}

// NewLedger returns an empty versioned ledger.
func NewLedger() *Ledger {
	return &Ledger{Version: LedgerVersion}
}

// Find returns the entry for a task id, or nil.
func (l *Ledger) Find(taskID string) *LedgerEntry {
	for _, entry := range l.Tasks {
		if entry != nil && entry.ID == taskID {
			return entry
		}
	}
	return nil
}

// IDs returns the task ids of all entries, in document order.
func (l *Ledger) IDs() []string {
	ids := make([]string, 0, len(l.Tasks))
	for _, entry := range l.Tasks {
		if entry != nil && entry.ID != "" {
			ids = append(ids, entry.ID)
		}
	}
	return ids
}

// Merge records the integration outcome for a task id: it finds the entry or
// appends a new one (never a duplicate), marks it completed, and overwrites
// the issue/branch/PR references with the latest values. Prior PR references
// survive only when no new PR reference is given.
func (l *Ledger) Merge(taskID, branch string, issue *IssueRef, pr *PullRef, completed time.Time) *LedgerEntry {
	entry := l.Find(taskID)
	if entry == nil {
		entry = &LedgerEntry{ID: taskID}
		l.Tasks = append(l.Tasks, entry)
	}

	entry.Status = "completed"
	entry.GitHub.Branch = branch
	if issue != nil {
		entry.GitHub.IssueURL = issue.URL
		entry.GitHub.IssueNumber = issue.Number
	}
	if pr != nil {
		entry.GitHub.PRURL = pr.URL
		entry.GitHub.PRNumber = pr.Number
	}
	entry.Completed = completed.Format("2006-01-02")

	return entry
}
