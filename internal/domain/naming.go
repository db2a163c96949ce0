package domain

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	slugMaxLen   = 30
	branchMaxLen = 50
)

var (
	nonSlugChars = regexp.MustCompile(`[^\w\s-]`)
	hyphenRuns   = regexp.MustCompile(`[-\s]+`)
)

// commitKeywords are checked in order; the first match wins.
var commitKeywords = []struct {
	keyword string
	typ     string
}{
	{"fix", "fix"},
	{"bug", "fix"},
	{"test", "test"},
	{"doc", "docs"},
	{"refactor", "refactor"},
}

// Slug derives the branch slug from a task title: lower-cased, stripped of
// non-word/non-space/non-hyphen characters, runs of whitespace and hyphens
// collapsed to a single hyphen, truncated and trimmed of edge hyphens.
func Slug(title string) string {
	s := nonSlugChars.ReplaceAllString(strings.ToLower(title), "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	if len(s) > slugMaxLen {
		s = s[:slugMaxLen]
	}
	return strings.Trim(s, "-")
}

// BranchName is the single branch-naming function shared by the orchestrator
// and the ledger merger. It is a pure function of (task id, title): the same
// task always maps to the same branch name.
// Format: feature/<task_id>-<slug>, at most 50 characters, truncated at a
// hyphen boundary so a word is never cut mid-way.
func BranchName(taskID, title string) string {
	branch := fmt.Sprintf("feature/%s-%s", taskID, Slug(title))
	if len(branch) > branchMaxLen {
		branch = branch[:branchMaxLen]
		if idx := strings.LastIndex(branch, "-"); idx >= 0 {
			branch = branch[:idx]
		}
	}
	return branch
}

// CommitType infers the conventional commit type from the task title.
func CommitType(title string) string {
	lower := strings.ToLower(title)
	for _, k := range commitKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.typ
		}
	}
	return "feat"
}

// IssueTitle is the tracking issue title for a task. The task id substring
// is the idempotency key used to find the issue again on later runs.
func IssueTitle(task *Task) string {
	return fmt.Sprintf("[%s] %s", task.ID, task.Title)
}
