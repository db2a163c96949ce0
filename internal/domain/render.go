package domain

import (
	"fmt"
	"strings"
)

const (
	// issueFooter marks automatically managed issues.
	issueFooter = "*This issue was automatically created by taskbridge.*"

	// commitCriteriaLimit caps how many acceptance criteria appear in a
	// commit message body.
	commitCriteriaLimit = 3

	commitDescMaxLen = 50
)

// CommitMessage synthesizes a conventional commit message for a task.
// The first line is `<type>(<task_id>): <desc>`; the body carries the goal
// and the first few acceptance criteria, plus an issue-closing footer when
// an issue reference exists.
func CommitMessage(task *Task, issue *IssueRef) string {
	desc := nonSlugChars.ReplaceAllString(strings.ToLower(task.Title), "")
	if len(desc) > commitDescMaxLen {
		desc = desc[:commitDescMaxLen]
	}

	lines := []string{
		fmt.Sprintf("%s(%s): %s", CommitType(task.Title), task.ID, desc),
		"",
		"- " + task.Goal,
	}

	criteria := task.AcceptanceCriteria
	if len(criteria) > commitCriteriaLimit {
		criteria = criteria[:commitCriteriaLimit]
	}
	for _, c := range criteria {
		lines = append(lines, "- "+c)
	}

	if issue != nil && issue.Number > 0 {
		lines = append(lines, "", fmt.Sprintf("Closes #%d", issue.Number))
	}

	return strings.Join(lines, "\n")
}

// IssueBody renders the tracking issue body from a task and, when present,
// its completion report. The output is deterministic: the same inputs always
// produce byte-identical bodies, so reconcile runs are idempotent.
func IssueBody(task *Task, report *Report) string {
	lines := []string{
		"## Goal\n" + task.Goal + "\n",
		"## Context\n" + task.Context + "\n",
		"## Acceptance Criteria",
	}

	for _, c := range task.AcceptanceCriteria {
		lines = append(lines, "- [ ] "+c)
	}
	lines = append(lines, "")

	if report != nil {
		lines = append(lines, "## Implementation Report\n")
		lines = append(lines, fmt.Sprintf("**Status:** %s\n", report.Status))

		if len(report.Summary) > 0 {
			lines = append(lines, "### Summary")
			for _, item := range report.Summary {
				lines = append(lines, "- "+item)
			}
			lines = append(lines, "")
		}

		if len(report.AcceptanceCriteriaResults) > 0 {
			lines = append(lines, "### Verification Results")
			for _, r := range report.AcceptanceCriteriaResults {
				mark := "❌"
				if r.Passed {
					mark = "✅"
				}
				criterion := r.Criterion
				if criterion == "" {
					criterion = "Unknown"
				}
				lines = append(lines, mark+" "+criterion)
			}
			lines = append(lines, "")
		}

		if len(report.FilesModified) > 0 {
			lines = append(lines, "### Files Modified")
			for _, f := range report.FilesModified {
				lines = append(lines, fmt.Sprintf("- `%s` - %s", f.Path, f.Description))
			}
			lines = append(lines, "")
		}
	}

	lines = append(lines, "---", issueFooter)

	return strings.Join(lines, "\n")
}

// PRBody renders the pull request body. Sections fall back to placeholders
// when no report is available.
func PRBody(task *Task, report *Report, issue *IssueRef) string {
	lines := []string{"## Task"}

	if issue != nil && issue.Number > 0 {
		lines = append(lines, fmt.Sprintf("Closes #%d", issue.Number))
	}
	lines = append(lines, "")

	lines = append(lines, "## Summary")
	if report != nil && len(report.Summary) > 0 {
		for _, item := range report.Summary {
			lines = append(lines, "- "+item)
		}
	} else {
		lines = append(lines, "- "+task.Goal)
	}
	lines = append(lines, "")

	lines = append(lines, "## Changes")
	if report != nil && len(report.FilesModified) > 0 {
		for _, f := range report.FilesModified {
			lines = append(lines, fmt.Sprintf("- `%s` - %s", f.Path, f.Description))
		}
	} else {
		lines = append(lines, "_See commit history for details_")
	}
	lines = append(lines, "")

	lines = append(lines, "## Verification")
	if report != nil && (len(report.Verification.CommandsRun) > 0 || len(report.Verification.Results) > 0) {
		if len(report.Verification.CommandsRun) > 0 {
			lines = append(lines, "**Commands Run:**")
			for _, cmd := range report.Verification.CommandsRun {
				lines = append(lines, fmt.Sprintf("- `%s`", cmd))
			}
			lines = append(lines, "")
		}
		if len(report.Verification.Results) > 0 {
			lines = append(lines, "**Results:**")
			for _, r := range report.Verification.Results {
				lines = append(lines, "- "+r)
			}
		}
	} else {
		lines = append(lines, "- [ ] Tests pass", "- [ ] Acceptance criteria met")
	}
	lines = append(lines, "")

	lines = append(lines,
		"## Checklist",
		"- [ ] Tests pass",
		"- [ ] Acceptance criteria met",
		"- [ ] No secrets committed",
		"- [ ] Documentation updated",
	)

	return strings.Join(lines, "\n")
}
