// Package gh provides the two GitHub transports: the authenticated gh CLI
// and direct REST calls with a bearer token.
package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/taskbridge/taskbridge/internal/domain"
)

const issueSearchLimit = "10"

// CLIForge implements domain.Forge via the gh command-line tool.
// Fields are ordered to minimize memory padding.
type CLIForge struct {
	executor domain.CommandExecutor
	dir      string
}

// NewCLIForge creates a gh-backed forge running commands in dir.
func NewCLIForge(executor domain.CommandExecutor, dir string) *CLIForge {
	return &CLIForge{executor: executor, dir: dir}
}

// Ensure CLIForge implements domain.Forge interface.
var _ domain.Forge = (*CLIForge)(nil)

// cliIssue matches the --json fields requested from gh issue list.
type cliIssue struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Number int    `json:"number"`
}

// SearchIssues lists issues matching the query.
func (f *CLIForge) SearchIssues(ctx context.Context, repo, query string) ([]domain.Issue, error) {
	out, err := f.executor.Execute(ctx, domain.NewExecCommand(f.dir, "gh",
		"issue", "list",
		"--repo", repo,
		"--search", query,
		"--state", "all",
		"--json", "number,title,url",
		"--limit", issueSearchLimit,
	))
	if err != nil {
		return nil, fmt.Errorf("gh issue list: %w", err)
	}

	var raw []cliIssue
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("parse gh issue list output: %w", err)
	}

	issues := make([]domain.Issue, 0, len(raw))
	for _, i := range raw {
		issues = append(issues, domain.Issue{Number: i.Number, Title: i.Title, URL: i.URL})
	}
	return issues, nil
}

// CreateIssue creates a new issue and parses the issue URL gh prints.
func (f *CLIForge) CreateIssue(ctx context.Context, repo string, in domain.NewIssue) (*domain.IssueRef, error) {
	args := []string{
		"issue", "create",
		"--repo", repo,
		"--title", in.Title,
		"--body", in.Body,
	}
	for _, label := range in.Labels {
		args = append(args, "--label", label)
	}

	out, err := f.executor.Execute(ctx, domain.NewExecCommand(f.dir, "gh", args...))
	if err != nil {
		return nil, fmt.Errorf("gh issue create: %w", err)
	}
	return refFromURL(strings.TrimSpace(string(out)))
}

// UpdateIssueBody replaces the body of an existing issue.
func (f *CLIForge) UpdateIssueBody(ctx context.Context, repo string, number int, body string) (*domain.IssueRef, error) {
	_, err := f.executor.Execute(ctx, domain.NewExecCommand(f.dir, "gh",
		"issue", "edit", strconv.Itoa(number),
		"--repo", repo,
		"--body", body,
	))
	if err != nil {
		return nil, fmt.Errorf("gh issue edit: %w", err)
	}
	return &domain.IssueRef{
		Number: number,
		URL:    fmt.Sprintf("https://github.com/%s/issues/%d", repo, number),
	}, nil
}

// CreatePullRequest opens a pull request from head to base.
func (f *CLIForge) CreatePullRequest(ctx context.Context, repo string, in domain.NewPullRequest) (*domain.PullRef, error) {
	out, err := f.executor.Execute(ctx, domain.NewExecCommand(f.dir, "gh",
		"pr", "create",
		"--repo", repo,
		"--title", in.Title,
		"--body", in.Body,
		"--head", in.Head,
		"--base", in.Base,
	))
	if err != nil {
		return nil, fmt.Errorf("gh pr create: %w", err)
	}

	ref, err := refFromURL(strings.TrimSpace(string(out)))
	if err != nil {
		return nil, err
	}
	return &domain.PullRef{Number: ref.Number, URL: ref.URL}, nil
}

// refFromURL extracts the number from a gh-printed issue or PR URL.
func refFromURL(url string) (*domain.IssueRef, error) {
	idx := strings.LastIndex(url, "/")
	if idx < 0 || idx == len(url)-1 {
		return nil, fmt.Errorf("unexpected gh output %q", url)
	}
	number, err := strconv.Atoi(url[idx+1:])
	if err != nil {
		return nil, fmt.Errorf("unexpected gh output %q: %w", url, err)
	}
	return &domain.IssueRef{Number: number, URL: url}, nil
}

// Probe implements domain.SessionProbe via gh auth status.
type Probe struct {
	executor domain.CommandExecutor
	dir      string
}

// NewProbe creates a session probe.
func NewProbe(executor domain.CommandExecutor, dir string) *Probe {
	return &Probe{executor: executor, dir: dir}
}

// Ensure Probe implements domain.SessionProbe interface.
var _ domain.SessionProbe = (*Probe)(nil)

// Status returns nil when an authenticated gh session is available.
func (p *Probe) Status(ctx context.Context) error {
	if _, err := p.executor.Execute(ctx, domain.NewExecCommand(p.dir, "gh", "auth", "status")); err != nil {
		return fmt.Errorf("gh auth status: %w", err)
	}
	return nil
}
