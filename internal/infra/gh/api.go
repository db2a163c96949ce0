package gh

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/taskbridge/taskbridge/internal/domain"
)

const listIssuesPerPage = 30

// RESTForge implements domain.Forge against the GitHub REST API with a
// bearer token.
type RESTForge struct {
	client *github.Client
}

// NewRESTForge creates a REST-backed forge authenticated with token.
func NewRESTForge(ctx context.Context, token string) *RESTForge {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &RESTForge{client: github.NewClient(oauth2.NewClient(ctx, ts))}
}

// newRESTForgeWithClient is used by tests to point at a test server.
func newRESTForgeWithClient(client *github.Client) *RESTForge {
	return &RESTForge{client: client}
}

// Ensure RESTForge implements domain.Forge interface.
var _ domain.Forge = (*RESTForge)(nil)

// SearchIssues lists recent issues in the repository; the query is matched
// against titles by the caller, so a plain list call suffices here.
func (f *RESTForge) SearchIssues(ctx context.Context, repo, _ string) ([]domain.Issue, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	raw, _, err := f.client.Issues.ListByRepo(ctx, owner, name, &github.IssueListByRepoOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: listIssuesPerPage},
	})
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}

	issues := make([]domain.Issue, 0, len(raw))
	for _, i := range raw {
		issues = append(issues, domain.Issue{
			Number: i.GetNumber(),
			Title:  i.GetTitle(),
			URL:    i.GetHTMLURL(),
		})
	}
	return issues, nil
}

// CreateIssue creates a new issue.
func (f *RESTForge) CreateIssue(ctx context.Context, repo string, in domain.NewIssue) (*domain.IssueRef, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	issue, _, err := f.client.Issues.Create(ctx, owner, name, &github.IssueRequest{
		Title:  github.String(in.Title),
		Body:   github.String(in.Body),
		Labels: &in.Labels,
	})
	if err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}
	return &domain.IssueRef{Number: issue.GetNumber(), URL: issue.GetHTMLURL()}, nil
}

// UpdateIssueBody replaces the body of an existing issue.
func (f *RESTForge) UpdateIssueBody(ctx context.Context, repo string, number int, body string) (*domain.IssueRef, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	issue, _, err := f.client.Issues.Edit(ctx, owner, name, number, &github.IssueRequest{
		Body: github.String(body),
	})
	if err != nil {
		return nil, fmt.Errorf("update issue #%d: %w", number, err)
	}
	return &domain.IssueRef{Number: issue.GetNumber(), URL: issue.GetHTMLURL()}, nil
}

// CreatePullRequest opens a pull request from head to base.
func (f *RESTForge) CreatePullRequest(ctx context.Context, repo string, in domain.NewPullRequest) (*domain.PullRef, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	pr, _, err := f.client.PullRequests.Create(ctx, owner, name, &github.NewPullRequest{
		Title: github.String(in.Title),
		Body:  github.String(in.Body),
		Head:  github.String(in.Head),
		Base:  github.String(in.Base),
	})
	if err != nil {
		return nil, fmt.Errorf("create pull request: %w", err)
	}
	return &domain.PullRef{Number: pr.GetNumber(), URL: pr.GetHTMLURL()}, nil
}

// splitRepo splits an owner/repo slug.
func splitRepo(repo string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("invalid repository slug %q", repo)
	}
	return owner, name, nil
}
