package domain

// Issue represents a GitHub issue as returned by a Forge search.
// Fields are ordered to minimize memory padding.
type Issue struct {
	Title  string
	URL    string
	Number int
}

// IssueRef points at a tracking issue created or updated for a task.
type IssueRef struct {
	URL    string
	Number int
}

// PullRef points at a pull request created for a task.
type PullRef struct {
	URL    string
	Number int
}

// NewIssue configures issue creation.
type NewIssue struct {
	Title  string
	Body   string
	Labels []string
}

// NewPullRequest configures pull request creation.
type NewPullRequest struct {
	Title string
	Body  string
	Head  string
	Base  string
}
