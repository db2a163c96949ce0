// Package git provides the source-control collaborator.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/taskbridge/taskbridge/internal/domain"
)

// Client provides git operations rooted at a repository working tree.
// Read-side queries go through go-git; working-tree mutations and pushes
// shell out to git, which picks up the user's auth and hook configuration.
type Client struct {
	repo     *gogit.Repository
	repoRoot string
}

// NewClient opens the repository containing dir.
func NewClient(dir string) (*Client, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, domain.ErrNotGitRepository
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("resolve worktree: %w", err)
	}

	return &Client{
		repo:     repo,
		repoRoot: wt.Filesystem.Root(),
	}, nil
}

// RepoRoot returns the repository root directory.
func (c *Client) RepoRoot() string {
	return c.repoRoot
}

// Ensure Client implements domain.Git interface.
var _ domain.Git = (*Client)(nil)

// RemoteURL returns the fetch URL of the named remote.
func (c *Client) RemoteURL(name string) (string, error) {
	remote, err := c.repo.Remote(name)
	if err != nil {
		return "", fmt.Errorf("get remote %s: %w", name, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", name)
	}
	return urls[0], nil
}

// LocalBranchExists checks if a local branch exists.
func (c *Client) LocalBranchExists(branch string) (bool, error) {
	_, err := c.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("check branch %s: %w", branch, err)
}

// RemoteBranchExists checks if the branch exists on origin.
func (c *Client) RemoteBranchExists(ctx context.Context, branch string) (bool, error) {
	cmd := exec.CommandContext(ctx, "git", "ls-remote", "--heads", "origin", branch)
	cmd.Dir = c.repoRoot
	out, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("check remote branch %s: %w", branch, err)
	}
	return len(strings.TrimSpace(string(out))) > 0, nil
}

// Checkout switches to the branch, creating it when create is true.
func (c *Client) Checkout(branch string, create bool) error {
	args := []string{"checkout"}
	if create {
		args = append(args, "-b")
	}
	args = append(args, branch)

	cmd := exec.Command("git", args...)
	cmd.Dir = c.repoRoot
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("checkout branch %s: %w: %s", branch, err, string(out))
	}
	return nil
}

// HasUncommittedChanges checks for staged or unstaged changes.
// git status --porcelain returns empty output when the tree is clean.
func (c *Client) HasUncommittedChanges() (bool, error) {
	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = c.repoRoot
	out, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("check uncommitted changes: %w", err)
	}
	return len(out) > 0, nil
}

// StageAll stages every change in the working tree.
func (c *Client) StageAll() error {
	cmd := exec.Command("git", "add", "-A")
	cmd.Dir = c.repoRoot
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("stage changes: %w: %s", err, string(out))
	}
	return nil
}

// Commit records the staged changes with the given message.
func (c *Client) Commit(message string) error {
	cmd := exec.Command("git", "commit", "-m", message)
	cmd.Dir = c.repoRoot
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("commit: %w: %s", err, string(out))
	}
	return nil
}

// Push pushes the branch to origin. go-git push requires auth config, so
// this shells out to git, which uses the user's credential setup.
func (c *Client) Push(ctx context.Context, branch string, force bool) error {
	args := []string{"push"}
	if force {
		args = append(args, "-f")
	}
	args = append(args, "-u", "origin", branch)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.repoRoot
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("push branch %s: %w: %s", branch, err, string(out))
	}
	return nil
}
