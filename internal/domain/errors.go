package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound      = errors.New("task file not found")
	ErrReportNotFound    = errors.New("report file not found")
	ErrContractNotFound  = errors.New("contract file not found")
	ErrNoRepository      = errors.New("could not detect GitHub repository")
	ErrNotGitRepository  = errors.New("not a git repository (or any of the parent directories)")
	ErrAuthRequired      = errors.New("no GitHub authentication available")
	ErrAuthAborted       = errors.New("authentication aborted")
	ErrAuthSkipped       = errors.New("GitHub integration skipped")
	ErrInvalidChoice     = errors.New("invalid authentication choice")
	ErrPullRequestFailed = errors.New("pull request creation failed")
	ErrLedgerUnparsable  = errors.New("ledger file is not parsable")
	ErrNotMapping        = errors.New("top-level YAML must be a mapping/object")
)
