package usecase

import (
	"context"
	"errors"

	"github.com/taskbridge/taskbridge/internal/domain"
)

// ValidateLinkageOutput contains the result of the linkage check.
type ValidateLinkageOutput struct {
	Violations []domain.Violation
	Tasks      int
	Reports    int
	Ledger     int
}

// ValidateLinkage is the use case for checking the cross-references between
// tasks, reports and the ledger.
type ValidateLinkage struct {
	tasks   domain.TaskStore
	reports domain.ReportStore
	ledger  domain.LedgerStore
	logger  domain.Logger
}

// NewValidateLinkage creates a new ValidateLinkage use case.
func NewValidateLinkage(tasks domain.TaskStore, reports domain.ReportStore, ledger domain.LedgerStore, logger domain.Logger) *ValidateLinkage {
	return &ValidateLinkage{tasks: tasks, reports: reports, ledger: ledger, logger: logger}
}

// Execute cross-checks the three stores. Every task should have a report,
// every report a task, and every task a ledger entry. An unparsable ledger
// is treated as empty so the per-task violations still come out.
func (uc *ValidateLinkage) Execute(_ context.Context) (*ValidateLinkageOutput, error) {
	taskIDs, err := uc.tasks.IDs()
	if err != nil {
		return nil, err
	}
	reportIDs, err := uc.reports.IDs()
	if err != nil {
		return nil, err
	}
	ledger, err := uc.ledger.Load()
	if err != nil {
		if !errors.Is(err, domain.ErrLedgerUnparsable) {
			return nil, err
		}
		uc.logger.Warn("ledger unparsable, treating as empty", "error", err)
		ledger = domain.NewLedger()
	}
	ledgerIDs := ledger.IDs()

	sets := domain.LinkageSets{
		Tasks:   domain.IDSet(taskIDs),
		Reports: domain.IDSet(reportIDs),
		Ledger:  domain.IDSet(ledgerIDs),
	}
	return &ValidateLinkageOutput{
		Violations: domain.CheckLinkage(sets),
		Tasks:      len(taskIDs),
		Reports:    len(reportIDs),
		Ledger:     len(ledgerIDs),
	}, nil
}
