package usecase

import (
	"context"

	"github.com/taskbridge/taskbridge/internal/domain"
)

// ValidateReportsInput contains the parameters for validating reports.
type ValidateReportsInput struct {
	Path string // a report document or a directory of them
}

// ValidateReportsOutput contains the result of validating reports.
type ValidateReportsOutput struct {
	Violations []domain.Violation
	Files      int
}

// ValidateReports is the use case for validating report documents against
// the report contract.
type ValidateReports struct {
	docs      domain.DocumentSource
	contracts domain.ContractStore
}

// NewValidateReports creates a new ValidateReports use case.
func NewValidateReports(docs domain.DocumentSource, contracts domain.ContractStore) *ValidateReports {
	return &ValidateReports{docs: docs, contracts: contracts}
}

// Execute validates every report document under the input path, collecting
// violations across the whole batch.
func (uc *ValidateReports) Execute(_ context.Context, in ValidateReportsInput) (*ValidateReportsOutput, error) {
	contract, err := uc.contracts.LoadReport()
	if err != nil {
		return nil, err
	}

	files, err := uc.docs.Files(in.Path)
	if err != nil {
		return nil, err
	}

	out := &ValidateReportsOutput{Files: len(files)}
	for _, file := range files {
		doc, err := uc.docs.Read(file)
		if err != nil {
			out.Violations = append(out.Violations, domain.Violation{
				Source:  file,
				Message: err.Error(),
			})
			continue
		}
		out.Violations = append(out.Violations, domain.ValidateReportDocument(doc, contract, file)...)
	}
	return out, nil
}
