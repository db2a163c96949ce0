// Package usecase implements the application use cases on top of the
// domain ports.
package usecase

import (
	"context"

	"github.com/taskbridge/taskbridge/internal/domain"
)

// ValidateTasksInput contains the parameters for validating tasks.
type ValidateTasksInput struct {
	Path string // a task document or a directory of them
}

// ValidateTasksOutput contains the result of validating tasks.
type ValidateTasksOutput struct {
	Violations []domain.Violation
	Files      int
}

// ValidateTasks is the use case for validating task documents against the
// task contract.
type ValidateTasks struct {
	docs      domain.DocumentSource
	contracts domain.ContractStore
}

// NewValidateTasks creates a new ValidateTasks use case.
func NewValidateTasks(docs domain.DocumentSource, contracts domain.ContractStore) *ValidateTasks {
	return &ValidateTasks{docs: docs, contracts: contracts}
}

// Execute validates every task document under the input path. Validation is
// batch-tolerant: violations for all documents are collected and reported
// together, and a document that fails to parse contributes a single
// violation without aborting the scan.
func (uc *ValidateTasks) Execute(_ context.Context, in ValidateTasksInput) (*ValidateTasksOutput, error) {
	contract, err := uc.contracts.LoadTask()
	if err != nil {
		return nil, err
	}

	files, err := uc.docs.Files(in.Path)
	if err != nil {
		return nil, err
	}

	out := &ValidateTasksOutput{Files: len(files)}
	for _, file := range files {
		doc, err := uc.docs.Read(file)
		if err != nil {
			out.Violations = append(out.Violations, domain.Violation{
				Source:  file,
				Message: err.Error(),
			})
			continue
		}
		out.Violations = append(out.Violations, domain.ValidateTaskDocument(doc, contract, file)...)
	}
	return out, nil
}
