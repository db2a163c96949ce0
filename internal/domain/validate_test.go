package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func taskContract() *Contract {
	return &Contract{
		RequiredFields: []string{"task_id", "title", "goal"},
	}
}

func reportContract() *Contract {
	return &Contract{
		RequiredFields: []string{"task_id", "status", "summary", "acceptance_criteria_results"},
		Enums:          map[string][]string{"status": {"completed", "partial", "failed"}},
	}
}

func validTaskDoc() map[string]any {
	return map[string]any{
		"task_id":             "T001",
		"title":               "A task",
		"goal":                "Do the thing",
		"context":             "short",
		"acceptance_criteria": []any{"it works"},
	}
}

func validReportDoc() map[string]any {
	return map[string]any{
		"task_id": "T001",
		"status":  "completed",
		"summary": []any{"did the thing"},
		"acceptance_criteria_results": []any{
			map[string]any{"criterion": "it works", "passed": true},
		},
	}
}

func TestValidateTaskDocument(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.Empty(t, ValidateTaskDocument(validTaskDoc(), taskContract(), "t.yaml"))
	})

	t.Run("context over ten lines", func(t *testing.T) {
		doc := validTaskDoc()
		doc["context"] = "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n11"
		violations := ValidateTaskDocument(doc, taskContract(), "t.yaml")
		assert.Contains(t, violationMessages(violations), "'context' has 11 lines > 10")
	})

	t.Run("empty acceptance criteria", func(t *testing.T) {
		doc := validTaskDoc()
		doc["acceptance_criteria"] = []any{}
		violations := ValidateTaskDocument(doc, taskContract(), "t.yaml")
		assert.Contains(t, violationMessages(violations), "'acceptance_criteria' must not be empty")
	})

	t.Run("non-string acceptance criteria", func(t *testing.T) {
		doc := validTaskDoc()
		doc["acceptance_criteria"] = []any{"ok", 1}
		violations := ValidateTaskDocument(doc, taskContract(), "t.yaml")
		assert.Contains(t, violationMessages(violations), "'acceptance_criteria' must be a list of strings")
	})

	t.Run("inputs must be string list", func(t *testing.T) {
		doc := validTaskDoc()
		doc["inputs"] = "not a list"
		violations := ValidateTaskDocument(doc, taskContract(), "t.yaml")
		assert.Contains(t, violationMessages(violations), "'inputs' must be a list of strings")
	})

	t.Run("routing requires playbook and contracts", func(t *testing.T) {
		doc := validTaskDoc()
		doc["routing"] = map[string]any{"contracts": []any{"task"}}
		violations := ValidateTaskDocument(doc, taskContract(), "t.yaml")
		assert.Contains(t, violationMessages(violations), "'routing.playbook' is required")
	})
}

func TestValidateReportDocument(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.Empty(t, ValidateReportDocument(validReportDoc(), reportContract(), "r.yaml"))
	})

	t.Run("missing acceptance_criteria_results", func(t *testing.T) {
		doc := validReportDoc()
		delete(doc, "acceptance_criteria_results")
		violations := ValidateReportDocument(doc, reportContract(), "r.yaml")

		msgs := violationMessages(violations)
		assert.Contains(t, msgs, "missing required field 'acceptance_criteria_results'")
		assert.Contains(t, msgs, "'acceptance_criteria_results' must be a non-empty list")
	})

	t.Run("summary over six lines", func(t *testing.T) {
		doc := validReportDoc()
		doc["summary"] = []any{"1", "2", "3", "4", "5", "6", "7"}
		violations := ValidateReportDocument(doc, reportContract(), "r.yaml")
		assert.Contains(t, violationMessages(violations), "'summary' has 7 lines > 6")
	})

	t.Run("summary must be a string list", func(t *testing.T) {
		doc := validReportDoc()
		doc["summary"] = "a plain string"
		violations := ValidateReportDocument(doc, reportContract(), "r.yaml")
		assert.Contains(t, violationMessages(violations), "'summary' must be a list of strings")
	})

	t.Run("passed must be boolean", func(t *testing.T) {
		doc := validReportDoc()
		doc["acceptance_criteria_results"] = []any{
			map[string]any{"criterion": "it works", "passed": "yes"},
		}
		violations := ValidateReportDocument(doc, reportContract(), "r.yaml")
		assert.Contains(t, violationMessages(violations), "acceptance_criteria_results[0].passed must be boolean")
	})

	t.Run("verification lists", func(t *testing.T) {
		doc := validReportDoc()
		doc["verification"] = map[string]any{"commands_run": "go test", "results": []any{"ok"}}
		violations := ValidateReportDocument(doc, reportContract(), "r.yaml")
		assert.Contains(t, violationMessages(violations), "verification.commands_run must be a list of strings")
	})
}
