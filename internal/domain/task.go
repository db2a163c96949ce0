// Package domain contains core business entities and interfaces.
package domain

// Task represents an externally authored unit of work.
// Tasks are read-only to taskbridge; an authoring process owns them.
// Fields are ordered to minimize memory padding.
type Task struct {
	ID                 string   `yaml:"task_id"`             // Stable identifier, e.g. "T001"
	Title              string   `yaml:"title"`               // Short title (required)
	Goal               string   `yaml:"goal"`                // What the task should achieve
	Context            string   `yaml:"context"`             // Free text, recommended <= 10 lines
	AcceptanceCriteria []string `yaml:"acceptance_criteria"` // Ordered, non-empty when present
}

// CriterionResult records the outcome of a single acceptance criterion.
type CriterionResult struct {
	Criterion string `yaml:"criterion"`
	Passed    bool   `yaml:"passed"`
}

// FileChange describes one modified file in a report.
type FileChange struct {
	Path        string `yaml:"path"`
	Description string `yaml:"description"`
}

// Verification holds the commands a report author ran and their results.
type Verification struct {
	CommandsRun []string `yaml:"commands_run"`
	Results     []string `yaml:"results"`
}

// Report records how a task was completed. Reports map 1:1 to tasks by
// naming convention (<task_id>.report.yaml) and are immutable once validated.
type Report struct {
	Status                    string            `yaml:"status"`
	Summary                   []string          `yaml:"summary"`
	AcceptanceCriteriaResults []CriterionResult `yaml:"acceptance_criteria_results"`
	FilesModified             []FileChange      `yaml:"files_modified"`
	Verification              Verification      `yaml:"verification"`
	Risks                     []string          `yaml:"risks,omitempty"`
	NextSteps                 []string          `yaml:"next_steps,omitempty"`
}
