package domain

import "fmt"

// Default line-count limits, overridable per contract.
const (
	DefaultContextMaxLines = 10
	DefaultSummaryMaxLines = 6
)

// ValidateTaskDocument checks a decoded task document against the task
// contract plus the structural rules the contract cannot express.
func ValidateTaskDocument(doc map[string]any, c *Contract, source string) []Violation {
	out := c.Validate(doc, source)
	add := func(format string, args ...any) {
		out = append(out, Violation{Source: source, Message: fmt.Sprintf(format, args...)})
	}

	if v := c.MaxLinesViolation(doc, "context", DefaultContextMaxLines, source); v != nil {
		out = append(out, *v)
	}

	for _, field := range []string{"inputs", "outputs"} {
		if val, ok := doc[field]; ok && val != nil && !IsStringList(val) {
			add("'%s' must be a list of strings", field)
		}
	}

	if ac, ok := doc["acceptance_criteria"]; ok && ac != nil {
		switch {
		case !IsStringList(ac):
			add("'acceptance_criteria' must be a list of strings")
		case len(ac.([]any)) == 0:
			add("'acceptance_criteria' must not be empty")
		}
	}

	if routing, ok := doc["routing"]; ok && routing != nil {
		m, isMap := asMapping(routing)
		if !isMap {
			add("'routing' must be a mapping")
		} else {
			if _, ok := m["playbook"]; !ok {
				add("'routing.playbook' is required")
			}
			contracts, ok := m["contracts"]
			if !ok {
				add("'routing.contracts' is required")
			} else if !IsStringList(contracts) {
				add("'routing.contracts' must be a list of strings")
			}
		}
	}

	return out
}

// ValidateReportDocument checks a decoded report document against the report
// contract plus the report-specific structural rules.
func ValidateReportDocument(doc map[string]any, c *Contract, source string) []Violation {
	out := c.Validate(doc, source)
	add := func(format string, args ...any) {
		out = append(out, Violation{Source: source, Message: fmt.Sprintf(format, args...)})
	}

	if v := c.MaxLinesViolation(doc, "summary", DefaultSummaryMaxLines, source); v != nil {
		out = append(out, *v)
	}

	if summary, ok := doc["summary"]; !ok || !IsStringList(summary) {
		add("'summary' must be a list of strings")
	}

	acr, ok := doc["acceptance_criteria_results"]
	list, isList := acr.([]any)
	if !ok || !isList || len(list) == 0 {
		add("'acceptance_criteria_results' must be a non-empty list")
	} else {
		for i, elem := range list {
			item, isMap := asMapping(elem)
			if !isMap {
				continue // shape violation already reported by the contract
			}
			if passed, ok := item["passed"]; ok {
				if _, isBool := passed.(bool); !isBool {
					add("acceptance_criteria_results[%d].passed must be boolean", i)
				}
			}
		}
	}

	if verification, ok := doc["verification"]; ok {
		if m, isMap := asMapping(verification); isMap {
			for _, field := range []string{"commands_run", "results"} {
				if val, ok := m[field]; ok && !IsStringList(val) {
					add("verification.%s must be a list of strings", field)
				}
			}
		}
	}

	for _, field := range []string{"risks", "next_steps"} {
		if val, ok := doc[field]; ok && val != nil && !IsStringList(val) {
			add("'%s' must be a list of strings", field)
		}
	}

	return out
}
