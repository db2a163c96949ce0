package domain

import (
	"fmt"
	"sort"
)

// LinkageSets holds the three id-sets whose 1:1:1 correspondence the
// linkage check enforces.
type LinkageSets struct {
	Tasks   map[string]bool
	Reports map[string]bool
	Ledger  map[string]bool
}

// CheckLinkage computes the three set differences between tasks, reports and
// ledger entries. Violations are ordered ascending by id within each
// category so repeated runs produce identical output. Success iff the
// returned slice is empty.
func CheckLinkage(sets LinkageSets) []Violation {
	var out []Violation

	for _, id := range sortedMissing(sets.Tasks, sets.Reports) {
		out = append(out, Violation{
			Message: fmt.Sprintf("Task '%s' has no corresponding report", id),
		})
	}

	for _, id := range sortedMissing(sets.Reports, sets.Tasks) {
		out = append(out, Violation{
			Message: fmt.Sprintf("Report '%s' has no corresponding task", id),
		})
	}

	for _, id := range sortedMissing(sets.Tasks, sets.Ledger) {
		out = append(out, Violation{
			Message: fmt.Sprintf("Task '%s' is not recorded in the ledger", id),
		})
	}

	return out
}

// sortedMissing returns the ids in `from` that are absent in `in`, sorted.
func sortedMissing(from, in map[string]bool) []string {
	var ids []string
	for id := range from {
		if !in[id] {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// IDSet builds a set from a slice of ids.
func IDSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
