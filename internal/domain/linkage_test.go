package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckLinkage(t *testing.T) {
	t.Run("fully linked", func(t *testing.T) {
		sets := LinkageSets{
			Tasks:   IDSet([]string{"T001", "T002"}),
			Reports: IDSet([]string{"T001", "T002"}),
			Ledger:  IDSet([]string{"T001", "T002"}),
		}
		assert.Empty(t, CheckLinkage(sets))
	})

	t.Run("all three categories", func(t *testing.T) {
		sets := LinkageSets{
			Tasks:   IDSet([]string{"T001", "T002"}),
			Reports: IDSet([]string{"T001", "T003"}),
			Ledger:  IDSet([]string{"T001"}),
		}

		violations := CheckLinkage(sets)
		assert.Equal(t, []string{
			"Task 'T002' has no corresponding report",
			"Report 'T003' has no corresponding task",
			"Task 'T002' is not recorded in the ledger",
		}, violationMessages(violations))
	})

	t.Run("sorted ascending within a category", func(t *testing.T) {
		sets := LinkageSets{
			Tasks:   IDSet([]string{"T003", "T001", "T002"}),
			Reports: IDSet(nil),
			Ledger:  IDSet([]string{"T001", "T002", "T003"}),
		}

		violations := CheckLinkage(sets)
		assert.Equal(t, []string{
			"Task 'T001' has no corresponding report",
			"Task 'T002' has no corresponding report",
			"Task 'T003' has no corresponding report",
		}, violationMessages(violations))
	})

	t.Run("empty stores", func(t *testing.T) {
		assert.Empty(t, CheckLinkage(LinkageSets{
			Tasks:   IDSet(nil),
			Reports: IDSet(nil),
			Ledger:  IDSet(nil),
		}))
	})
}
