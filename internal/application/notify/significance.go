package notify

import (
	"slices"

	"github.com/expense-notify/internal/domain"
)

// SignificantChange reports whether an edit touched a field worth notifying
// about: description, amount, paidBy, splitBetween or category. The
// splitBetween participant lists compare as sets.
func SignificantChange(before, after *domain.Expense) bool {
	if before == nil || after == nil {
		return true
	}
	if before.Description != after.Description ||
		before.Amount != after.Amount ||
		before.PaidBy != after.PaidBy ||
		before.Category != after.Category {
		return true
	}
	return !sameMembers(before.SplitBetween, after.SplitBetween)
}

func sameMembers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := slices.Clone(a)
	bs := slices.Clone(b)
	slices.Sort(as)
	slices.Sort(bs)
	return slices.Equal(as, bs)
}
