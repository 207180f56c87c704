package notify

import (
	"slices"

	"github.com/expense-notify/internal/domain"
)

// Recipients computes the ordered candidate recipient set for an event:
// the group's members with every occurrence of the actor removed. Deleted
// events keep the actor — all current members hear about a removal.
func Recipients(memberIDs []string, actorID string, kind domain.EventKind) []string {
	if kind == domain.EventExpenseDeleted {
		return slices.Clone(memberIDs)
	}
	recipients := make([]string, 0, len(memberIDs))
	for _, id := range memberIDs {
		if id != actorID {
			recipients = append(recipients, id)
		}
	}
	return recipients
}
