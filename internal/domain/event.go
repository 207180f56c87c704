package domain

import "time"

// EventKind discriminates expense mutation events.
type EventKind string

const (
	EventExpenseCreated EventKind = "created"
	EventExpenseUpdated EventKind = "updated"
	EventExpenseDeleted EventKind = "deleted"
)

// ExpenseEvent is one mutation of an expense document, as delivered by the
// change-event feed. Created events carry only After, deleted events only
// Before, updated events both. Delivery is at least once; duplicate events
// produce duplicate notifications by design of the upstream feed.
type ExpenseEvent struct {
	EventID    string    `json:"id"`
	Kind       EventKind `json:"kind" validate:"required,oneof=created updated deleted"`
	ExpenseID  string    `json:"expenseId" validate:"required"`
	Before     *Expense  `json:"before,omitempty"`
	After      *Expense  `json:"after,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
