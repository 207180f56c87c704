package domain

import "time"

// Expense is a single ledger entry in a shared-expense group. This service
// only ever reads expenses from event snapshots; it never writes them.
type Expense struct {
	ExpenseID    string    `json:"id"`
	GroupID      string    `json:"groupId"`
	PaidBy       string    `json:"paidBy"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	SplitBetween []string  `json:"splitBetween"`
	CreatedAt    time.Time `json:"created"`
}

// Group is read-only from this service's perspective.
type Group struct {
	GroupID   string   `json:"id" dynamodbav:"group_id"`
	Name      string   `json:"name" dynamodbav:"name"`
	Currency  string   `json:"currency" dynamodbav:"currency"`
	MemberIDs []string `json:"memberIds" dynamodbav:"member_ids"`
}
