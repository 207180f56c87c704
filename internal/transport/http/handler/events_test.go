package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/expense-notify/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events []*domain.ExpenseEvent
}

func (s *recordingSink) HandleEvent(_ context.Context, ev *domain.ExpenseEvent) {
	s.events = append(s.events, ev)
}

func postEvent(t *testing.T, h *EventHandler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/events/expenses", &buf)
	rec := httptest.NewRecorder()
	h.Receive(rec, req)
	return rec
}

func sampleExpense() *domain.Expense {
	return &domain.Expense{ExpenseID: "e1", GroupID: "g1", PaidBy: "u1", Amount: 12.5, Currency: "EUR", Description: "Lunch"}
}

func TestReceive_Accepted(t *testing.T) {
	sink := &recordingSink{}
	h := NewEventHandler(sink)

	rec := postEvent(t, h, &domain.ExpenseEvent{
		Kind: domain.EventExpenseCreated, ExpenseID: "e1", After: sampleExpense(),
	})

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, sink.events, 1)
	assert.Equal(t, domain.EventExpenseCreated, sink.events[0].Kind)
	// An event id is assigned when the feed didn't supply one.
	assert.NotEmpty(t, sink.events[0].EventID)
}

func TestReceive_KeepsSuppliedEventID(t *testing.T) {
	sink := &recordingSink{}
	h := NewEventHandler(sink)

	rec := postEvent(t, h, &domain.ExpenseEvent{
		EventID: "ev-42", Kind: domain.EventExpenseDeleted, ExpenseID: "e1", Before: sampleExpense(),
	})

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, sink.events, 1)
	assert.Equal(t, "ev-42", sink.events[0].EventID)
}

func TestReceive_MalformedBody(t *testing.T) {
	sink := &recordingSink{}
	h := NewEventHandler(sink)

	rec := postEvent(t, h, "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, sink.events)
}

func TestReceive_UnknownKind(t *testing.T) {
	sink := &recordingSink{}
	h := NewEventHandler(sink)

	rec := postEvent(t, h, map[string]interface{}{
		"kind": "archived", "expenseId": "e1",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, sink.events)
}

func TestReceive_SnapshotKindMismatch(t *testing.T) {
	tests := []struct {
		name  string
		event *domain.ExpenseEvent
	}{
		{"created without after", &domain.ExpenseEvent{Kind: domain.EventExpenseCreated, ExpenseID: "e1", Before: sampleExpense()}},
		{"updated without before", &domain.ExpenseEvent{Kind: domain.EventExpenseUpdated, ExpenseID: "e1", After: sampleExpense()}},
		{"deleted without before", &domain.ExpenseEvent{Kind: domain.EventExpenseDeleted, ExpenseID: "e1", After: sampleExpense()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			h := NewEventHandler(sink)

			rec := postEvent(t, h, tt.event)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, sink.events)
		})
	}
}
