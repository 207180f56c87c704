package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/expense-notify/internal/domain"
	"github.com/expense-notify/internal/pkg/id"
	"github.com/expense-notify/internal/pkg/validate"
)

// EventSink consumes validated expense mutation events.
type EventSink interface {
	HandleEvent(ctx context.Context, ev *domain.ExpenseEvent)
}

// EventHandler binds the change-event feed to the notification pipeline.
// The feed delivers at least once and must never see a pipeline failure,
// so this endpoint acknowledges every well-formed event with 202.
type EventHandler struct {
	sink EventSink
}

func NewEventHandler(sink EventSink) *EventHandler {
	return &EventHandler{sink: sink}
}

func (h *EventHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var ev domain.ExpenseEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&ev); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !snapshotsMatchKind(&ev) {
		writeError(w, http.StatusBadRequest, "event snapshots do not match kind")
		return
	}
	if ev.EventID == "" {
		ev.EventID = id.New()
	}

	h.sink.HandleEvent(r.Context(), &ev)
	writeJSON(w, http.StatusAccepted, MessageEnvelope{Message: "accepted"})
}

func snapshotsMatchKind(ev *domain.ExpenseEvent) bool {
	switch ev.Kind {
	case domain.EventExpenseCreated:
		return ev.After != nil
	case domain.EventExpenseUpdated:
		return ev.Before != nil && ev.After != nil
	case domain.EventExpenseDeleted:
		return ev.Before != nil
	}
	return false
}
