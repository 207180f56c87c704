package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/expense-notify/internal/domain"
	"github.com/expense-notify/internal/transport/http/middleware"
)

// TestSender sends a test notification to the given user's own token.
type TestSender interface {
	SendTest(ctx context.Context, userID string) (string, error)
}

// NotificationHandler handles the synchronous test-notification endpoint.
type NotificationHandler struct {
	svc TestSender
}

func NewNotificationHandler(svc TestSender) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) SendTest(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httpError(w, fmt.Errorf("caller identity required: %w", domain.ErrUnauthenticated))
		return
	}
	msg, err := h.svc.SendTest(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TestNotificationEnvelope{Success: true, Message: msg})
}
