package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/expense-notify/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// TestNotificationEnvelope wraps the synchronous test-notification response.
type TestNotificationEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps domain sentinel errors to HTTP status codes and the typed
// error codes the callable surface exposes.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, MessageEnvelope{Error: err.Error(), Code: "unauthenticated"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, MessageEnvelope{Error: err.Error(), Code: "not-found"})
	case errors.Is(err, domain.ErrBadRequest):
		writeJSON(w, http.StatusBadRequest, MessageEnvelope{Error: err.Error(), Code: "bad-request"})
	default:
		writeJSON(w, http.StatusInternalServerError, MessageEnvelope{Error: err.Error(), Code: "internal"})
	}
}
