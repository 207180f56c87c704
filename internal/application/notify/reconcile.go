package notify

import (
	"context"
	"log/slog"

	"github.com/expense-notify/internal/domain"
)

type tokenStore interface {
	ClearTokens(ctx context.Context, userIDs []string) error
}

// Reconciler prunes delivery tokens the provider reports as permanently
// dead. Best-effort hygiene: a stale token left behind only risks a future
// failed send, never incorrect data.
type Reconciler struct {
	store tokenStore
	log   *slog.Logger
}

func NewReconciler(store tokenStore, log *slog.Logger) *Reconciler {
	return &Reconciler{store: store, log: log}
}

// Reconcile walks the dispatch results (positionally aligned with records),
// collects the owners of permanently dead tokens, and clears their token
// fields in one atomic batched update. Transient failures are logged only.
// No write is issued when nothing is permanently dead.
func (r *Reconciler) Reconcile(ctx context.Context, records []domain.TokenRecord, res *domain.BatchResult) error {
	var stale []string
	for i, resp := range res.Responses {
		if resp.Err == nil {
			continue
		}
		rec := records[i]
		if resp.Err.Permanent() {
			r.log.Warn("pruning dead delivery token",
				"user_id", rec.UserID, "code", resp.Err.Code)
			stale = append(stale, rec.UserID)
		} else {
			r.log.Warn("push delivery failed",
				"user_id", rec.UserID, "code", resp.Err.Code, "err", resp.Err.Message)
		}
	}
	if len(stale) == 0 {
		return nil
	}
	return r.store.ClearTokens(ctx, stale)
}
