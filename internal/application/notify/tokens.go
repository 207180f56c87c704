package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/expense-notify/internal/domain"
	"golang.org/x/sync/errgroup"
)

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// Gatherer resolves candidate recipients to delivery tokens, honoring
// per-user opt-outs.
type Gatherer struct {
	users userStore
}

func NewGatherer(users userStore) *Gatherer {
	return &Gatherer{users: users}
}

// Gather looks up every recipient's user document concurrently and emits a
// token record per user that exists, carries a token, and has not opted out
// of prefKey. Output order follows input order. Missing documents are
// skipped; a store error fails the whole step. All lookups are awaited
// before returning — a failing lookup does not cancel its siblings.
func (g *Gatherer) Gather(ctx context.Context, recipientIDs []string, prefKey string) ([]domain.TokenRecord, error) {
	users := make([]*domain.User, len(recipientIDs))
	var eg errgroup.Group
	for i, userID := range recipientIDs {
		eg.Go(func() error {
			u, err := g.users.Get(ctx, userID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil
				}
				return err
			}
			users[i] = u
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("gather tokens: %w", err)
	}

	var records []domain.TokenRecord
	for _, u := range users {
		if u == nil || u.FCMToken == "" {
			continue
		}
		if !u.NotificationsEnabled(prefKey) {
			continue
		}
		records = append(records, domain.TokenRecord{
			Token:    u.FCMToken,
			UserID:   u.UserID,
			UserName: u.Name,
		})
	}
	return records, nil
}
