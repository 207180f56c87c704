// Package cleanup runs the periodic stale-token sweep.
package cleanup

import (
	"context"
	"log/slog"
	"time"
)

type tokenCounter interface {
	CountTokenHolders(ctx context.Context) (int, error)
}

// Service periodically surveys how many users hold a delivery token. The
// sweep only observes: dead tokens are pruned by delivery reconciliation,
// not here.
type Service struct {
	store tokenCounter
	log   *slog.Logger
}

func NewService(store tokenCounter, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// Run performs one sweep.
func (s *Service) Run(ctx context.Context) error {
	s.log.Info("starting token cleanup sweep")
	count, err := s.store.CountTokenHolders(ctx)
	if err != nil {
		s.log.Error("token cleanup sweep failed", "err", err)
		return err
	}
	s.log.Info("token cleanup sweep finished", "users_with_tokens", count)
	return nil
}

// Start blocks, running a sweep every interval until ctx is cancelled.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.Run(ctx)
		}
	}
}
