package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/expense-notify/internal/domain"
)

type groupStore interface {
	Get(ctx context.Context, groupID string) (*domain.Group, error)
}

// PushSender is the push-delivery API the dispatcher talks to.
type PushSender interface {
	SendBatch(ctx context.Context, msgs []domain.Message) (*domain.BatchResult, error)
	Send(ctx context.Context, msg domain.Message) error
}

// Service orchestrates the notification pipeline for expense mutation
// events: resolve recipients, gather tokens, build the payload, dispatch,
// reconcile dead tokens.
type Service struct {
	groups     groupStore
	users      userStore
	gatherer   *Gatherer
	push       PushSender
	reconciler *Reconciler
	log        *slog.Logger
}

func NewService(groups groupStore, users userStore, tokens tokenStore, push PushSender, log *slog.Logger) *Service {
	return &Service{
		groups:     groups,
		users:      users,
		gatherer:   NewGatherer(users),
		push:       push,
		reconciler: NewReconciler(tokens, log),
		log:        log,
	}
}

// HandleEvent runs the pipeline for one mutation event. It never returns an
// error: the event feed delivers at least once, and a propagated failure
// would only trigger a re-delivery storm. Faults are logged and swallowed.
func (s *Service) HandleEvent(ctx context.Context, ev *domain.ExpenseEvent) {
	log := s.log.With("event_id", ev.EventID, "kind", ev.Kind, "expense_id", ev.ExpenseID)

	var err error
	switch ev.Kind {
	case domain.EventExpenseCreated:
		err = s.handleAdded(ctx, ev, log)
	case domain.EventExpenseUpdated:
		err = s.handleEdited(ctx, ev, log)
	case domain.EventExpenseDeleted:
		err = s.handleDeleted(ctx, ev, log)
	default:
		log.Warn("unknown event kind")
		return
	}
	if err != nil {
		log.Error("notification pipeline failed", "err", err)
	}
}

func (s *Service) handleAdded(ctx context.Context, ev *domain.ExpenseEvent, log *slog.Logger) error {
	exp := ev.After
	if exp == nil {
		log.Warn("created event without post-image")
		return nil
	}
	group, ok, err := s.resolveGroup(ctx, exp.GroupID, log)
	if err != nil || !ok {
		return err
	}
	payerName, err := s.userName(ctx, exp.PaidBy)
	if err != nil {
		return err
	}
	recipients := Recipients(group.MemberIDs, exp.PaidBy, ev.Kind)
	records, ok, err := s.gatherFor(ctx, recipients, domain.PrefExpenseAdded, log)
	if err != nil || !ok {
		return err
	}
	return s.dispatch(ctx, AddedPayload(exp, group, payerName), records, log)
}

func (s *Service) handleEdited(ctx context.Context, ev *domain.ExpenseEvent, log *slog.Logger) error {
	if !SignificantChange(ev.Before, ev.After) {
		log.Info("no significant change, skipping")
		return nil
	}
	exp := ev.After
	if exp == nil {
		log.Warn("updated event without post-image")
		return nil
	}
	group, ok, err := s.resolveGroup(ctx, exp.GroupID, log)
	if err != nil || !ok {
		return err
	}
	editorName, err := s.userName(ctx, exp.PaidBy)
	if err != nil {
		return err
	}
	recipients := Recipients(group.MemberIDs, exp.PaidBy, ev.Kind)
	records, ok, err := s.gatherFor(ctx, recipients, domain.PrefExpenseEdited, log)
	if err != nil || !ok {
		return err
	}
	return s.dispatch(ctx, EditedPayload(exp, group, editorName), records, log)
}

func (s *Service) handleDeleted(ctx context.Context, ev *domain.ExpenseEvent, log *slog.Logger) error {
	exp := ev.Before
	if exp == nil {
		log.Warn("deleted event without pre-image")
		return nil
	}
	group, ok, err := s.resolveGroup(ctx, exp.GroupID, log)
	if err != nil || !ok {
		return err
	}
	recipients := Recipients(group.MemberIDs, exp.PaidBy, ev.Kind)
	records, ok, err := s.gatherFor(ctx, recipients, domain.PrefExpenseDeleted, log)
	if err != nil || !ok {
		return err
	}
	return s.dispatch(ctx, DeletedPayload(exp, group), records, log)
}

// SendTest delivers a single test notification to the caller's own token.
// This is the only path that propagates typed errors: the caller is waiting
// for a response.
func (s *Service) SendTest(ctx context.Context, userID string) (string, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("user delivery token: %w", domain.ErrNotFound)
		}
		return "", fmt.Errorf("look up user: %w", domain.ErrInternal)
	}
	if u.FCMToken == "" {
		return "", fmt.Errorf("user delivery token: %w", domain.ErrNotFound)
	}
	if err := s.push.Send(ctx, TestPayload().MessageFor(u.FCMToken)); err != nil {
		s.log.Error("test notification failed", "user_id", userID, "err", err)
		return "", fmt.Errorf("send test notification: %w", domain.ErrInternal)
	}
	return "Test notification sent successfully", nil
}

// resolveGroup returns (group, true, nil) when the group exists. A missing
// group terminates the pipeline silently.
func (s *Service) resolveGroup(ctx context.Context, groupID string, log *slog.Logger) (*domain.Group, bool, error) {
	group, err := s.groups.Get(ctx, groupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Info("group not found, skipping", "group_id", groupID)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("resolve group: %w", err)
	}
	return group, true, nil
}

// userName returns the user's display name, or "Someone" when the document
// does not exist.
func (s *Service) userName(ctx context.Context, userID string) (string, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "Someone", nil
		}
		return "", fmt.Errorf("resolve actor name: %w", err)
	}
	return u.Name, nil
}

// gatherFor wraps the gatherer with the empty-audience short-circuits.
func (s *Service) gatherFor(ctx context.Context, recipients []string, prefKey string, log *slog.Logger) ([]domain.TokenRecord, bool, error) {
	if len(recipients) == 0 {
		log.Info("no recipients to notify")
		return nil, false, nil
	}
	records, err := s.gatherer.Gather(ctx, recipients, prefKey)
	if err != nil {
		return nil, false, err
	}
	if len(records) == 0 {
		log.Info("no valid delivery tokens found")
		return nil, false, nil
	}
	return records, true, nil
}

func (s *Service) dispatch(ctx context.Context, payload Payload, records []domain.TokenRecord, log *slog.Logger) error {
	msgs := make([]domain.Message, len(records))
	for i, rec := range records {
		msgs[i] = payload.MessageFor(rec.Token)
	}
	res, err := s.push.SendBatch(ctx, msgs)
	if err != nil {
		return fmt.Errorf("dispatch: %w", err)
	}
	log.Info("notifications dispatched", "success", res.SuccessCount, "failed", res.FailureCount)
	return s.reconciler.Reconcile(ctx, records, res)
}
