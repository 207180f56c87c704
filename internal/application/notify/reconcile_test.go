package notify

import (
	"context"
	"log/slog"
	"testing"

	"github.com/expense-notify/internal/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func reconcileRecords() []domain.TokenRecord {
	return []domain.TokenRecord{
		{Token: "tok-1", UserID: "u1", UserName: "Alice"},
		{Token: "tok-2", UserID: "u2", UserName: "Bob"},
		{Token: "tok-3", UserID: "u3", UserName: "Carol"},
	}
}

func TestReconcile_PrunesPermanentFailuresOnly(t *testing.T) {
	res := &domain.BatchResult{
		SuccessCount: 1,
		FailureCount: 2,
		Responses: []domain.SendResult{
			{MessageID: "mid"},
			{Err: &domain.DeliveryError{Code: domain.DeliveryErrTokenNotRegistered, Message: "gone"}},
			{Err: &domain.DeliveryError{Code: domain.DeliveryErrThrottled, Message: "slow down"}},
		},
	}

	ts := &mockTokenStore{}
	ts.On("ClearTokens", mock.Anything, []string{"u2"}).Return(nil)

	r := NewReconciler(ts, slog.Default())
	require.NoError(t, r.Reconcile(context.Background(), reconcileRecords(), res))
	ts.AssertExpectations(t)
}

func TestReconcile_InvalidTokenAlsoPruned(t *testing.T) {
	res := &domain.BatchResult{
		FailureCount: 2,
		Responses: []domain.SendResult{
			{Err: &domain.DeliveryError{Code: domain.DeliveryErrTokenInvalid, Message: "malformed"}},
			{Err: &domain.DeliveryError{Code: domain.DeliveryErrTokenNotRegistered, Message: "gone"}},
			{MessageID: "mid"},
		},
	}

	ts := &mockTokenStore{}
	ts.On("ClearTokens", mock.Anything, []string{"u1", "u2"}).Return(nil)

	r := NewReconciler(ts, slog.Default())
	require.NoError(t, r.Reconcile(context.Background(), reconcileRecords(), res))
	ts.AssertExpectations(t)
}

func TestReconcile_TransientOnly_NoWrite(t *testing.T) {
	res := &domain.BatchResult{
		FailureCount: 2,
		Responses: []domain.SendResult{
			{Err: &domain.DeliveryError{Code: domain.DeliveryErrThrottled, Message: "slow down"}},
			{Err: &domain.DeliveryError{Code: domain.DeliveryErrInternal, Message: "oops"}},
			{MessageID: "mid"},
		},
	}

	ts := &mockTokenStore{}

	r := NewReconciler(ts, slog.Default())
	require.NoError(t, r.Reconcile(context.Background(), reconcileRecords(), res))
	ts.AssertNotCalled(t, "ClearTokens", mock.Anything, mock.Anything)
}

func TestReconcile_AllSuccess_NoWrite(t *testing.T) {
	res := &domain.BatchResult{
		SuccessCount: 3,
		Responses:    []domain.SendResult{{MessageID: "a"}, {MessageID: "b"}, {MessageID: "c"}},
	}

	ts := &mockTokenStore{}

	r := NewReconciler(ts, slog.Default())
	require.NoError(t, r.Reconcile(context.Background(), reconcileRecords(), res))
	ts.AssertNotCalled(t, "ClearTokens", mock.Anything, mock.Anything)
}
