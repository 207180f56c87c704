package notify

import (
	"testing"

	"github.com/expense-notify/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRecipients_ExcludesActor(t *testing.T) {
	got := Recipients([]string{"u1", "u2", "u3"}, "u1", domain.EventExpenseCreated)
	assert.Equal(t, []string{"u2", "u3"}, got)
}

func TestRecipients_ExcludesEveryActorOccurrence(t *testing.T) {
	got := Recipients([]string{"u1", "u2", "u1", "u3"}, "u1", domain.EventExpenseUpdated)
	assert.Equal(t, []string{"u2", "u3"}, got)
}

func TestRecipients_SoleMemberActor(t *testing.T) {
	got := Recipients([]string{"u1"}, "u1", domain.EventExpenseCreated)
	assert.Empty(t, got)
}

func TestRecipients_DeleteKeepsActor(t *testing.T) {
	got := Recipients([]string{"u1", "u2", "u3"}, "u1", domain.EventExpenseDeleted)
	assert.Equal(t, []string{"u1", "u2", "u3"}, got)
}

func TestRecipients_PreservesOrder(t *testing.T) {
	got := Recipients([]string{"u3", "u1", "u2"}, "u1", domain.EventExpenseCreated)
	assert.Equal(t, []string{"u3", "u2"}, got)
}
