package domain

import "time"

// Preference keys for per-user notification opt-outs. A key maps to false
// when the user has explicitly disabled that notification kind; an absent
// key means enabled.
const (
	PrefExpenseAdded   = "expenseAdded"
	PrefExpenseEdited  = "expenseEdited"
	PrefExpenseDeleted = "expenseDeleted"
)

type User struct {
	UserID    string `json:"id" dynamodbav:"user_id"`
	Name      string `json:"name" dynamodbav:"name"`
	Email     string `json:"email" dynamodbav:"email"`
	// FCMToken is the user's push delivery token. Empty when the user has no
	// registered device. Cleared by the token reconciler when the provider
	// reports the token as permanently dead; set only by client code.
	FCMToken                string          `json:"fcmToken,omitempty" dynamodbav:"fcm_token,omitempty"`
	NotificationPreferences map[string]bool `json:"notificationPreferences,omitempty" dynamodbav:"notification_preferences,omitempty"`
	CreatedAt               time.Time       `json:"created" dynamodbav:"created_at"`
	UpdatedAt               time.Time       `json:"updated" dynamodbav:"updated_at"`
}

// NotificationsEnabled reports whether the user receives notifications of
// the given kind. Only an explicit false opts out.
func (u *User) NotificationsEnabled(prefKey string) bool {
	if enabled, ok := u.NotificationPreferences[prefKey]; ok && !enabled {
		return false
	}
	return true
}
