package notify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/expense-notify/internal/domain"
)

// clickAction is the routing hint the mobile client uses to open the right
// screen when a notification is tapped.
const clickAction = "FLUTTER_NOTIFICATION_CLICK"

const androidChannelID = "expense_channel"

// Payload is a built notification, not yet addressed to a token.
type Payload struct {
	Title   string
	Body    string
	Data    map[string]string
	Android *domain.AndroidHints
	APNS    *domain.APNSHints
}

// MessageFor addresses the payload to a single delivery token.
func (p Payload) MessageFor(token string) domain.Message {
	return domain.Message{
		Token:        token,
		Notification: domain.Notification{Title: p.Title, Body: p.Body},
		Data:         p.Data,
		Android:      p.Android,
		APNS:         p.APNS,
	}
}

// AddedPayload builds the notification for a newly created expense.
func AddedPayload(exp *domain.Expense, group *domain.Group, payerName string) Payload {
	title := "New expense in " + group.Name
	body := fmt.Sprintf("%s paid %s for %q", payerName, formatAmount(group.Currency, exp.Amount), exp.Description)
	return Payload{
		Title: title,
		Body:  body,
		Data: map[string]string{
			"type":         "expense_added",
			"expenseId":    exp.ExpenseID,
			"groupId":      exp.GroupID,
			"groupName":    group.Name,
			"amount":       strconv.FormatFloat(exp.Amount, 'f', -1, 64),
			"currency":     group.Currency,
			"description":  exp.Description,
			"paidBy":       exp.PaidBy,
			"paidByName":   payerName,
			"click_action": clickAction,
		},
		Android: &domain.AndroidHints{
			ChannelID:      androidChannelID,
			Priority:       "high",
			DefaultSound:   true,
			DefaultVibrate: true,
		},
		APNS: &domain.APNSHints{Badge: 1, Sound: "default"},
	}
}

// EditedPayload builds the notification for a significantly edited expense.
func EditedPayload(exp *domain.Expense, group *domain.Group, editorName string) Payload {
	return Payload{
		Title: "Expense updated in " + group.Name,
		Body:  fmt.Sprintf("%s modified %q", editorName, exp.Description),
		Data: map[string]string{
			"type":         "expense_edited",
			"expenseId":    exp.ExpenseID,
			"groupId":      exp.GroupID,
			"groupName":    group.Name,
			"description":  exp.Description,
			"editorName":   editorName,
			"click_action": clickAction,
		},
		Android: &domain.AndroidHints{ChannelID: androidChannelID, Priority: "high"},
	}
}

// DeletedPayload builds the notification for a removed expense.
func DeletedPayload(exp *domain.Expense, group *domain.Group) Payload {
	return Payload{
		Title: "Expense deleted in " + group.Name,
		Body:  fmt.Sprintf("%q was removed from the group", exp.Description),
		Data: map[string]string{
			"type":         "expense_deleted",
			"groupId":      exp.GroupID,
			"groupName":    group.Name,
			"description":  exp.Description,
			"click_action": clickAction,
		},
		Android: &domain.AndroidHints{ChannelID: androidChannelID, Priority: "high"},
	}
}

// TestPayload builds the payload for the synchronous test-notification path.
func TestPayload() Payload {
	return Payload{
		Title: "Test Notification",
		Body:  "This is a test notification!",
		Data: map[string]string{
			"type":         "test",
			"click_action": clickAction,
		},
	}
}

// formatAmount renders "EUR 12,50": currency code, space, amount with
// exactly two decimals and a decimal comma.
func formatAmount(currency string, amount float64) string {
	return currency + " " + strings.Replace(strconv.FormatFloat(amount, 'f', 2, 64), ".", ",", 1)
}
