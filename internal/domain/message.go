package domain

import "fmt"

// Notification is the visible part of a push message.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// AndroidHints carries Android-specific delivery options.
type AndroidHints struct {
	ChannelID      string `json:"channelId"`
	Priority       string `json:"priority"`
	DefaultSound   bool   `json:"defaultSound,omitempty"`
	DefaultVibrate bool   `json:"defaultVibrateTimings,omitempty"`
}

// APNSHints carries iOS-specific delivery options.
type APNSHints struct {
	Badge int    `json:"badge"`
	Sound string `json:"sound"`
}

// Message is one addressed push message. Data must stay a flat
// string-to-string map: the delivery transport rejects nested payloads.
// Messages are ephemeral and never persisted.
type Message struct {
	Token        string            `json:"token"`
	Notification Notification      `json:"notification"`
	Data         map[string]string `json:"data"`
	Android      *AndroidHints     `json:"android,omitempty"`
	APNS         *APNSHints        `json:"apns,omitempty"`
}

// TokenRecord ties a delivery token to its owner so dispatch failures can be
// reconciled back to the user document.
type TokenRecord struct {
	Token    string
	UserID   string
	UserName string
}

// DeliveryErrorCode classifies a per-message delivery failure.
type DeliveryErrorCode string

const (
	DeliveryErrTokenInvalid       DeliveryErrorCode = "token-invalid"
	DeliveryErrTokenNotRegistered DeliveryErrorCode = "token-not-registered"
	DeliveryErrThrottled          DeliveryErrorCode = "throttled"
	DeliveryErrInternal           DeliveryErrorCode = "internal"
)

// DeliveryError is a typed per-message delivery failure.
type DeliveryError struct {
	Code    DeliveryErrorCode
	Message string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed (%s): %s", e.Code, e.Message)
}

// Permanent reports whether the token will never succeed again. Only
// permanent failures justify pruning the token from the owner's document.
func (e *DeliveryError) Permanent() bool {
	return e.Code == DeliveryErrTokenInvalid || e.Code == DeliveryErrTokenNotRegistered
}

// SendResult is the outcome for one message in a dispatched batch.
type SendResult struct {
	MessageID string
	Err       *DeliveryError
}

// BatchResult holds per-message outcomes, positionally aligned with the
// dispatched batch.
type BatchResult struct {
	SuccessCount int
	FailureCount int
	Responses    []SendResult
}
