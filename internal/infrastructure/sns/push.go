package sns

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/expense-notify/internal/config"
	"github.com/expense-notify/internal/domain"
)

// Pusher delivers push messages through AWS SNS platform endpoints. The
// delivery token on each message is the endpoint ARN registered by the
// client app for the user's device.
type Pusher interface {
	// SendBatch dispatches every message and returns per-message outcomes,
	// positionally aligned with msgs. Delivery failures land in the result,
	// never in the error return; no retry is performed here.
	SendBatch(ctx context.Context, msgs []domain.Message) (*domain.BatchResult, error)
	// Send dispatches a single message, for the synchronous test path.
	Send(ctx context.Context, msg domain.Message) error
}

type publishAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, opts ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type pusher struct {
	client publishAPI
}

func NewPusher(cfg *config.Config) (Pusher, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &pusher{client: sns.NewFromConfig(awsCfg)}, nil
}

func (p *pusher) SendBatch(ctx context.Context, msgs []domain.Message) (*domain.BatchResult, error) {
	res := &domain.BatchResult{Responses: make([]domain.SendResult, len(msgs))}
	for i, msg := range msgs {
		messageID, err := p.publish(ctx, msg)
		if err != nil {
			res.FailureCount++
			res.Responses[i] = domain.SendResult{Err: classify(err)}
			continue
		}
		res.SuccessCount++
		res.Responses[i] = domain.SendResult{MessageID: messageID}
	}
	return res, nil
}

func (p *pusher) Send(ctx context.Context, msg domain.Message) error {
	if _, err := p.publish(ctx, msg); err != nil {
		return classify(err)
	}
	return nil
}

func (p *pusher) publish(ctx context.Context, msg domain.Message) (string, error) {
	payload, err := encodePayload(msg)
	if err != nil {
		return "", err
	}
	out, err := p.client.Publish(ctx, &sns.PublishInput{
		TargetArn:        aws.String(msg.Token),
		Message:          aws.String(payload),
		MessageStructure: aws.String("json"),
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.MessageId), nil
}

// encodePayload builds the SNS multi-protocol message: a plain-text default
// plus the GCM envelope carrying notification, data and platform hints.
func encodePayload(msg domain.Message) (string, error) {
	gcm := map[string]interface{}{
		"notification": msg.Notification,
		"data":         msg.Data,
	}
	if msg.Android != nil {
		gcm["android"] = map[string]interface{}{"notification": msg.Android}
	}
	if msg.APNS != nil {
		gcm["apns"] = map[string]interface{}{
			"payload": map[string]interface{}{
				"aps": map[string]interface{}{
					"alert": msg.Notification,
					"badge": msg.APNS.Badge,
					"sound": msg.APNS.Sound,
				},
			},
		}
	}
	gcmJSON, err := json.Marshal(gcm)
	if err != nil {
		return "", err
	}
	envelope, err := json.Marshal(map[string]string{
		"default": msg.Notification.Body,
		"GCM":     string(gcmJSON),
	})
	if err != nil {
		return "", err
	}
	return string(envelope), nil
}

// classify maps an SNS publish error to a typed delivery error. Disabled or
// unknown endpoints mean the token will never work again; everything else
// is treated as transient or internal and left for logging only.
func classify(err error) *domain.DeliveryError {
	var (
		endpointDisabled *types.EndpointDisabledException
		notFound         *types.NotFoundException
		invalidParam     *types.InvalidParameterException
		throttled        *types.ThrottledException
	)
	switch {
	case errors.As(err, &endpointDisabled), errors.As(err, &notFound):
		return &domain.DeliveryError{Code: domain.DeliveryErrTokenNotRegistered, Message: err.Error()}
	case errors.As(err, &invalidParam):
		return &domain.DeliveryError{Code: domain.DeliveryErrTokenInvalid, Message: err.Error()}
	case errors.As(err, &throttled):
		return &domain.DeliveryError{Code: domain.DeliveryErrThrottled, Message: err.Error()}
	default:
		return &domain.DeliveryError{Code: domain.DeliveryErrInternal, Message: err.Error()}
	}
}
