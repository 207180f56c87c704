package sns

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/expense-notify/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePublisher fails for tokens listed in errs and succeeds otherwise.
type fakePublisher struct {
	errs  map[string]error
	calls []string
}

func (f *fakePublisher) Publish(_ context.Context, in *awssns.PublishInput, _ ...func(*awssns.Options)) (*awssns.PublishOutput, error) {
	token := aws.ToString(in.TargetArn)
	f.calls = append(f.calls, token)
	if err, ok := f.errs[token]; ok {
		return nil, err
	}
	return &awssns.PublishOutput{MessageId: aws.String("mid-" + token)}, nil
}

func msg(token string) domain.Message {
	return domain.Message{
		Token:        token,
		Notification: domain.Notification{Title: "t", Body: "b"},
		Data:         map[string]string{"type": "test"},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      domain.DeliveryErrorCode
		permanent bool
	}{
		{"endpoint disabled", &types.EndpointDisabledException{}, domain.DeliveryErrTokenNotRegistered, true},
		{"endpoint not found", &types.NotFoundException{}, domain.DeliveryErrTokenNotRegistered, true},
		{"malformed token", &types.InvalidParameterException{}, domain.DeliveryErrTokenInvalid, true},
		{"throttled", &types.ThrottledException{}, domain.DeliveryErrThrottled, false},
		{"anything else", errors.New("connection reset"), domain.DeliveryErrInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := classify(tt.err)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.permanent, de.Permanent())
		})
	}
}

func TestSendBatch_PositionalResults(t *testing.T) {
	fake := &fakePublisher{errs: map[string]error{
		"tok-2": &types.EndpointDisabledException{},
		"tok-3": &types.ThrottledException{},
	}}
	p := &pusher{client: fake}

	res, err := p.SendBatch(context.Background(), []domain.Message{msg("tok-1"), msg("tok-2"), msg("tok-3")})
	require.NoError(t, err)

	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, 2, res.FailureCount)
	require.Len(t, res.Responses, 3)

	assert.Nil(t, res.Responses[0].Err)
	assert.Equal(t, "mid-tok-1", res.Responses[0].MessageID)
	require.NotNil(t, res.Responses[1].Err)
	assert.Equal(t, domain.DeliveryErrTokenNotRegistered, res.Responses[1].Err.Code)
	require.NotNil(t, res.Responses[2].Err)
	assert.Equal(t, domain.DeliveryErrThrottled, res.Responses[2].Err.Code)

	// Every message is attempted even after a failure.
	assert.Equal(t, []string{"tok-1", "tok-2", "tok-3"}, fake.calls)
}

func TestSend_ClassifiesError(t *testing.T) {
	fake := &fakePublisher{errs: map[string]error{"tok-dead": &types.NotFoundException{}}}
	p := &pusher{client: fake}

	err := p.Send(context.Background(), msg("tok-dead"))
	var de *domain.DeliveryError
	require.ErrorAs(t, err, &de)
	assert.True(t, de.Permanent())

	require.NoError(t, p.Send(context.Background(), msg("tok-ok")))
}

func TestEncodePayload_FlatStringData(t *testing.T) {
	m := domain.Message{
		Token:        "tok",
		Notification: domain.Notification{Title: "New expense in Trip", Body: "body"},
		Data:         map[string]string{"type": "expense_added", "amount": "12.5"},
		Android:      &domain.AndroidHints{ChannelID: "expense_channel", Priority: "high"},
		APNS:         &domain.APNSHints{Badge: 1, Sound: "default"},
	}
	payload, err := encodePayload(m)
	require.NoError(t, err)

	var envelope map[string]string
	require.NoError(t, json.Unmarshal([]byte(payload), &envelope))
	assert.Equal(t, "body", envelope["default"])

	var gcm struct {
		Notification domain.Notification            `json:"notification"`
		Data         map[string]string              `json:"data"`
		Android      map[string]domain.AndroidHints `json:"android"`
	}
	require.NoError(t, json.Unmarshal([]byte(envelope["GCM"]), &gcm))
	assert.Equal(t, "New expense in Trip", gcm.Notification.Title)
	assert.Equal(t, "expense_added", gcm.Data["type"])
	assert.Equal(t, "expense_channel", gcm.Android["notification"].ChannelID)
}
