package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/expense-notify/internal/domain"
)

// UserRepo provides typed DynamoDB operations for the users table. The only
// write this service ever performs is clearing fcm_token.
type UserRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewUserRepo(client *dynamodb.Client, tableName string) *UserRepo {
	return &UserRepo{client: client, tableName: tableName}
}

func (r *UserRepo) Get(ctx context.Context, userID string) (*domain.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("user_id", userID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	var u domain.User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ClearTokens removes the fcm_token attribute from every listed user in one
// atomic transaction. A no-op when userIDs is empty. Clearing an already
// absent token is harmless, so concurrent invocations racing on the same
// user are benign. TransactWriteItems caps at 100 items; group sizes stay
// far below that.
func (r *UserRepo) ClearTokens(ctx context.Context, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	items := make([]types.TransactWriteItem, 0, len(userIDs))
	for _, userID := range userIDs {
		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName:        aws.String(r.tableName),
				Key:              strKey("user_id", userID),
				UpdateExpression: aws.String("REMOVE fcm_token"),
			},
		})
	}
	_, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		return fmt.Errorf("clear tokens: %w", err)
	}
	return nil
}

// CountTokenHolders scans the users table and counts documents that carry a
// delivery token. Read-only; used by the scheduled token sweep.
func (r *UserRepo) CountTokenHolders(ctx context.Context) (int, error) {
	var (
		count   int
		lastKey map[string]types.AttributeValue
	)
	for {
		input := &dynamodb.ScanInput{
			TableName:        aws.String(r.tableName),
			FilterExpression: aws.String("attribute_exists(fcm_token)"),
			Select:           types.SelectCount,
		}
		if lastKey != nil {
			input.ExclusiveStartKey = lastKey
		}
		out, err := r.client.Scan(ctx, input)
		if err != nil {
			return 0, fmt.Errorf("scan token holders: %w", err)
		}
		count += int(out.Count)
		if out.LastEvaluatedKey == nil {
			return count, nil
		}
		lastKey = out.LastEvaluatedKey
	}
}
