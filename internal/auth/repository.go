// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/angelamos/kol-backend/internal/core"
)

type Repository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, user *User) error
}

type repository struct {
	client core.DynamoAPI
	table  string
}

func NewRepository(client core.DynamoAPI, table string) Repository {
	return &repository{client: client, table: table}
}

// FindByUsername scans with a filter expression rather than a key lookup.
// The registration flow treats this as a best-effort duplicate check; the
// store's key constraint is not relied upon.
func (r *repository) FindByUsername(
	ctx context.Context,
	username string,
) (*User, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.table),
		FilterExpression: aws.String("username = :username"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":username": &types.AttributeValueMemberS{Value: username},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}

	if len(out.Items) == 0 {
		return nil, fmt.Errorf("find user: %w", core.ErrNotFound)
	}

	var user User
	if err := attributevalue.UnmarshalMap(out.Items[0], &user); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}

	return &user, nil
}

func (r *repository) Create(ctx context.Context, user *User) error {
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put user: %w", err)
	}

	return nil
}
