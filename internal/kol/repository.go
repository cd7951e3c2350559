// AngelaMos | 2026
// repository.go

package kol

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
	ScanAll(ctx context.Context) ([]KOL, error)
	Insert(ctx context.Context, record *KOL) error
	ApplyUpdate(
		ctx context.Context,
		directive *UpdateDirective,
	) (map[string]any, error)
	Remove(ctx context.Context, id string) error
}

type repository struct {
	client core.DynamoAPI
	table  string
}

func NewRepository(client core.DynamoAPI, table string) Repository {
	return &repository{client: client, table: table}
}

func (r *repository) ScanAll(ctx context.Context) ([]KOL, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.table),
	})
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}

	records := make([]KOL, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &records); err != nil {
		return nil, fmt.Errorf("unmarshal records: %w", err)
	}

	return records, nil
}

// Insert is an unconditional put: an existing item with the same ID is
// overwritten without an existence check.
func (r *repository) Insert(ctx context.Context, record *KOL) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put record: %w", err)
	}

	return nil
}

// ApplyUpdate executes a builder directive and returns the attributes the
// store reports as changed.
func (r *repository) ApplyUpdate(
	ctx context.Context,
	directive *UpdateDirective,
) (map[string]any, error) {
	values, err := attributevalue.MarshalMap(directive.Values)
	if err != nil {
		return nil, fmt.Errorf("marshal update values: %w", err)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"ID": &types.AttributeValueMemberS{Value: directive.ID},
		},
		UpdateExpression:          aws.String(directive.Expression),
		ExpressionAttributeNames:  directive.Names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}

	changed := make(map[string]any, len(out.Attributes))
	if err := attributevalue.UnmarshalMap(out.Attributes, &changed); err != nil {
		return nil, fmt.Errorf("unmarshal changed attributes: %w", err)
	}

	return changed, nil
}

// Remove is unconditional: deleting an absent ID is indistinguishable from
// success.
func (r *repository) Remove(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"ID": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	return nil
}
