package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Zed-Kryp/BlogSphere/internal/model"
)

type bookmarkRepository struct {
	api  DynamoAPI
	spec model.TableSpec
}

func NewBookmarkRepository(api DynamoAPI, spec model.TableSpec) BookmarkRepository {
	return &bookmarkRepository{api: api, spec: spec}
}

func (r *bookmarkRepository) key(userID, postID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		r.spec.KeyAttr:   &types.AttributeValueMemberS{Value: userID},
		r.spec.RangeAttr: &types.AttributeValueMemberS{Value: postID},
	}
}

func (r *bookmarkRepository) Create(ctx context.Context, userID, postID string) error {
	item, err := attributevalue.MarshalMap(map[string]any{
		r.spec.KeyAttr:   userID,
		r.spec.RangeAttr: postID,
		"createdAt":      NowISO(),
	})
	if err != nil {
		return fmt.Errorf("marshal bookmark: %w", err)
	}

	cond := expression.AttributeNotExists(expression.Name(r.spec.KeyAttr))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("build condition: %w", err)
	}

	_, err = r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.spec.Name),
		Item:                     item,
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return model.ErrAlreadyBookmarked
		}
		return fmt.Errorf("create bookmark: %w", err)
	}
	return nil
}

func (r *bookmarkRepository) Delete(ctx context.Context, userID, postID string) error {
	cond := expression.AttributeExists(expression.Name(r.spec.KeyAttr))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("build condition: %w", err)
	}

	_, err = r.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(r.spec.Name),
		Key:                      r.key(userID, postID),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return model.ErrBookmarkNotFound
		}
		return fmt.Errorf("delete bookmark: %w", err)
	}
	return nil
}

func (r *bookmarkRepository) Exists(ctx context.Context, userID, postID string) (bool, error) {
	out, err := r.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.spec.Name),
		Key:       r.key(userID, postID),
	})
	if err != nil {
		return false, fmt.Errorf("check bookmark: %w", err)
	}
	return out.Item != nil, nil
}

// ByUser queries the table's hash key directly; bookmarks are keyed
// (userId, postId), so no GSI is needed.
func (r *bookmarkRepository) ByUser(ctx context.Context, userID string) ([]model.Record, error) {
	keyCond := expression.Key(r.spec.KeyAttr).Equal(expression.Value(userID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("build key condition: %w", err)
	}

	out, err := r.api.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.spec.Name),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("query bookmarks for %q: %w", userID, err)
	}

	items := make([]model.Record, 0, len(out.Items))
	for _, raw := range out.Items {
		var rec model.Record
		if err := attributevalue.UnmarshalMap(raw, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal bookmark: %w", err)
		}
		items = append(items, rec)
	}
	return items, nil
}
