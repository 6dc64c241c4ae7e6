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

// GSI names on the UserFollows table.
const (
	followerUsersIndex = "FollowerUsersIndex"
	followedUsersIndex = "FollowedUsersIndex"
)

type followRepository struct {
	api  DynamoAPI
	spec model.TableSpec
}

func NewFollowRepository(api DynamoAPI, spec model.TableSpec) FollowRepository {
	return &followRepository{api: api, spec: spec}
}

func (r *followRepository) key(followerID, followedID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		r.spec.KeyAttr:   &types.AttributeValueMemberS{Value: followerID},
		r.spec.RangeAttr: &types.AttributeValueMemberS{Value: followedID},
	}
}

// Create writes the edge with a put-if-absent condition, so two concurrent
// follows for the same pair cannot both succeed.
func (r *followRepository) Create(ctx context.Context, followerID, followedID string) error {
	item, err := attributevalue.MarshalMap(map[string]any{
		r.spec.KeyAttr:   followerID,
		r.spec.RangeAttr: followedID,
		"createdAt":      NowISO(),
	})
	if err != nil {
		return fmt.Errorf("marshal follow edge: %w", err)
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
			return model.ErrAlreadyFollowing
		}
		return fmt.Errorf("create follow edge: %w", err)
	}
	return nil
}

// Delete removes the edge, failing with model.ErrNotFollowing when absent.
func (r *followRepository) Delete(ctx context.Context, followerID, followedID string) error {
	cond := expression.AttributeExists(expression.Name(r.spec.KeyAttr))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("build condition: %w", err)
	}

	_, err = r.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(r.spec.Name),
		Key:                      r.key(followerID, followedID),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return model.ErrNotFollowing
		}
		return fmt.Errorf("delete follow edge: %w", err)
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followedID string) (bool, error) {
	out, err := r.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.spec.Name),
		Key:       r.key(followerID, followedID),
	})
	if err != nil {
		return false, fmt.Errorf("check follow edge: %w", err)
	}
	return out.Item != nil, nil
}

func (r *followRepository) Following(ctx context.Context, followerID string) ([]model.Record, error) {
	return r.queryIndex(ctx, followerUsersIndex, r.spec.KeyAttr, followerID)
}

func (r *followRepository) Followers(ctx context.Context, followedID string) ([]model.Record, error) {
	return r.queryIndex(ctx, followedUsersIndex, r.spec.RangeAttr, followedID)
}

func (r *followRepository) queryIndex(ctx context.Context, index, keyAttr, value string) ([]model.Record, error) {
	keyCond := expression.Key(keyAttr).Equal(expression.Value(value))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("build key condition: %w", err)
	}

	out, err := r.api.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.spec.Name),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("query %s/%s: %w", r.spec.Name, index, err)
	}

	items := make([]model.Record, 0, len(out.Items))
	for _, raw := range out.Items {
		var rec model.Record
		if err := attributevalue.UnmarshalMap(raw, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal follow edge: %w", err)
		}
		items = append(items, rec)
	}
	return items, nil
}
