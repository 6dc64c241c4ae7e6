package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/Zed-Kryp/BlogSphere/internal/model"
)

// GSI names on the Users table.
const (
	emailIndex    = "EmailIndex"
	usernameIndex = "UsernameIndex"
)

type userRepository struct {
	table *Table
}

func NewUserRepository(table *Table) UserRepository {
	return &userRepository{table: table}
}

func (r *userRepository) Get(ctx context.Context, userID string) (model.Record, error) {
	rec, err := r.table.Get(ctx, userID)
	if errors.Is(err, model.ErrItemNotFound) {
		return nil, model.ErrUserNotFound
	}
	return rec, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (model.Record, error) {
	return r.queryOne(ctx, emailIndex, "email", email)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (model.Record, error) {
	return r.queryOne(ctx, usernameIndex, "username", username)
}

func (r *userRepository) queryOne(ctx context.Context, index, attr, value string) (model.Record, error) {
	items, err := r.table.QueryIndex(ctx, index, attr, value)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, model.ErrUserNotFound
	}
	return items[0], nil
}

// List scans the whole Users table. The service layer strips credentials
// before the records leave the process.
func (r *userRepository) List(ctx context.Context) ([]model.Record, error) {
	page, err := r.table.Scan(ctx, model.ListParams{Limit: model.MaxListLimit})
	if err != nil {
		return nil, err
	}
	users := page.Items
	for page.LastKey != "" {
		page, err = r.table.Scan(ctx, model.ListParams{Limit: model.MaxListLimit, StartKey: page.LastKey})
		if err != nil {
			return nil, err
		}
		users = append(users, page.Items...)
	}
	return users, nil
}

func (r *userRepository) Put(ctx context.Context, user model.Record) error {
	return r.table.Put(ctx, user)
}

func (r *userRepository) Update(ctx context.Context, userID string, fields model.Record) (model.Record, error) {
	updated, err := r.table.Update(ctx, userID, fields)
	if errors.Is(err, model.ErrItemNotFound) {
		return nil, model.ErrUserNotFound
	}
	return updated, err
}

func (r *userRepository) Delete(ctx context.Context, userID string) error {
	return r.table.Delete(ctx, userID)
}

type profileRepository struct {
	table *Table
}

func NewProfileRepository(table *Table) ProfileRepository {
	return &profileRepository{table: table}
}

func (r *profileRepository) Get(ctx context.Context, userID string) (model.Record, error) {
	rec, err := r.table.Get(ctx, userID)
	if errors.Is(err, model.ErrItemNotFound) {
		return nil, model.ErrUserNotFound
	}
	return rec, err
}

func (r *profileRepository) Create(ctx context.Context, profile model.Record) error {
	return r.table.Put(ctx, profile)
}

func (r *profileRepository) Update(ctx context.Context, userID string, fields model.Record) (model.Record, error) {
	updated, err := r.table.Update(ctx, userID, fields)
	if errors.Is(err, model.ErrItemNotFound) {
		return nil, model.ErrUserNotFound
	}
	return updated, err
}

// AdjustCounter applies `SET c = if_not_exists(c, start) +/- d` to a derived
// counter. Decrements add a `c >= d` condition; a failed condition means the
// counter would underflow, which is treated as a no-op rather than an error.
func (r *profileRepository) AdjustCounter(ctx context.Context, userID, counter string, delta int) error {
	if delta == 0 {
		return nil
	}

	name := expression.Name(counter)
	var update expression.UpdateBuilder
	builder := expression.NewBuilder()

	if delta > 0 {
		update = update.Set(name, expression.Plus(
			expression.IfNotExists(name, expression.Value(0)),
			expression.Value(delta),
		))
	} else {
		update = update.Set(name, expression.Minus(
			expression.IfNotExists(name, expression.Value(-delta)),
			expression.Value(-delta),
		))
		cond := expression.AttributeExists(expression.Name(r.table.Spec().KeyAttr)).
			And(name.GreaterThanEqual(expression.Value(-delta)))
		builder = builder.WithCondition(cond)
	}

	expr, err := builder.WithUpdate(update).Build()
	if err != nil {
		return fmt.Errorf("build counter update: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table.Spec().Name),
		Key:                       r.table.key(userID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if delta < 0 {
		input.ConditionExpression = expr.Condition()
	}

	_, err = r.table.api.UpdateItem(ctx, input)
	if err != nil {
		if delta < 0 && isConditionalCheckFailed(err) {
			// Counter already at zero (or profile missing): leave it be.
			return nil
		}
		return fmt.Errorf("adjust %s for %q: %w", counter, userID, err)
	}
	return nil
}
