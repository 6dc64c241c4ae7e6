package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Zed-Kryp/BlogSphere/internal/model"
)

// DynamoAPI is the subset of *dynamodb.Client the repositories depend on,
// kept as an interface so tests can substitute a fake.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Table is a generic gateway to one single-key resource table. All of the
// generic CRUD handlers and most specialized repositories are built on it.
type Table struct {
	api  DynamoAPI
	spec model.TableSpec
}

func NewTable(api DynamoAPI, spec model.TableSpec) *Table {
	return &Table{api: api, spec: spec}
}

// Spec returns the table descriptor.
func (t *Table) Spec() model.TableSpec { return t.spec }

func (t *Table) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		t.spec.KeyAttr: &types.AttributeValueMemberS{Value: id},
	}
}

// Get fetches one record by primary key. Absence yields model.ErrItemNotFound.
func (t *Table) Get(ctx context.Context, id string) (model.Record, error) {
	out, err := t.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.spec.Name),
		Key:       t.key(id),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s %q: %w", t.spec.Name, id, err)
	}
	if out.Item == nil {
		return nil, model.ErrItemNotFound
	}
	var rec model.Record
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal %s item: %w", t.spec.Name, err)
	}
	return rec, nil
}

// Put writes a record unconditionally (full replace).
func (t *Table) Put(ctx context.Context, rec model.Record) error {
	item, err := attributevalue.MarshalMap(map[string]any(rec))
	if err != nil {
		return fmt.Errorf("marshal %s item: %w", t.spec.Name, err)
	}
	_, err = t.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.spec.Name),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put %s item: %w", t.spec.Name, err)
	}
	return nil
}

// PutIfAbsent writes a record only when the key is free; a taken key yields
// model.ErrItemExists. This replaces the original check-then-act duplicate
// detection with a single conditional write.
func (t *Table) PutIfAbsent(ctx context.Context, rec model.Record) error {
	item, err := attributevalue.MarshalMap(map[string]any(rec))
	if err != nil {
		return fmt.Errorf("marshal %s item: %w", t.spec.Name, err)
	}
	cond := expression.AttributeNotExists(expression.Name(t.spec.KeyAttr))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("build condition: %w", err)
	}
	_, err = t.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(t.spec.Name),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return model.ErrItemExists
		}
		return fmt.Errorf("put %s item: %w", t.spec.Name, err)
	}
	return nil
}

// Update applies a partial update built from the supplied fields, conditioned
// on the row existing. A missing row yields model.ErrItemNotFound. The
// returned record holds only the written attributes (UPDATED_NEW).
func (t *Table) Update(ctx context.Context, id string, fields model.Record) (model.Record, error) {
	if len(fields) == 0 {
		return nil, model.Validation("No fields to update")
	}

	var update expression.UpdateBuilder
	for attr, val := range fields {
		update = update.Set(expression.Name(attr), expression.Value(val))
	}
	cond := expression.AttributeExists(expression.Name(t.spec.KeyAttr))
	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	out, err := t.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(t.spec.Name),
		Key:                       t.key(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, model.ErrItemNotFound
		}
		return nil, fmt.Errorf("update %s %q: %w", t.spec.Name, id, err)
	}

	var updated model.Record
	if err := attributevalue.UnmarshalMap(out.Attributes, &updated); err != nil {
		return nil, fmt.Errorf("unmarshal updated attributes: %w", err)
	}
	return updated, nil
}

// Delete removes a record by primary key.
func (t *Table) Delete(ctx context.Context, id string) error {
	_, err := t.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(t.spec.Name),
		Key:       t.key(id),
	})
	if err != nil {
		return fmt.Errorf("delete %s %q: %w", t.spec.Name, id, err)
	}
	return nil
}

// Scan returns one page of the table. Filters are applied store-side after
// the page is read, matching the underlying store's scan semantics.
func (t *Table) Scan(ctx context.Context, params model.ListParams) (*model.Page, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(t.spec.Name),
		Limit:     aws.Int32(int32(params.Limit)),
	}
	if params.StartKey != "" {
		input.ExclusiveStartKey = t.key(params.StartKey)
	}
	if len(params.Filters) > 0 || len(params.ContainsFilters) > 0 {
		var filter expression.ConditionBuilder
		first := true
		and := func(cond expression.ConditionBuilder) {
			if first {
				filter = cond
				first = false
			} else {
				filter = filter.And(cond)
			}
		}
		for attr, val := range params.Filters {
			and(expression.Name(attr).Equal(expression.Value(val)))
		}
		for attr, val := range params.ContainsFilters {
			and(expression.Name(attr).Contains(val))
		}
		expr, err := expression.NewBuilder().WithFilter(filter).Build()
		if err != nil {
			return nil, fmt.Errorf("build filter: %w", err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	out, err := t.api.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", t.spec.Name, err)
	}

	items := make([]model.Record, 0, len(out.Items))
	for _, raw := range out.Items {
		var rec model.Record
		if err := attributevalue.UnmarshalMap(raw, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal %s item: %w", t.spec.Name, err)
		}
		items = append(items, rec)
	}

	page := &model.Page{
		Items:        items,
		Count:        int(out.Count),
		ScannedCount: int(out.ScannedCount),
	}
	if last, ok := out.LastEvaluatedKey[t.spec.KeyAttr]; ok {
		var lastID string
		if err := attributevalue.Unmarshal(last, &lastID); err == nil {
			page.LastKey = lastID
		}
	}
	return page, nil
}

// QueryIndex returns every record where the index hash key equals value.
func (t *Table) QueryIndex(ctx context.Context, index, keyAttr, value string) ([]model.Record, error) {
	keyCond := expression.Key(keyAttr).Equal(expression.Value(value))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("build key condition: %w", err)
	}

	out, err := t.api.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(t.spec.Name),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("query %s/%s: %w", t.spec.Name, index, err)
	}

	items := make([]model.Record, 0, len(out.Items))
	for _, raw := range out.Items {
		var rec model.Record
		if err := attributevalue.UnmarshalMap(raw, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal %s item: %w", t.spec.Name, err)
		}
		items = append(items, rec)
	}
	return items, nil
}

// NowISO stamps createdAt fields. ISO-8601 to match existing rows.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

// Registry maps URL resources to their table gateways.
type Registry struct {
	tables map[string]*Table
}

// NewRegistry builds gateways for every single-key table in the catalog.
// Composite-key edge tables are handled by their dedicated repositories.
func NewRegistry(api DynamoAPI, specs []model.TableSpec) *Registry {
	tables := make(map[string]*Table, len(specs))
	for _, spec := range specs {
		if spec.RangeAttr != "" {
			continue
		}
		tables[spec.Resource] = NewTable(api, spec)
	}
	return &Registry{tables: tables}
}

// Resource returns the gateway for a URL resource, or model.ErrUnknownResource.
func (r *Registry) Resource(resource string) (ResourceTable, error) {
	t, err := r.Table(resource)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Table is Resource with the concrete type, for wiring the specialized
// repositories at startup.
func (r *Registry) Table(resource string) (*Table, error) {
	t, ok := r.tables[resource]
	if !ok {
		return nil, model.ErrUnknownResource
	}
	return t, nil
}
