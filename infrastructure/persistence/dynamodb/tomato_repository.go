package dynamodb

import (
	"context"
	"fmt"
	"time"

	"tomato-backend/application/ports"
	"tomato-backend/domain/core/entities"
	pkgerrors "tomato-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// TomatoRepository implements ports.TomatoRepository using DynamoDB.
// Records are keyed under their owner and indexed by todo ID on GSI1 so the
// progress aggregator can fetch the records of one todo directly.
type TomatoRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewTomatoRepository creates a new TomatoRepository
func NewTomatoRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.TomatoRepository {
	return &TomatoRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// tomatoItem represents the DynamoDB item structure for a session record
type tomatoItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	GSI1PK     string `dynamodbav:"GSI1PK"`
	GSI1SK     string `dynamodbav:"GSI1SK"`
	EntityType string `dynamodbav:"EntityType"`
	RecordID   string `dynamodbav:"RecordID"`
	OwnerID    string `dynamodbav:"OwnerID"`
	TodoID     string `dynamodbav:"TodoID"`
	Title      string `dynamodbav:"Title"`
	Category   string `dynamodbav:"Category"`
	StartTime  string `dynamodbav:"StartTime"`
	EndTime    string `dynamodbav:"EndTime,omitempty"`
	Duration   int    `dynamodbav:"Duration"`
	Completed  bool   `dynamodbav:"Completed"`
	InProgress bool   `dynamodbav:"InProgress"`
	AutoSaved  bool   `dynamodbav:"AutoSaved"`
}

// Save persists a session record to DynamoDB
func (r *TomatoRepository) Save(ctx context.Context, record *entities.TomatoRecord) error {
	item := tomatoItem{
		PK:         userPK(record.OwnerID()),
		SK:         tomatoSK(record.ID()),
		GSI1PK:     todoSK(record.TodoID()),
		GSI1SK:     fmt.Sprintf("TOMATO#%s", record.StartTime().Format(time.RFC3339)),
		EntityType: "TOMATO",
		RecordID:   record.ID(),
		OwnerID:    record.OwnerID(),
		TodoID:     record.TodoID(),
		Title:      record.Title(),
		Category:   record.Category(),
		StartTime:  record.StartTime().Format(time.RFC3339),
		Duration:   record.Duration(),
		Completed:  record.Completed(),
		InProgress: record.InProgress(),
		AutoSaved:  record.AutoSaved(),
	}
	if record.EndTime() != nil {
		item.EndTime = record.EndTime().Format(time.RFC3339)
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal tomato record: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to save tomato record to DynamoDB",
			zap.Error(err),
			zap.String("recordID", record.ID()),
		)
		return pkgerrors.NewWriteFailedError("tomato record", err)
	}

	return nil
}

// GetByID retrieves a record owned by the given user
func (r *TomatoRepository) GetByID(ctx context.Context, ownerID, recordID string) (*entities.TomatoRecord, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(ownerID)},
			"SK": &types.AttributeValueMemberS{Value: tomatoSK(recordID)},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get tomato record", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("tomato record")
	}

	var item tomatoItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tomato record: %w", err)
	}

	return reconstructTomatoRecord(item), nil
}

// GetByOwnerID retrieves all records for a user
func (r *TomatoRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*entities.TomatoRecord, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: userPK(ownerID)},
			":sk": &types.AttributeValueMemberS{Value: "TOMATO#"},
		},
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query tomato records", err)
	}

	return r.unmarshalRecords(result.Items), nil
}

// GetByTodoID retrieves the records logged against one todo via GSI1,
// scoped to the owning user. The owner filter matters: the index is keyed
// by todo ID alone, and ownership is the only thing keeping one user's
// records out of another's aggregation.
func (r *TomatoRepository) GetByTodoID(ctx context.Context, ownerID, todoID string) ([]*entities.TomatoRecord, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(todoSK(todoID)))
	filter := expression.Name("OwnerID").Equal(expression.Value(ownerID))

	expr, err := expression.NewBuilder().
		WithKeyCondition(keyCond).
		WithFilter(filter).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build tomato record query: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query tomato records by todo", err)
	}

	return r.unmarshalRecords(result.Items), nil
}

func (r *TomatoRepository) unmarshalRecords(items []map[string]types.AttributeValue) []*entities.TomatoRecord {
	records := make([]*entities.TomatoRecord, 0, len(items))
	for _, raw := range items {
		var item tomatoItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("Failed to unmarshal tomato record item", zap.Error(err))
			continue
		}
		records = append(records, reconstructTomatoRecord(item))
	}
	return records
}

func reconstructTomatoRecord(item tomatoItem) *entities.TomatoRecord {
	startTime, _ := time.Parse(time.RFC3339, item.StartTime)

	var endTime *time.Time
	if item.EndTime != "" {
		if t, err := time.Parse(time.RFC3339, item.EndTime); err == nil {
			endTime = &t
		}
	}

	return entities.ReconstructTomatoRecord(
		item.RecordID,
		item.OwnerID,
		item.TodoID,
		item.Title,
		item.Category,
		startTime,
		endTime,
		item.Duration,
		item.Completed,
		item.InProgress,
		item.AutoSaved,
	)
}

func tomatoSK(recordID string) string {
	return fmt.Sprintf("TOMATO#%s", recordID)
}
