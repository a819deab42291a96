package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tomato-backend/application/ports"
	"tomato-backend/domain/core/entities"
	"tomato-backend/domain/core/valueobjects"
	pkgerrors "tomato-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// AimRepository implements ports.AimRepository using DynamoDB
type AimRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewAimRepository creates a new AimRepository
func NewAimRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.AimRepository {
	return &AimRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// aimItem represents the DynamoDB item structure for an aim.
//
// RelatedTodos is deliberately untyped: historic write paths have stored it
// as a string list, a JSON-encoded string, or a single bare ID, and existing
// rows still carry all three shapes. It is normalized on every read and only
// the canonical list shape is ever written back.
type aimItem struct {
	PK            string      `dynamodbav:"PK"`
	SK            string      `dynamodbav:"SK"`
	EntityType    string      `dynamodbav:"EntityType"`
	AimID         string      `dynamodbav:"AimID"`
	OwnerID       string      `dynamodbav:"OwnerID"`
	Title         string      `dynamodbav:"Title"`
	Description   string      `dynamodbav:"Description"`
	Category      string      `dynamodbav:"Category"`
	TargetMinutes int         `dynamodbav:"TargetMinutes"`
	RelatedTodos  interface{} `dynamodbav:"RelatedTodos"`
	Deadline      string      `dynamodbav:"Deadline,omitempty"`
	Progress      int         `dynamodbav:"Progress"`
	CreatedAt     string      `dynamodbav:"CreatedAt"`
	UpdatedAt     string      `dynamodbav:"UpdatedAt"`
}

// Save persists an aim to DynamoDB
func (r *AimRepository) Save(ctx context.Context, aim *entities.Aim) error {
	item := aimItem{
		PK:            userPK(aim.OwnerID()),
		SK:            aimSK(aim.ID()),
		EntityType:    "AIM",
		AimID:         aim.ID(),
		OwnerID:       aim.OwnerID(),
		Title:         aim.Title(),
		Description:   aim.Description(),
		Category:      aim.Category(),
		TargetMinutes: aim.TargetMinutes(),
		RelatedTodos:  aim.RelatedTodos().Values(),
		Progress:      aim.Progress(),
		CreatedAt:     aim.CreatedAt().Format(time.RFC3339),
		UpdatedAt:     aim.UpdatedAt().Format(time.RFC3339),
	}
	if aim.Deadline() != nil {
		item.Deadline = aim.Deadline().Format(time.RFC3339)
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal aim: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to save aim to DynamoDB",
			zap.Error(err),
			zap.String("aimID", aim.ID()),
		)
		return pkgerrors.NewWriteFailedError("aim", err)
	}

	return nil
}

// GetByID retrieves an aim owned by the given user
func (r *AimRepository) GetByID(ctx context.Context, ownerID, aimID string) (*entities.Aim, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(ownerID)},
			"SK": &types.AttributeValueMemberS{Value: aimSK(aimID)},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get aim", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("aim")
	}

	var item aimItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal aim: %w", err)
	}

	return reconstructAim(item), nil
}

// GetByOwnerID retrieves all aims for a user
func (r *AimRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*entities.Aim, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: userPK(ownerID)},
			":sk": &types.AttributeValueMemberS{Value: "AIM#"},
		},
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query aims", err)
	}

	aims := make([]*entities.Aim, 0, len(result.Items))
	for _, raw := range result.Items {
		var item aimItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("Failed to unmarshal aim item", zap.Error(err))
			continue
		}
		aims = append(aims, reconstructAim(item))
	}

	return aims, nil
}

// UpdateProgress overwrites the progress field of an aim and nothing else
func (r *AimRepository) UpdateProgress(ctx context.Context, ownerID, aimID string, percent int) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(ownerID)},
			"SK": &types.AttributeValueMemberS{Value: aimSK(aimID)},
		},
		UpdateExpression:    aws.String("SET Progress = :progress, UpdatedAt = :updatedAt"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":progress":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", percent)},
			":updatedAt": &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
		},
	}

	if _, err := r.client.UpdateItem(ctx, input); err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return pkgerrors.NewNotFoundError("aim")
		}
		r.logger.Error("Failed to update aim progress",
			zap.Error(err),
			zap.String("aimID", aimID),
			zap.Int("progress", percent),
		)
		return pkgerrors.NewWriteFailedError("aim progress", err)
	}

	return nil
}

// UpdateRelatedTodos replaces the stored related-todo list wholesale
func (r *AimRepository) UpdateRelatedTodos(ctx context.Context, ownerID, aimID string, relatedTodos valueobjects.RelatedTodoIDs) error {
	ids, err := attributevalue.Marshal(relatedTodos.Values())
	if err != nil {
		return fmt.Errorf("failed to marshal related todos: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(ownerID)},
			"SK": &types.AttributeValueMemberS{Value: aimSK(aimID)},
		},
		UpdateExpression:    aws.String("SET RelatedTodos = :related, UpdatedAt = :updatedAt"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":related":   ids,
			":updatedAt": &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
		},
	}

	if _, err := r.client.UpdateItem(ctx, input); err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return pkgerrors.NewNotFoundError("aim")
		}
		return pkgerrors.NewWriteFailedError("aim related todos", err)
	}

	return nil
}

// Delete removes an aim
func (r *AimRepository) Delete(ctx context.Context, ownerID, aimID string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(ownerID)},
			"SK": &types.AttributeValueMemberS{Value: aimSK(aimID)},
		},
		ConditionExpression: aws.String("attribute_exists(PK)"),
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return pkgerrors.NewNotFoundError("aim")
		}
		return pkgerrors.NewWriteFailedError("aim", err)
	}

	return nil
}

func reconstructAim(item aimItem) *entities.Aim {
	createdAt, _ := time.Parse(time.RFC3339, item.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, item.UpdatedAt)

	var deadline *time.Time
	if item.Deadline != "" {
		if d, err := time.Parse(time.RFC3339, item.Deadline); err == nil {
			deadline = &d
		}
	}

	return entities.ReconstructAim(
		item.AimID,
		item.OwnerID,
		item.Title,
		item.Description,
		item.Category,
		item.TargetMinutes,
		item.RelatedTodos,
		deadline,
		item.Progress,
		createdAt,
		updatedAt,
	)
}

func aimSK(aimID string) string {
	return fmt.Sprintf("AIM#%s", aimID)
}
