package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tomato-backend/application/ports"
	"tomato-backend/domain/core/entities"
	pkgerrors "tomato-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// TodoRepository implements ports.TodoRepository using DynamoDB
type TodoRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.TodoRepository {
	return &TodoRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// todoItem represents the DynamoDB item structure for a todo
type todoItem struct {
	PK              string `dynamodbav:"PK"`
	SK              string `dynamodbav:"SK"`
	EntityType      string `dynamodbav:"EntityType"`
	TodoID          string `dynamodbav:"TodoID"`
	OwnerID         string `dynamodbav:"OwnerID"`
	Title           string `dynamodbav:"Title"`
	Description     string `dynamodbav:"Description"`
	Importance      int    `dynamodbav:"Importance"`
	Category        string `dynamodbav:"Category"`
	Completed       bool   `dynamodbav:"Completed"`
	TomatoDuration  int    `dynamodbav:"TomatoDuration"`
	TomatoCount     int    `dynamodbav:"TomatoCount"`
	TomatoTotalTime int    `dynamodbav:"TomatoTotalTime"`
	CreatedAt       string `dynamodbav:"CreatedAt"`
	UpdatedAt       string `dynamodbav:"UpdatedAt"`
}

// Save persists a todo to DynamoDB
func (r *TodoRepository) Save(ctx context.Context, todo *entities.Todo) error {
	item := todoItem{
		PK:              userPK(todo.OwnerID()),
		SK:              todoSK(todo.ID()),
		EntityType:      "TODO",
		TodoID:          todo.ID(),
		OwnerID:         todo.OwnerID(),
		Title:           todo.Title(),
		Description:     todo.Description(),
		Importance:      todo.Importance(),
		Category:        todo.Category(),
		Completed:       todo.Completed(),
		TomatoDuration:  todo.TomatoDuration(),
		TomatoCount:     todo.TomatoCount(),
		TomatoTotalTime: todo.TomatoTotalTime(),
		CreatedAt:       todo.CreatedAt().Format(time.RFC3339),
		UpdatedAt:       todo.UpdatedAt().Format(time.RFC3339),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal todo: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to save todo to DynamoDB",
			zap.Error(err),
			zap.String("todoID", todo.ID()),
		)
		return pkgerrors.NewWriteFailedError("todo", err)
	}

	return nil
}

// GetByID retrieves a todo owned by the given user
func (r *TodoRepository) GetByID(ctx context.Context, ownerID, todoID string) (*entities.Todo, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(ownerID)},
			"SK": &types.AttributeValueMemberS{Value: todoSK(todoID)},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get todo", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("todo")
	}

	var item todoItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal todo: %w", err)
	}

	return reconstructTodo(item), nil
}

// GetByOwnerID retrieves all todos for a user
func (r *TodoRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*entities.Todo, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: userPK(ownerID)},
			":sk": &types.AttributeValueMemberS{Value: "TODO#"},
		},
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query todos", err)
	}

	todos := make([]*entities.Todo, 0, len(result.Items))
	for _, raw := range result.Items {
		var item todoItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("Failed to unmarshal todo item", zap.Error(err))
			continue
		}
		todos = append(todos, reconstructTodo(item))
	}

	return todos, nil
}

// Delete removes a todo. There is no cascade: tomato records referencing
// the todo remain in the table.
func (r *TodoRepository) Delete(ctx context.Context, ownerID, todoID string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(ownerID)},
			"SK": &types.AttributeValueMemberS{Value: todoSK(todoID)},
		},
		ConditionExpression: aws.String("attribute_exists(PK)"),
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		var condFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condFailed) {
			return pkgerrors.NewNotFoundError("todo")
		}
		return pkgerrors.NewWriteFailedError("todo", err)
	}

	return nil
}

// ResetDailyState clears the completed flag and tomato count on all of a
// user's todos
func (r *TodoRepository) ResetDailyState(ctx context.Context, ownerID string) error {
	todos, err := r.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return err
	}

	for _, todo := range todos {
		input := &dynamodb.UpdateItemInput{
			TableName: aws.String(r.tableName),
			Key: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: userPK(ownerID)},
				"SK": &types.AttributeValueMemberS{Value: todoSK(todo.ID())},
			},
			UpdateExpression: aws.String("SET Completed = :completed, TomatoCount = :count, UpdatedAt = :updatedAt"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":completed": &types.AttributeValueMemberBOOL{Value: false},
				":count":     &types.AttributeValueMemberN{Value: "0"},
				":updatedAt": &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
			},
		}
		if _, err := r.client.UpdateItem(ctx, input); err != nil {
			r.logger.Warn("Failed to reset todo daily state",
				zap.String("todoID", todo.ID()),
				zap.Error(err),
			)
		}
	}

	r.logger.Info("Daily state reset",
		zap.String("ownerID", ownerID),
		zap.Int("todos", len(todos)),
	)

	return nil
}

func reconstructTodo(item todoItem) *entities.Todo {
	createdAt, _ := time.Parse(time.RFC3339, item.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, item.UpdatedAt)
	return entities.ReconstructTodo(
		item.TodoID,
		item.OwnerID,
		item.Title,
		item.Description,
		item.Importance,
		item.Category,
		item.Completed,
		item.TomatoDuration,
		item.TomatoCount,
		item.TomatoTotalTime,
		createdAt,
		updatedAt,
	)
}

func userPK(ownerID string) string {
	return fmt.Sprintf("USER#%s", ownerID)
}

func todoSK(todoID string) string {
	return fmt.Sprintf("TODO#%s", todoID)
}
