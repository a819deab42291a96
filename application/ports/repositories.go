package ports

import (
	"context"

	"tomato-backend/domain/core/valueobjects"
	"tomato-backend/domain/core/entities"
	"tomato-backend/domain/events"
)

// TodoRepository defines the interface for todo persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type TodoRepository interface {
	// Save persists a todo (create or update)
	Save(ctx context.Context, todo *entities.Todo) error

	// GetByID retrieves a todo owned by the given user
	GetByID(ctx context.Context, ownerID, todoID string) (*entities.Todo, error)

	// GetByOwnerID retrieves all todos for a user
	GetByOwnerID(ctx context.Context, ownerID string) ([]*entities.Todo, error)

	// Delete removes a todo. Tomato records referencing it are left in
	// place; there is no cascade.
	Delete(ctx context.Context, ownerID, todoID string) error

	// ResetDailyState clears the completed flag and tomato count on all of
	// a user's todos
	ResetDailyState(ctx context.Context, ownerID string) error
}

// AimRepository defines the interface for aim persistence
type AimRepository interface {
	// Save persists an aim (create or update)
	Save(ctx context.Context, aim *entities.Aim) error

	// GetByID retrieves an aim owned by the given user
	GetByID(ctx context.Context, ownerID, aimID string) (*entities.Aim, error)

	// GetByOwnerID retrieves all aims for a user
	GetByOwnerID(ctx context.Context, ownerID string) ([]*entities.Aim, error)

	// UpdateProgress overwrites the progress field of an aim and nothing
	// else. Fails with a not-found error when the aim does not exist.
	UpdateProgress(ctx context.Context, ownerID, aimID string, percent int) error

	// UpdateRelatedTodos replaces the stored related-todo list wholesale
	UpdateRelatedTodos(ctx context.Context, ownerID, aimID string, relatedTodos valueobjects.RelatedTodoIDs) error

	// Delete removes an aim
	Delete(ctx context.Context, ownerID, aimID string) error
}

// TomatoRepository defines the interface for pomodoro record persistence
type TomatoRepository interface {
	// Save persists a record (create or finalize)
	Save(ctx context.Context, record *entities.TomatoRecord) error

	// GetByID retrieves a record owned by the given user
	GetByID(ctx context.Context, ownerID, recordID string) (*entities.TomatoRecord, error)

	// GetByOwnerID retrieves all records for a user
	GetByOwnerID(ctx context.Context, ownerID string) ([]*entities.TomatoRecord, error)

	// GetByTodoID retrieves the records logged against one todo, scoped to
	// the owning user
	GetByTodoID(ctx context.Context, ownerID, todoID string) ([]*entities.TomatoRecord, error)
}

// EventBus publishes domain events to the outside world
type EventBus interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// Cache provides a simple key-value cache for query results
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{})
	Delete(ctx context.Context, key string)
}
