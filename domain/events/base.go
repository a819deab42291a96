package events

import (
	"time"
)

// SourceBackend identifies this service as the event source on the bus.
const SourceBackend = "tomato.backend"

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// Todo events

// TodoCreated is raised when a new todo is added
type TodoCreated struct {
	BaseEvent
	TodoID  string `json:"todo_id"`
	OwnerID string `json:"owner_id"`
	Title   string `json:"title"`
}

// NewTodoCreated creates a TodoCreated event
func NewTodoCreated(todoID, ownerID, title string, timestamp time.Time) TodoCreated {
	return TodoCreated{
		BaseEvent: BaseEvent{
			AggregateID: todoID,
			EventType:   "todo.created",
			Timestamp:   timestamp,
			Version:     1,
		},
		TodoID:  todoID,
		OwnerID: ownerID,
		Title:   title,
	}
}

// TodoCompleted is raised when a todo is marked completed
type TodoCompleted struct {
	BaseEvent
	TodoID  string `json:"todo_id"`
	OwnerID string `json:"owner_id"`
}

// NewTodoCompleted creates a TodoCompleted event
func NewTodoCompleted(todoID, ownerID string, timestamp time.Time) TodoCompleted {
	return TodoCompleted{
		BaseEvent: BaseEvent{
			AggregateID: todoID,
			EventType:   "todo.completed",
			Timestamp:   timestamp,
			Version:     1,
		},
		TodoID:  todoID,
		OwnerID: ownerID,
	}
}

// Tomato events

// TomatoCompleted is raised when a pomodoro session runs to full duration
type TomatoCompleted struct {
	BaseEvent
	RecordID string `json:"record_id"`
	TodoID   string `json:"todo_id"`
	OwnerID  string `json:"owner_id"`
	Minutes  int    `json:"minutes"`
}

// NewTomatoCompleted creates a TomatoCompleted event
func NewTomatoCompleted(recordID, todoID, ownerID string, minutes int, timestamp time.Time) TomatoCompleted {
	return TomatoCompleted{
		BaseEvent: BaseEvent{
			AggregateID: recordID,
			EventType:   "tomato.completed",
			Timestamp:   timestamp,
			Version:     1,
		},
		RecordID: recordID,
		TodoID:   todoID,
		OwnerID:  ownerID,
		Minutes:  minutes,
	}
}

// Aim events

// AimCreated is raised when a new aim is added
type AimCreated struct {
	BaseEvent
	AimID   string `json:"aim_id"`
	OwnerID string `json:"owner_id"`
	Title   string `json:"title"`
}

// NewAimCreated creates an AimCreated event
func NewAimCreated(aimID, ownerID, title string, timestamp time.Time) AimCreated {
	return AimCreated{
		BaseEvent: BaseEvent{
			AggregateID: aimID,
			EventType:   "aim.created",
			Timestamp:   timestamp,
			Version:     1,
		},
		AimID:   aimID,
		OwnerID: ownerID,
		Title:   title,
	}
}

// AimTodosLinked is raised when an aim's related todo list is replaced
type AimTodosLinked struct {
	BaseEvent
	AimID   string   `json:"aim_id"`
	OwnerID string   `json:"owner_id"`
	TodoIDs []string `json:"todo_ids"`
}

// NewAimTodosLinked creates an AimTodosLinked event
func NewAimTodosLinked(aimID, ownerID string, todoIDs []string, timestamp time.Time) AimTodosLinked {
	return AimTodosLinked{
		BaseEvent: BaseEvent{
			AggregateID: aimID,
			EventType:   "aim.todos_linked",
			Timestamp:   timestamp,
			Version:     1,
		},
		AimID:   aimID,
		OwnerID: ownerID,
		TodoIDs: todoIDs,
	}
}

// AimProgressRecomputed is raised after the aggregator persists a new
// progress value for an aim
type AimProgressRecomputed struct {
	BaseEvent
	AimID        string `json:"aim_id"`
	OwnerID      string `json:"owner_id"`
	Progress     int    `json:"progress"`
	TotalMinutes int    `json:"total_minutes"`
}

// NewAimProgressRecomputed creates an AimProgressRecomputed event
func NewAimProgressRecomputed(aimID, ownerID string, progress, totalMinutes int, timestamp time.Time) AimProgressRecomputed {
	return AimProgressRecomputed{
		BaseEvent: BaseEvent{
			AggregateID: aimID,
			EventType:   "aim.progress_recomputed",
			Timestamp:   timestamp,
			Version:     1,
		},
		AimID:        aimID,
		OwnerID:      ownerID,
		Progress:     progress,
		TotalMinutes: totalMinutes,
	}
}
