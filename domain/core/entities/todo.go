package entities

import (
	"time"

	"tomato-backend/domain/events"
	pkgerrors "tomato-backend/pkg/errors"
)

// Importance bounds for a todo. The mobile client renders three levels but
// older records carry values up to five.
const (
	MinImportance = 1
	MaxImportance = 5

	// DefaultImportance is used when the caller does not pick a level.
	DefaultImportance = 3

	// DefaultTomatoDuration is the default pomodoro session length in minutes.
	DefaultTomatoDuration = 25

	// DefaultCategory labels todos created without an explicit category.
	DefaultCategory = "study"
)

// Todo is a user task. Completing pomodoro sessions against a todo
// accumulates its tomato count and total logged minutes.
type Todo struct {
	id              string
	ownerID         string
	title           string
	description     string
	importance      int
	category        string
	completed       bool
	tomatoDuration  int
	tomatoCount     int
	tomatoTotalTime int
	createdAt       time.Time
	updatedAt       time.Time

	events []events.DomainEvent
}

// NewTodo creates a new todo with business rule validation
func NewTodo(id, ownerID, title, description string, importance int, tomatoDuration int, category string) (*Todo, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("todo ID cannot be empty")
	}
	if ownerID == "" {
		return nil, pkgerrors.NewValidationError("owner ID cannot be empty")
	}
	if title == "" {
		return nil, pkgerrors.NewValidationError("title cannot be empty")
	}
	if importance == 0 {
		importance = DefaultImportance
	}
	if importance < MinImportance || importance > MaxImportance {
		return nil, pkgerrors.NewValidationError("importance must be between 1 and 5")
	}
	if tomatoDuration <= 0 {
		tomatoDuration = DefaultTomatoDuration
	}
	if category == "" {
		category = DefaultCategory
	}

	now := time.Now()
	todo := &Todo{
		id:             id,
		ownerID:        ownerID,
		title:          title,
		description:    description,
		importance:     importance,
		category:       category,
		tomatoDuration: tomatoDuration,
		createdAt:      now,
		updatedAt:      now,
		events:         []events.DomainEvent{},
	}

	todo.addEvent(events.NewTodoCreated(id, ownerID, title, now))

	return todo, nil
}

// ReconstructTodo rebuilds a todo from repository data with preserved
// timestamps. No events are raised.
func ReconstructTodo(
	id, ownerID, title, description string,
	importance int,
	category string,
	completed bool,
	tomatoDuration, tomatoCount, tomatoTotalTime int,
	createdAt, updatedAt time.Time,
) *Todo {
	return &Todo{
		id:              id,
		ownerID:         ownerID,
		title:           title,
		description:     description,
		importance:      importance,
		category:        category,
		completed:       completed,
		tomatoDuration:  tomatoDuration,
		tomatoCount:     tomatoCount,
		tomatoTotalTime: tomatoTotalTime,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		events:          []events.DomainEvent{},
	}
}

// TodoUpdate carries a sparse field update; nil fields are left untouched.
type TodoUpdate struct {
	Title           *string
	Description     *string
	Importance      *int
	Category        *string
	Completed       *bool
	TomatoDuration  *int
	TomatoCount     *int
	TomatoTotalTime *int
}

// Apply applies a sparse update and bumps the update timestamp
func (t *Todo) Apply(u TodoUpdate) error {
	if u.Title != nil {
		if *u.Title == "" {
			return pkgerrors.NewValidationError("title cannot be empty")
		}
		t.title = *u.Title
	}
	if u.Description != nil {
		t.description = *u.Description
	}
	if u.Importance != nil {
		if *u.Importance < MinImportance || *u.Importance > MaxImportance {
			return pkgerrors.NewValidationError("importance must be between 1 and 5")
		}
		t.importance = *u.Importance
	}
	if u.Category != nil {
		t.category = *u.Category
	}
	if u.Completed != nil {
		if *u.Completed && !t.completed {
			t.addEvent(events.NewTodoCompleted(t.id, t.ownerID, time.Now()))
		}
		t.completed = *u.Completed
	}
	if u.TomatoDuration != nil {
		if *u.TomatoDuration <= 0 {
			return pkgerrors.NewValidationError("tomato duration must be positive")
		}
		t.tomatoDuration = *u.TomatoDuration
	}
	if u.TomatoCount != nil {
		t.tomatoCount = *u.TomatoCount
	}
	if u.TomatoTotalTime != nil {
		t.tomatoTotalTime = *u.TomatoTotalTime
	}
	t.updatedAt = time.Now()
	return nil
}

// RecordSession accumulates a completed pomodoro session against this todo
func (t *Todo) RecordSession(minutes int) {
	t.tomatoCount++
	t.tomatoTotalTime += minutes
	t.updatedAt = time.Now()
}

// ResetDaily clears the completion flag and the per-day tomato count
func (t *Todo) ResetDaily() {
	t.completed = false
	t.tomatoCount = 0
	t.updatedAt = time.Now()
}

// Getters

func (t *Todo) ID() string           { return t.id }
func (t *Todo) OwnerID() string      { return t.ownerID }
func (t *Todo) Title() string        { return t.title }
func (t *Todo) Description() string  { return t.description }
func (t *Todo) Importance() int      { return t.importance }
func (t *Todo) Category() string     { return t.category }
func (t *Todo) Completed() bool      { return t.completed }
func (t *Todo) TomatoDuration() int  { return t.tomatoDuration }
func (t *Todo) TomatoCount() int     { return t.tomatoCount }
func (t *Todo) TomatoTotalTime() int { return t.tomatoTotalTime }
func (t *Todo) CreatedAt() time.Time { return t.createdAt }
func (t *Todo) UpdatedAt() time.Time { return t.updatedAt }

// GetUncommittedEvents returns events raised since reconstruction
func (t *Todo) GetUncommittedEvents() []events.DomainEvent {
	return t.events
}

// MarkEventsAsCommitted clears the uncommitted event list
func (t *Todo) MarkEventsAsCommitted() {
	t.events = []events.DomainEvent{}
}

func (t *Todo) addEvent(event events.DomainEvent) {
	t.events = append(t.events, event)
}
