package entities

import (
	"time"

	"tomato-backend/domain/core/valueobjects"
	"tomato-backend/domain/events"
	pkgerrors "tomato-backend/pkg/errors"
)

// Aim is a user objective with a target time budget and a set of linked
// todos. Its progress percentage is either derived from the pomodoro time
// logged against the linked todos or set directly by the user; the stored
// value is authoritative until the next recomputation.
type Aim struct {
	id            string
	ownerID       string
	title         string
	description   string
	category      string
	targetMinutes int
	relatedTodos  valueobjects.RelatedTodoIDs
	deadline      *time.Time
	progress      int
	createdAt     time.Time
	updatedAt     time.Time

	events []events.DomainEvent
}

// NewAim creates a new aim with progress initialized to zero.
// relatedTodos accepts any of the legacy shapes; it is normalized here so
// nothing downstream ever sees the raw value.
func NewAim(id, ownerID, title, description, category string, targetMinutes int, relatedTodos interface{}, deadline *time.Time) (*Aim, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("aim ID cannot be empty")
	}
	if ownerID == "" {
		return nil, pkgerrors.NewValidationError("owner ID cannot be empty")
	}
	if title == "" {
		return nil, pkgerrors.NewValidationError("title cannot be empty")
	}
	if targetMinutes < 0 {
		return nil, pkgerrors.NewValidationError("target minutes cannot be negative")
	}

	now := time.Now()
	aim := &Aim{
		id:            id,
		ownerID:       ownerID,
		title:         title,
		description:   description,
		category:      category,
		targetMinutes: targetMinutes,
		relatedTodos:  valueobjects.NormalizeRelatedTodoIDs(relatedTodos),
		deadline:      deadline,
		progress:      0,
		createdAt:     now,
		updatedAt:     now,
		events:        []events.DomainEvent{},
	}

	aim.addEvent(events.NewAimCreated(id, ownerID, title, now))

	return aim, nil
}

// ReconstructAim rebuilds an aim from repository data. The related-todos
// field is normalized on the way in; this is the read boundary the legacy
// shapes must not cross.
func ReconstructAim(
	id, ownerID, title, description, category string,
	targetMinutes int,
	relatedTodos interface{},
	deadline *time.Time,
	progress int,
	createdAt, updatedAt time.Time,
) *Aim {
	return &Aim{
		id:            id,
		ownerID:       ownerID,
		title:         title,
		description:   description,
		category:      category,
		targetMinutes: targetMinutes,
		relatedTodos:  valueobjects.NormalizeRelatedTodoIDs(relatedTodos),
		deadline:      deadline,
		progress:      progress,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		events:        []events.DomainEvent{},
	}
}

// AimUpdate carries a sparse field update; nil fields are left untouched.
type AimUpdate struct {
	Title         *string
	Description   *string
	Category      *string
	TargetMinutes *int
	Deadline      *time.Time
}

// Apply applies a sparse update and bumps the update timestamp
func (a *Aim) Apply(u AimUpdate) error {
	if u.Title != nil {
		if *u.Title == "" {
			return pkgerrors.NewValidationError("title cannot be empty")
		}
		a.title = *u.Title
	}
	if u.Description != nil {
		a.description = *u.Description
	}
	if u.Category != nil {
		a.category = *u.Category
	}
	if u.TargetMinutes != nil {
		if *u.TargetMinutes < 0 {
			return pkgerrors.NewValidationError("target minutes cannot be negative")
		}
		a.targetMinutes = *u.TargetMinutes
	}
	if u.Deadline != nil {
		a.deadline = u.Deadline
	}
	a.updatedAt = time.Now()
	return nil
}

// SetProgress overwrites the progress percentage. Used by both the
// aggregator and the manual override; the bounds are enforced here.
func (a *Aim) SetProgress(percent int) error {
	if percent < 0 || percent > 100 {
		return pkgerrors.NewValidationError("progress must be between 0 and 100")
	}
	a.progress = percent
	a.updatedAt = time.Now()
	return nil
}

// ReplaceRelatedTodos replaces the linked todo list wholesale. The previous
// list is discarded, never merged.
func (a *Aim) ReplaceRelatedTodos(raw interface{}) valueobjects.RelatedTodoIDs {
	a.relatedTodos = valueobjects.NormalizeRelatedTodoIDs(raw)
	a.updatedAt = time.Now()
	a.addEvent(events.NewAimTodosLinked(a.id, a.ownerID, a.relatedTodos.Values(), a.updatedAt))
	return a.relatedTodos
}

// Getters

func (a *Aim) ID() string                                 { return a.id }
func (a *Aim) OwnerID() string                            { return a.ownerID }
func (a *Aim) Title() string                              { return a.title }
func (a *Aim) Description() string                        { return a.description }
func (a *Aim) Category() string                           { return a.category }
func (a *Aim) TargetMinutes() int                         { return a.targetMinutes }
func (a *Aim) RelatedTodos() valueobjects.RelatedTodoIDs  { return a.relatedTodos }
func (a *Aim) Deadline() *time.Time                       { return a.deadline }
func (a *Aim) Progress() int                              { return a.progress }
func (a *Aim) CreatedAt() time.Time                       { return a.createdAt }
func (a *Aim) UpdatedAt() time.Time                       { return a.updatedAt }

// GetUncommittedEvents returns events raised since reconstruction
func (a *Aim) GetUncommittedEvents() []events.DomainEvent {
	return a.events
}

// MarkEventsAsCommitted clears the uncommitted event list
func (a *Aim) MarkEventsAsCommitted() {
	a.events = []events.DomainEvent{}
}

func (a *Aim) addEvent(event events.DomainEvent) {
	a.events = append(a.events, event)
}
