package entities

import (
	"math"
	"time"

	"tomato-backend/domain/events"
	pkgerrors "tomato-backend/pkg/errors"
)

// TomatoRecord is a timed focus session linked to exactly one todo. The
// title and category are copied from the todo at creation for display and
// are not kept in sync afterwards.
//
// A record is created when the session starts (InProgress set, no end time)
// and finalized when the session ends. Completed is true only for sessions
// that ran to full duration; AutoSaved marks sessions persisted mid-run.
type TomatoRecord struct {
	id         string
	ownerID    string
	todoID     string
	title      string
	category   string
	startTime  time.Time
	endTime    *time.Time
	duration   int
	completed  bool
	inProgress bool
	autoSaved  bool

	events []events.DomainEvent
}

// NewTomatoRecord starts a new session record for a todo
func NewTomatoRecord(id, ownerID, todoID, title, category string, startTime time.Time) (*TomatoRecord, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("record ID cannot be empty")
	}
	if ownerID == "" {
		return nil, pkgerrors.NewValidationError("owner ID cannot be empty")
	}
	if todoID == "" {
		return nil, pkgerrors.NewValidationError("todo ID cannot be empty")
	}
	if startTime.IsZero() {
		startTime = time.Now()
	}

	return &TomatoRecord{
		id:         id,
		ownerID:    ownerID,
		todoID:     todoID,
		title:      title,
		category:   category,
		startTime:  startTime,
		inProgress: true,
		events:     []events.DomainEvent{},
	}, nil
}

// ReconstructTomatoRecord rebuilds a record from repository data
func ReconstructTomatoRecord(
	id, ownerID, todoID, title, category string,
	startTime time.Time,
	endTime *time.Time,
	duration int,
	completed, inProgress, autoSaved bool,
) *TomatoRecord {
	return &TomatoRecord{
		id:         id,
		ownerID:    ownerID,
		todoID:     todoID,
		title:      title,
		category:   category,
		startTime:  startTime,
		endTime:    endTime,
		duration:   duration,
		completed:  completed,
		inProgress: inProgress,
		autoSaved:  autoSaved,
		events:     []events.DomainEvent{},
	}
}

// Finalize closes a live session. completed marks a session that ran to
// full duration; autoSaved marks one persisted before the timer finished.
func (r *TomatoRecord) Finalize(endTime time.Time, duration int, completed, autoSaved bool) error {
	if endTime.Before(r.startTime) {
		return pkgerrors.NewValidationError("end time cannot precede start time")
	}
	r.endTime = &endTime
	r.duration = duration
	r.completed = completed
	r.autoSaved = autoSaved
	r.inProgress = false

	if completed {
		r.addEvent(events.NewTomatoCompleted(r.id, r.todoID, r.ownerID, r.Minutes(), endTime))
	}
	return nil
}

// Minutes returns the logged minutes for this record. The stored duration
// wins; a record without one derives minutes from its start and end
// timestamps; a live record contributes nothing.
func (r *TomatoRecord) Minutes() int {
	if r.duration > 0 {
		return r.duration
	}
	if r.endTime != nil && !r.startTime.IsZero() {
		ms := r.endTime.Sub(r.startTime).Milliseconds()
		return int(math.Round(float64(ms) / 60000.0))
	}
	return 0
}

// Getters

func (r *TomatoRecord) ID() string           { return r.id }
func (r *TomatoRecord) OwnerID() string      { return r.ownerID }
func (r *TomatoRecord) TodoID() string       { return r.todoID }
func (r *TomatoRecord) Title() string        { return r.title }
func (r *TomatoRecord) Category() string     { return r.category }
func (r *TomatoRecord) StartTime() time.Time { return r.startTime }
func (r *TomatoRecord) EndTime() *time.Time  { return r.endTime }
func (r *TomatoRecord) Duration() int        { return r.duration }
func (r *TomatoRecord) Completed() bool      { return r.completed }
func (r *TomatoRecord) InProgress() bool     { return r.inProgress }
func (r *TomatoRecord) AutoSaved() bool      { return r.autoSaved }

// GetUncommittedEvents returns events raised since reconstruction
func (r *TomatoRecord) GetUncommittedEvents() []events.DomainEvent {
	return r.events
}

// MarkEventsAsCommitted clears the uncommitted event list
func (r *TomatoRecord) MarkEventsAsCommitted() {
	r.events = []events.DomainEvent{}
}

func (r *TomatoRecord) addEvent(event events.DomainEvent) {
	r.events = append(r.events, event)
}
