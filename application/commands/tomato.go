package commands

import (
	"time"

	"tomato-backend/pkg/utils"
)

// AddTomatoRecordCommand starts a pomodoro session record against a todo.
// The todo's title and category are snapshotted onto the record at creation.
type AddTomatoRecordCommand struct {
	RecordID  string    `json:"record_id" validate:"required"`
	OwnerID   string    `json:"owner_id" validate:"required"`
	TodoID    string    `json:"todo_id" validate:"required"`
	StartTime time.Time `json:"start_time"`
}

// Validate checks the command fields
func (c AddTomatoRecordCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// UpdateTomatoRecordCommand finalizes a live session record. A completed
// session also accumulates minutes onto its todo.
type UpdateTomatoRecordCommand struct {
	RecordID  string     `json:"record_id" validate:"required"`
	OwnerID   string     `json:"owner_id" validate:"required"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Duration  int        `json:"duration" validate:"min=0"`
	Completed bool       `json:"completed"`
	AutoSaved bool       `json:"auto_saved"`
}

// Validate checks the command fields
func (c UpdateTomatoRecordCommand) Validate() error {
	return utils.ValidateStruct(c)
}
