package commands

import (
	"tomato-backend/pkg/utils"
)

// AddTodoCommand represents the command to create a new todo
type AddTodoCommand struct {
	TodoID         string `json:"todo_id" validate:"required"`
	OwnerID        string `json:"owner_id" validate:"required"`
	Title          string `json:"title" validate:"required,min=1,max=200"`
	Description    string `json:"description" validate:"max=2000"`
	Importance     int    `json:"importance" validate:"omitempty,min=1,max=5"`
	TomatoDuration int    `json:"tomato_duration" validate:"omitempty,min=1,max=240"`
	Category       string `json:"category" validate:"max=50"`
}

// Validate checks the command fields
func (c AddTodoCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// UpdateTodoCommand represents a sparse todo update; nil fields are not touched
type UpdateTodoCommand struct {
	TodoID          string  `json:"todo_id" validate:"required"`
	OwnerID         string  `json:"owner_id" validate:"required"`
	Title           *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Importance      *int    `json:"importance,omitempty" validate:"omitempty,min=1,max=5"`
	Category        *string `json:"category,omitempty" validate:"omitempty,max=50"`
	Completed       *bool   `json:"completed,omitempty"`
	TomatoDuration  *int    `json:"tomato_duration,omitempty" validate:"omitempty,min=1,max=240"`
	TomatoCount     *int    `json:"tomato_count,omitempty" validate:"omitempty,min=0"`
	TomatoTotalTime *int    `json:"tomato_total_time,omitempty" validate:"omitempty,min=0"`
}

// Validate checks the command fields
func (c UpdateTodoCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// DeleteTodoCommand removes a todo. Tomato records that reference it are
// kept; orphaned records stay queryable by ID.
type DeleteTodoCommand struct {
	TodoID  string `json:"todo_id" validate:"required"`
	OwnerID string `json:"owner_id" validate:"required"`
}

// Validate checks the command fields
func (c DeleteTodoCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// ResetDailyStateCommand clears the completed flag and tomato count on all
// of a user's todos. Issued by the scheduled daily-reset function.
type ResetDailyStateCommand struct {
	OwnerID string `json:"owner_id" validate:"required"`
}

// Validate checks the command fields
func (c ResetDailyStateCommand) Validate() error {
	return utils.ValidateStruct(c)
}
