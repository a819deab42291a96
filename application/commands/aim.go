package commands

import (
	"time"

	"tomato-backend/pkg/utils"
)

// AddAimCommand represents the command to create a new aim. RelatedTodos
// accepts a string list, a JSON-encoded string list, or a single bare ID;
// it is normalized before anything is stored.
type AddAimCommand struct {
	AimID         string      `json:"aim_id" validate:"required"`
	OwnerID       string      `json:"owner_id" validate:"required"`
	Title         string      `json:"title" validate:"required,min=1,max=200"`
	Description   string      `json:"description" validate:"max=2000"`
	Category      string      `json:"category" validate:"max=50"`
	TargetMinutes int         `json:"target_minutes" validate:"min=0"`
	RelatedTodos  interface{} `json:"related_todos,omitempty"`
	Deadline      *time.Time  `json:"deadline,omitempty"`
}

// Validate checks the command fields
func (c AddAimCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// UpdateAimCommand represents a sparse aim update; nil fields are not touched
type UpdateAimCommand struct {
	AimID         string     `json:"aim_id" validate:"required"`
	OwnerID       string     `json:"owner_id" validate:"required"`
	Title         *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description   *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category      *string    `json:"category,omitempty" validate:"omitempty,max=50"`
	TargetMinutes *int       `json:"target_minutes,omitempty" validate:"omitempty,min=0"`
	Deadline      *time.Time `json:"deadline,omitempty"`
}

// Validate checks the command fields
func (c UpdateAimCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// DeleteAimCommand removes an aim
type DeleteAimCommand struct {
	AimID   string `json:"aim_id" validate:"required"`
	OwnerID string `json:"owner_id" validate:"required"`
}

// Validate checks the command fields
func (c DeleteAimCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// SetAimProgressCommand overwrites an aim's progress directly, bypassing
// the aggregator
type SetAimProgressCommand struct {
	AimID    string `json:"aim_id" validate:"required"`
	OwnerID  string `json:"owner_id" validate:"required"`
	Progress int    `json:"progress" validate:"min=0,max=100"`
}

// Validate checks the command fields
func (c SetAimProgressCommand) Validate() error {
	return utils.ValidateStruct(c)
}
