package handlers

import "time"

// Request DTOs shared by the REST handlers and the RPC call dispatcher. The
// JSON keys match what the original client sends. ID fields are only read by
// the dispatcher; REST routes take them from the URL.

type addTodoRequest struct {
	Title          string `json:"title" validate:"required,min=1,max=200"`
	Description    string `json:"description" validate:"max=2000"`
	Importance     int    `json:"importance" validate:"omitempty,min=1,max=5"`
	TomatoDuration int    `json:"tomatoDuration" validate:"omitempty,min=1,max=240"`
	Category       string `json:"category" validate:"max=50"`
}

type updateTodoRequest struct {
	ID              string  `json:"id"`
	Title           *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Importance      *int    `json:"importance,omitempty" validate:"omitempty,min=1,max=5"`
	Category        *string `json:"category,omitempty" validate:"omitempty,max=50"`
	Completed       *bool   `json:"completed,omitempty"`
	TomatoDuration  *int    `json:"tomatoDuration,omitempty" validate:"omitempty,min=1,max=240"`
	TomatoCount     *int    `json:"tomatoCount,omitempty" validate:"omitempty,min=0"`
	TomatoTotalTime *int    `json:"tomatoTotalTime,omitempty" validate:"omitempty,min=0"`
}

type deleteRequest struct {
	ID string `json:"id" validate:"required"`
}

type addAimRequest struct {
	Title         string      `json:"title" validate:"required,min=1,max=200"`
	Description   string      `json:"description" validate:"max=2000"`
	Category      string      `json:"category" validate:"max=50"`
	TargetMinutes int         `json:"targetMinutes" validate:"min=0"`
	RelatedTodos  interface{} `json:"relatedTodos,omitempty"`
	Deadline      *time.Time  `json:"deadline,omitempty"`
}

type updateAimRequest struct {
	ID            string     `json:"id"`
	Title         *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description   *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category      *string    `json:"category,omitempty" validate:"omitempty,max=50"`
	TargetMinutes *int       `json:"targetMinutes,omitempty" validate:"omitempty,min=0"`
	Deadline      *time.Time `json:"deadline,omitempty"`
}

type setAimProgressRequest struct {
	ID       string `json:"id"`
	Progress int    `json:"progress" validate:"min=0,max=100"`
}

type linkTodosRequest struct {
	ID           string      `json:"id"`
	RelatedTodos interface{} `json:"relatedTodos"`
}

type recomputeProgressRequest struct {
	ID string `json:"id" validate:"required"`
}

type addTomatoRecordRequest struct {
	TodoID    string     `json:"todoId" validate:"required"`
	StartTime *time.Time `json:"startTime,omitempty"`
}

type updateTomatoRecordRequest struct {
	ID        string     `json:"id"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Duration  int        `json:"duration" validate:"min=0"`
	Completed bool       `json:"completed"`
	AutoSaved bool       `json:"autoSaved"`
}

type getTomatoRecordsRequest struct {
	TodoID string `json:"todoId,omitempty"`
}
