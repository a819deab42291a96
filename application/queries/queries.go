package queries

import (
	"tomato-backend/pkg/utils"
)

// GetTodosQuery fetches all todos for a user
type GetTodosQuery struct {
	OwnerID string `json:"owner_id" validate:"required"`
}

// Validate checks the query fields
func (q GetTodosQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// GetAimsQuery fetches all aims for a user
type GetAimsQuery struct {
	OwnerID string `json:"owner_id" validate:"required"`
}

// Validate checks the query fields
func (q GetAimsQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// GetTomatoRecordsQuery fetches a user's session records, optionally
// narrowed to one todo
type GetTomatoRecordsQuery struct {
	OwnerID string `json:"owner_id" validate:"required"`
	TodoID  string `json:"todo_id,omitempty"`
}

// Validate checks the query fields
func (q GetTomatoRecordsQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// GetStatisticsQuery aggregates usage statistics across a user's todos,
// aims and session records
type GetStatisticsQuery struct {
	OwnerID string `json:"owner_id" validate:"required"`
}

// Validate checks the query fields
func (q GetStatisticsQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// CacheKey makes statistics results cacheable per user
func (q GetStatisticsQuery) CacheKey() string {
	return "stats:" + q.OwnerID
}
