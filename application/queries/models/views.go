package models

import "time"

// TodoView is the read model for a todo
type TodoView struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Importance      int       `json:"importance"`
	Category        string    `json:"category"`
	Completed       bool      `json:"completed"`
	TomatoDuration  int       `json:"tomatoDuration"`
	TomatoCount     int       `json:"tomatoCount"`
	TomatoTotalTime int       `json:"tomatoTotalTime"`
	CreatedAt       time.Time `json:"createTime"`
	UpdatedAt       time.Time `json:"updateTime"`
}

// AimView is the read model for an aim
type AimView struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	TargetMinutes int        `json:"targetMinutes"`
	RelatedTodos  []string   `json:"relatedTodos"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Progress      int        `json:"progress"`
	CreatedAt     time.Time  `json:"createTime"`
	UpdatedAt     time.Time  `json:"updateTime"`
}

// TomatoRecordView is the read model for a session record
type TomatoRecordView struct {
	ID         string     `json:"id"`
	TodoID     string     `json:"todoId"`
	Title      string     `json:"title"`
	Category   string     `json:"category"`
	StartTime  time.Time  `json:"startTime"`
	EndTime    *time.Time `json:"endTime,omitempty"`
	Duration   int        `json:"duration"`
	Minutes    int        `json:"minutes"`
	Completed  bool       `json:"completed"`
	InProgress bool       `json:"inProgress"`
	AutoSaved  bool       `json:"autoSaved"`
}

// TodoStats summarizes a user's todos
type TodoStats struct {
	Total                  int            `json:"total"`
	Completed              int            `json:"completed"`
	Incomplete             int            `json:"incomplete"`
	ImportanceDistribution map[int]int    `json:"importanceDistribution"`
	CategoryDistribution   map[string]int `json:"categoryDistribution"`
}

// AimStats summarizes a user's aims
type AimStats struct {
	Total                int            `json:"total"`
	InProgress           int            `json:"inProgress"`
	Completed            int            `json:"completed"`
	CategoryDistribution map[string]int `json:"categoryDistribution"`
}

// TomatoStats summarizes a user's session records
type TomatoStats struct {
	Total           int `json:"total"`
	TotalMinutes    int `json:"totalMinutes"`
	AverageDuration int `json:"averageDuration"`
}

// Statistics is the combined usage report
type Statistics struct {
	Todos     TodoStats   `json:"todos"`
	Aims      AimStats    `json:"aims"`
	Tomatoes  TomatoStats `json:"pomodoros"`
	Timestamp time.Time   `json:"timestamp"`
}
