package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTodoRequest struct {
	Text     string     `json:"text" validate:"required,max=500"`
	Deadline *time.Time `json:"deadline"`
	Priority string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	Category string     `json:"category" validate:"omitempty,max=50"`
}

// UpdateTodoRequest updates fields independently: nil pointers mean "leave
// unchanged". Deadline uses OptionalTime so an explicit JSON null clears it.
type UpdateTodoRequest struct {
	Text      *string      `json:"text" validate:"omitempty,max=500"`
	Completed *bool        `json:"completed"`
	Deadline  OptionalTime `json:"deadline"`
	Priority  *string      `json:"priority" validate:"omitempty,oneof=low medium high"`
	Category  *string      `json:"category" validate:"omitempty,max=50"`
}

type ListTodosQuery struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	Completed *bool  `query:"completed"`
	Category  string `query:"category"`
	Search    string `query:"search"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
}

type BulkActionRequest struct {
	Action string `json:"action"`
}

type BulkActionResponse struct {
	Action   string `json:"action"`
	Affected int64  `json:"affected"`
}

type TodoResponse struct {
	ID        uuid.UUID  `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	Priority  string     `json:"priority"`
	Category  string     `json:"category,omitempty"`
	UserID    uuid.UUID  `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
