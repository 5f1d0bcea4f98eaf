package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Todo lifecycle event subjects.
const (
	EventTodoCreated   = "todo.created"
	EventTodoCompleted = "todo.completed"
	EventTodoDeleted   = "todo.deleted"
	EventTodoBulk      = "todo.bulk"
	EventTodoDueSoon   = "todo.due_soon"
)

// TodoEvent is the payload published on every lifecycle event.
type TodoEvent struct {
	TodoID   uuid.UUID  `json:"todoId,omitempty"`
	UserID   uuid.UUID  `json:"userId"`
	Action   string     `json:"action,omitempty"`
	Affected int64      `json:"affected,omitempty"`
	Deadline *time.Time `json:"deadline,omitempty"`
	At       time.Time  `json:"at"`
}

// EventPublisher publishes todo lifecycle events. Publishing is best effort:
// callers log failures and never propagate them to the API client.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, event TodoEvent) error
}
