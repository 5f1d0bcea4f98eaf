package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"todo-api/domain/models"
)

// TodoSearch is the validated filter/sort/pagination input for Search.
// Zero values mean "no filter"; nil Completed means both states.
type TodoSearch struct {
	Completed *bool
	Category  string
	Search    string
	SortBy    string // createdAt, deadline, priority, text
	SortOrder string // asc, desc
	Offset    int
	Limit     int
}

// TodoStats holds the per-owner aggregate counts.
type TodoStats struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
	Overdue   int64 `json:"overdue"`
}

type TodoRepository interface {
	Create(ctx context.Context, todo *models.Todo) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Todo, error)
	Search(ctx context.Context, userID uuid.UUID, q TodoSearch) ([]*models.Todo, int64, error)
	Update(ctx context.Context, todo *models.Todo) error
	Delete(ctx context.Context, userID, id uuid.UUID) (int64, error)
	CompleteAll(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteCompleted(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error)
	Stats(ctx context.Context, userID uuid.UUID, now time.Time) (*TodoStats, error)
	DueWithin(ctx context.Context, window time.Duration, now time.Time) ([]*models.Todo, error)
}
