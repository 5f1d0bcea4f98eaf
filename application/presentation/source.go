package presentation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"todo-api/domain/models"
)

// Source abstracts where the view's todos live: an in-memory list for the
// offline variant or the todo service for the backend-integrated one. The
// view is written once against this interface and composed with either.
type Source interface {
	List(ctx context.Context) ([]*models.Todo, error)
	Add(ctx context.Context, text string, deadline *time.Time) (*models.Todo, error)
	Save(ctx context.Context, id uuid.UUID, text string, deadline *time.Time) error
	Toggle(ctx context.Context, id uuid.UUID) error
	Remove(ctx context.Context, id uuid.UUID) error
}
