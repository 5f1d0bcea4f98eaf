package services

import (
	"context"

	"github.com/google/uuid"

	"todo-api/domain/dto"
	"todo-api/domain/models"
	"todo-api/domain/repositories"
)

// Paging defaults shared by the service and the pagination envelope.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type TodoService interface {
	CreateTodo(ctx context.Context, userID uuid.UUID, req *dto.CreateTodoRequest) (*models.Todo, error)
	GetTodo(ctx context.Context, userID, todoID uuid.UUID) (*models.Todo, error)
	ListTodos(ctx context.Context, userID uuid.UUID, q *dto.ListTodosQuery) ([]*models.Todo, int64, error)
	UpdateTodo(ctx context.Context, userID, todoID uuid.UUID, req *dto.UpdateTodoRequest) (*models.Todo, error)
	DeleteTodo(ctx context.Context, userID, todoID uuid.UUID) error
	ApplyBulk(ctx context.Context, userID uuid.UUID, action string) (int64, error)
	Summarize(ctx context.Context, userID uuid.UUID) (*repositories.TodoStats, error)
}
