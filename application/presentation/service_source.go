package presentation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"todo-api/domain/dto"
	"todo-api/domain/models"
	"todo-api/domain/services"
)

const sourcePageSize = 100

// ServiceSource backs the view with the todo service, scoped to one owner.
type ServiceSource struct {
	todoService services.TodoService
	ownerID     uuid.UUID
}

func NewServiceSource(todoService services.TodoService, ownerID uuid.UUID) *ServiceSource {
	return &ServiceSource{
		todoService: todoService,
		ownerID:     ownerID,
	}
}

// List fetches the owner's full set page by page; the view does its own
// sorting and filtering locally.
func (s *ServiceSource) List(ctx context.Context) ([]*models.Todo, error) {
	var all []*models.Todo
	for page := 1; ; page++ {
		todos, total, err := s.todoService.ListTodos(ctx, s.ownerID, &dto.ListTodosQuery{
			Page:  page,
			Limit: sourcePageSize,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, todos...)
		if int64(len(all)) >= total || len(todos) == 0 {
			return all, nil
		}
	}
}

func (s *ServiceSource) Add(ctx context.Context, text string, deadline *time.Time) (*models.Todo, error) {
	return s.todoService.CreateTodo(ctx, s.ownerID, &dto.CreateTodoRequest{
		Text:     text,
		Deadline: deadline,
	})
}

func (s *ServiceSource) Save(ctx context.Context, id uuid.UUID, text string, deadline *time.Time) error {
	_, err := s.todoService.UpdateTodo(ctx, s.ownerID, id, &dto.UpdateTodoRequest{
		Text:     &text,
		Deadline: dto.OptionalTime{Set: true, Value: deadline},
	})
	return err
}

func (s *ServiceSource) Toggle(ctx context.Context, id uuid.UUID) error {
	todo, err := s.todoService.GetTodo(ctx, s.ownerID, id)
	if err != nil {
		return err
	}
	completed := !todo.Completed
	_, err = s.todoService.UpdateTodo(ctx, s.ownerID, id, &dto.UpdateTodoRequest{
		Completed: &completed,
	})
	return err
}

func (s *ServiceSource) Remove(ctx context.Context, id uuid.UUID) error {
	return s.todoService.DeleteTodo(ctx, s.ownerID, id)
}
