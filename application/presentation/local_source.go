package presentation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"todo-api/domain/models"
)

// LocalSource keeps todos in memory for the offline variant.
type LocalSource struct {
	mu    sync.Mutex
	todos []*models.Todo
}

func NewLocalSource() *LocalSource {
	return &LocalSource{}
}

func (s *LocalSource) List(ctx context.Context) ([]*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Todo, len(s.todos))
	for i, todo := range s.todos {
		copied := *todo
		out[i] = &copied
	}
	return out, nil
}

func (s *LocalSource) Add(ctx context.Context, text string, deadline *time.Time) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	todo := &models.Todo{
		ID:        uuid.New(),
		Text:      text,
		Deadline:  deadline,
		Priority:  models.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.todos = append(s.todos, todo)
	copied := *todo
	return &copied, nil
}

func (s *LocalSource) Save(ctx context.Context, id uuid.UUID, text string, deadline *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo := s.find(id)
	if todo == nil {
		return models.ErrNotFound
	}
	todo.Text = text
	todo.Deadline = deadline
	todo.UpdatedAt = time.Now()
	return nil
}

func (s *LocalSource) Toggle(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo := s.find(id)
	if todo == nil {
		return models.ErrNotFound
	}
	todo.Completed = !todo.Completed
	todo.UpdatedAt = time.Now()
	return nil
}

func (s *LocalSource) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, todo := range s.todos {
		if todo.ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *LocalSource) find(id uuid.UUID) *models.Todo {
	for _, todo := range s.todos {
		if todo.ID == id {
			return todo
		}
	}
	return nil
}
