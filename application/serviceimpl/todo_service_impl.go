package serviceimpl

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"todo-api/domain/dto"
	"todo-api/domain/models"
	"todo-api/domain/ports"
	"todo-api/domain/repositories"
	"todo-api/domain/services"
	"todo-api/pkg/logger"
)

const maxSearchLen = 100

var sortFields = map[string]bool{
	"createdAt": true,
	"deadline":  true,
	"priority":  true,
	"text":      true,
}

var priorities = map[string]bool{
	models.PriorityLow:    true,
	models.PriorityMedium: true,
	models.PriorityHigh:   true,
}

type TodoServiceImpl struct {
	todoRepo repositories.TodoRepository
	events   ports.EventPublisher
}

func NewTodoService(todoRepo repositories.TodoRepository, events ports.EventPublisher) services.TodoService {
	return &TodoServiceImpl{
		todoRepo: todoRepo,
		events:   events,
	}
}

func (s *TodoServiceImpl) CreateTodo(ctx context.Context, userID uuid.UUID, req *dto.CreateTodoRequest) (*models.Todo, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, models.NewValidationError("text", "must not be empty")
	}
	// Bounds count characters, not bytes.
	if utf8.RuneCountInString(text) > models.MaxTextLength {
		return nil, models.NewValidationError("text", "must be at most 500 characters")
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priorities[priority] {
		return nil, models.NewValidationError("priority", "must be one of low, medium, high")
	}

	category := strings.TrimSpace(req.Category)
	if utf8.RuneCountInString(category) > models.MaxCategoryLength {
		return nil, models.NewValidationError("category", "must be at most 50 characters")
	}

	now := time.Now()
	todo := &models.Todo{
		ID:        uuid.New(),
		UserID:    userID,
		Text:      text,
		Completed: false,
		Deadline:  req.Deadline,
		Priority:  priority,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.todoRepo.Create(ctx, todo); err != nil {
		logger.ErrorContext(ctx, "Failed to create todo", "user_id", userID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Todo created", "todo_id", todo.ID, "user_id", userID)
	s.publish(ctx, ports.EventTodoCreated, ports.TodoEvent{
		TodoID:   todo.ID,
		UserID:   userID,
		Deadline: todo.Deadline,
		At:       now,
	})

	return todo, nil
}

func (s *TodoServiceImpl) GetTodo(ctx context.Context, userID, todoID uuid.UUID) (*models.Todo, error) {
	return s.todoRepo.GetByID(ctx, userID, todoID)
}

func (s *TodoServiceImpl) ListTodos(ctx context.Context, userID uuid.UUID, q *dto.ListTodosQuery) ([]*models.Todo, int64, error) {
	search, err := buildSearch(q)
	if err != nil {
		return nil, 0, err
	}

	todos, total, err := s.todoRepo.Search(ctx, userID, search)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list todos", "user_id", userID, "error", err)
		return nil, 0, err
	}
	return todos, total, nil
}

// buildSearch applies defaults and validates every parameter. Out-of-range
// values are rejected with the offending field named, never clamped.
func buildSearch(q *dto.ListTodosQuery) (repositories.TodoSearch, error) {
	page := q.Page
	if page == 0 {
		page = services.DefaultPage
	}
	limit := q.Limit
	if limit == 0 {
		limit = services.DefaultLimit
	}
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	sortOrder := q.SortOrder
	if sortOrder == "" {
		sortOrder = "desc"
	}

	switch {
	case page < 1:
		return repositories.TodoSearch{}, models.NewValidationError("page", "must be at least 1")
	case limit < 1 || limit > services.MaxLimit:
		return repositories.TodoSearch{}, models.NewValidationError("limit", "must be between 1 and 100")
	case utf8.RuneCountInString(q.Search) > maxSearchLen:
		return repositories.TodoSearch{}, models.NewValidationError("search", "must be at most 100 characters")
	case utf8.RuneCountInString(q.Category) > models.MaxCategoryLength:
		return repositories.TodoSearch{}, models.NewValidationError("category", "must be at most 50 characters")
	case !sortFields[sortBy]:
		return repositories.TodoSearch{}, models.NewValidationError("sortBy", "must be one of createdAt, deadline, priority, text")
	case sortOrder != "asc" && sortOrder != "desc":
		return repositories.TodoSearch{}, models.NewValidationError("sortOrder", "must be asc or desc")
	}

	return repositories.TodoSearch{
		Completed: q.Completed,
		Category:  q.Category,
		Search:    q.Search,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Offset:    (page - 1) * limit,
		Limit:     limit,
	}, nil
}

func (s *TodoServiceImpl) UpdateTodo(ctx context.Context, userID, todoID uuid.UUID, req *dto.UpdateTodoRequest) (*models.Todo, error) {
	todo, err := s.todoRepo.GetByID(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	wasCompleted := todo.Completed

	if req.Text != nil {
		text := strings.TrimSpace(*req.Text)
		if text == "" {
			return nil, models.NewValidationError("text", "must not be empty")
		}
		if utf8.RuneCountInString(text) > models.MaxTextLength {
			return nil, models.NewValidationError("text", "must be at most 500 characters")
		}
		todo.Text = text
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}
	if req.Deadline.Set {
		// An explicit null clears the deadline.
		todo.Deadline = req.Deadline.Value
	}
	if req.Priority != nil {
		if !priorities[*req.Priority] {
			return nil, models.NewValidationError("priority", "must be one of low, medium, high")
		}
		todo.Priority = *req.Priority
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if utf8.RuneCountInString(category) > models.MaxCategoryLength {
			return nil, models.NewValidationError("category", "must be at most 50 characters")
		}
		todo.Category = category
	}
	todo.UpdatedAt = time.Now()

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		logger.ErrorContext(ctx, "Failed to update todo", "todo_id", todoID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Todo updated", "todo_id", todoID, "user_id", userID)
	if !wasCompleted && todo.Completed {
		s.publish(ctx, ports.EventTodoCompleted, ports.TodoEvent{
			TodoID: todo.ID,
			UserID: userID,
			At:     todo.UpdatedAt,
		})
	}

	return todo, nil
}

func (s *TodoServiceImpl) DeleteTodo(ctx context.Context, userID, todoID uuid.UUID) error {
	affected, err := s.todoRepo.Delete(ctx, userID, todoID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to delete todo", "todo_id", todoID, "error", err)
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}

	logger.InfoContext(ctx, "Todo deleted", "todo_id", todoID, "user_id", userID)
	s.publish(ctx, ports.EventTodoDeleted, ports.TodoEvent{
		TodoID: todoID,
		UserID: userID,
		At:     time.Now(),
	})
	return nil
}

func (s *TodoServiceImpl) ApplyBulk(ctx context.Context, userID uuid.UUID, action string) (int64, error) {
	var (
		affected int64
		err      error
	)
	switch action {
	case "complete-all":
		affected, err = s.todoRepo.CompleteAll(ctx, userID)
	case "delete-completed":
		affected, err = s.todoRepo.DeleteCompleted(ctx, userID)
	case "delete-all":
		affected, err = s.todoRepo.DeleteAll(ctx, userID)
	default:
		return 0, models.NewValidationError("action", "must be one of complete-all, delete-completed, delete-all")
	}
	if err != nil {
		logger.ErrorContext(ctx, "Bulk action failed", "user_id", userID, "action", action, "error", err)
		return 0, err
	}

	logger.InfoContext(ctx, "Bulk action applied", "user_id", userID, "action", action, "affected", affected)
	s.publish(ctx, ports.EventTodoBulk, ports.TodoEvent{
		UserID:   userID,
		Action:   action,
		Affected: affected,
		At:       time.Now(),
	})
	return affected, nil
}

func (s *TodoServiceImpl) Summarize(ctx context.Context, userID uuid.UUID) (*repositories.TodoStats, error) {
	stats, err := s.todoRepo.Stats(ctx, userID, time.Now())
	if err != nil {
		logger.ErrorContext(ctx, "Failed to summarize todos", "user_id", userID, "error", err)
		return nil, err
	}
	return stats, nil
}

func (s *TodoServiceImpl) publish(ctx context.Context, subject string, event ports.TodoEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, subject, event); err != nil {
		logger.WarnContext(ctx, "Event publish failed", "subject", subject, "error", err)
	}
}
