package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todo-api/domain/models"
	"todo-api/domain/repositories"
)

type TodoRepositoryImpl struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) repositories.TodoRepository {
	return &TodoRepositoryImpl{db: db}
}

func (r *TodoRepositoryImpl) Create(ctx context.Context, todo *models.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

func (r *TodoRepositoryImpl) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Todo, error) {
	var todo models.Todo
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&todo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &todo, nil
}

// scoped builds the filter predicate shared by Search's page query and its
// pre-pagination count, so both always see the same matching set.
func (r *TodoRepositoryImpl) scoped(ctx context.Context, userID uuid.UUID, q repositories.TodoSearch) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&models.Todo{}).Where("user_id = ?", userID)
	if q.Completed != nil {
		tx = tx.Where("completed = ?", *q.Completed)
	}
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Search != "" {
		tx = tx.Where("LOWER(text) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(q.Search))+"%")
	}
	return tx
}

func (r *TodoRepositoryImpl) Search(ctx context.Context, userID uuid.UUID, q repositories.TodoSearch) ([]*models.Todo, int64, error) {
	var total int64
	if err := r.scoped(ctx, userID, q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var todos []*models.Todo
	err := r.scoped(ctx, userID, q).
		Order(orderClause(q.SortBy, q.SortOrder)).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&todos).Error
	if err != nil {
		return nil, 0, err
	}
	return todos, total, nil
}

func (r *TodoRepositoryImpl) Update(ctx context.Context, todo *models.Todo) error {
	// Save writes every column, so a nil deadline clears the stored value.
	return r.db.WithContext(ctx).Save(todo).Error
}

func (r *TodoRepositoryImpl) Delete(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Todo{})
	return tx.RowsAffected, tx.Error
}

func (r *TodoRepositoryImpl) CompleteAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	// Matches only pending rows so already-completed todos keep their updated_at.
	tx := r.db.WithContext(ctx).Model(&models.Todo{}).
		Where("user_id = ? AND completed = ?", userID, false).
		Update("completed", true)
	return tx.RowsAffected, tx.Error
}

func (r *TodoRepositoryImpl) DeleteCompleted(ctx context.Context, userID uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).Where("user_id = ? AND completed = ?", userID, true).Delete(&models.Todo{})
	return tx.RowsAffected, tx.Error
}

func (r *TodoRepositoryImpl) DeleteAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Todo{})
	return tx.RowsAffected, tx.Error
}

func (r *TodoRepositoryImpl) Stats(ctx context.Context, userID uuid.UUID, now time.Time) (*repositories.TodoStats, error) {
	var row struct {
		Total     int64
		Completed int64
		Overdue   int64
	}
	err := r.db.WithContext(ctx).Model(&models.Todo{}).
		Select(
			"COUNT(*) AS total, "+
				"COALESCE(SUM(CASE WHEN completed THEN 1 ELSE 0 END), 0) AS completed, "+
				"COALESCE(SUM(CASE WHEN NOT completed AND deadline IS NOT NULL AND deadline < ? THEN 1 ELSE 0 END), 0) AS overdue",
			now,
		).
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &repositories.TodoStats{
		Total:     row.Total,
		Completed: row.Completed,
		Pending:   row.Total - row.Completed,
		Overdue:   row.Overdue,
	}, nil
}

func (r *TodoRepositoryImpl) DueWithin(ctx context.Context, window time.Duration, now time.Time) ([]*models.Todo, error) {
	var todos []*models.Todo
	err := r.db.WithContext(ctx).
		Where("completed = ? AND deadline IS NOT NULL AND deadline >= ? AND deadline <= ?",
			false, now, now.Add(window)).
		Order("deadline ASC").
		Find(&todos).Error
	return todos, err
}

// orderClause maps the requested sort key and direction to SQL. The id column
// is always the secondary key so pagination is reproducible across pages.
func orderClause(sortBy, sortOrder string) string {
	dir := "DESC"
	if sortOrder == "asc" {
		dir = "ASC"
	}
	switch sortBy {
	case "deadline":
		// Todos without a deadline sort last regardless of direction.
		return fmt.Sprintf("CASE WHEN deadline IS NULL THEN 1 ELSE 0 END ASC, deadline %s, id ASC", dir)
	case "priority":
		return fmt.Sprintf(
			"CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 WHEN 'low' THEN 1 ELSE 0 END %s, id ASC", dir)
	case "text":
		return fmt.Sprintf("text %s, id ASC", dir)
	default:
		return fmt.Sprintf("created_at %s, id ASC", dir)
	}
}

// escapeLike neutralizes LIKE wildcards so search is a literal substring match.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
