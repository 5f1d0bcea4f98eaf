package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	MaxTextLength     = 500
	MaxCategoryLength = 50
)

type Todo struct {
	ID        uuid.UUID  `gorm:"primaryKey;type:uuid"`
	UserID    uuid.UUID  `gorm:"not null;index"`
	Text      string     `gorm:"size:500;not null"`
	Completed bool       `gorm:"not null;default:false"`
	Deadline  *time.Time `gorm:"index"`
	Priority  string     `gorm:"size:10;not null;default:'medium'"`
	Category  string     `gorm:"size:50"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Todo) TableName() string {
	return "todos"
}

// IsOverdue reports whether the deadline has passed on an uncompleted todo.
// Agrees with ClassifyDeadline returning UrgencyOverdue.
func (t *Todo) IsOverdue(now time.Time) bool {
	return !t.Completed && t.Deadline != nil && t.Deadline.Before(now)
}

// PriorityRank maps a priority value to its urgency rank (higher = more urgent).
// Unknown values rank below low so they sort last.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}
