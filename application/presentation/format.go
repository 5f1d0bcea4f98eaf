package presentation

import (
	"fmt"
	"time"

	"todo-api/domain/models"
)

const (
	dateInputLayout = "2006-01-02"
	timeInputLayout = "15:04"
)

// ComposeDeadline builds a deadline from separate date and time inputs in the
// local timezone. An empty date means no deadline; an empty time defaults to
// 23:59 of the given date.
func ComposeDeadline(dateInput, timeInput string) (*time.Time, error) {
	if dateInput == "" {
		return nil, nil
	}

	if timeInput == "" {
		timeInput = "23:59"
	}

	deadline, err := time.ParseInLocation(dateInputLayout+" "+timeInputLayout, dateInput+" "+timeInput, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid deadline input: %w", err)
	}
	return &deadline, nil
}

// FormatDeadline renders the human-readable deadline label for a todo.
func FormatDeadline(deadline *time.Time, completed bool, now time.Time) string {
	switch models.ClassifyDeadline(deadline, completed, now) {
	case models.UrgencyOverdue:
		return "Overdue"
	case models.UrgencyToday:
		return "Due today"
	case models.UrgencySoon:
		return fmt.Sprintf("Due in %d days", models.DaysUntil(*deadline, now))
	case models.UrgencyNormal:
		return "Due " + deadline.Format("Jan 2, 2006")
	default:
		return "No deadline"
	}
}
