package models

import "time"

// Urgency buckets a todo's deadline relative to the current time.
type Urgency string

const (
	UrgencyNone    Urgency = "none"
	UrgencyOverdue Urgency = "overdue"
	UrgencyToday   Urgency = "today"
	UrgencySoon    Urgency = "soon"
	UrgencyNormal  Urgency = "normal"
)

// UrgencyRank orders buckets most-urgent first for presentation sorting.
func UrgencyRank(u Urgency) int {
	switch u {
	case UrgencyOverdue:
		return 0
	case UrgencyToday:
		return 1
	case UrgencySoon:
		return 2
	case UrgencyNormal:
		return 3
	default:
		return 4
	}
}

// ClassifyDeadline maps a deadline and completion flag to exactly one urgency
// bucket. Completed todos are always UrgencyNone, even with a past deadline.
// The result is relative to now and must not be cached on the entity.
func ClassifyDeadline(deadline *time.Time, completed bool, now time.Time) Urgency {
	if deadline == nil || completed {
		return UrgencyNone
	}
	remaining := deadline.Sub(now)
	if remaining < 0 {
		return UrgencyOverdue
	}
	if remaining <= 24*time.Hour {
		return UrgencyToday
	}
	if DaysUntil(*deadline, now) <= 3 {
		return UrgencySoon
	}
	return UrgencyNormal
}

// DaysUntil returns the whole days remaining until deadline, rounded up.
// Presentation labels and the soon bucket share this boundary.
func DaysUntil(deadline, now time.Time) int64 {
	remaining := deadline.Sub(now)
	days := remaining / (24 * time.Hour)
	if remaining%(24*time.Hour) != 0 {
		days++
	}
	return int64(days)
}

func (t *Todo) Urgency(now time.Time) Urgency {
	return ClassifyDeadline(t.Deadline, t.Completed, now)
}
