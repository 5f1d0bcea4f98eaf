package models

import (
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestClassifyDeadline(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		deadline  *time.Time
		completed bool
		want      Urgency
	}{
		{"no deadline", nil, false, UrgencyNone},
		{"no deadline completed", nil, true, UrgencyNone},
		{"past deadline", timePtr(now.Add(-time.Hour)), false, UrgencyOverdue},
		{"past deadline completed", timePtr(now.Add(-time.Hour)), true, UrgencyNone},
		{"exactly now", timePtr(now), false, UrgencyToday},
		{"in one hour", timePtr(now.Add(time.Hour)), false, UrgencyToday},
		{"exactly 24h", timePtr(now.Add(24 * time.Hour)), false, UrgencyToday},
		{"just over 24h", timePtr(now.Add(24*time.Hour + time.Minute)), false, UrgencySoon},
		{"two days", timePtr(now.Add(48 * time.Hour)), false, UrgencySoon},
		{"exactly three days", timePtr(now.Add(72 * time.Hour)), false, UrgencySoon},
		{"just over three days", timePtr(now.Add(72*time.Hour + time.Minute)), false, UrgencyNormal},
		{"next month", timePtr(now.Add(30 * 24 * time.Hour)), false, UrgencyNormal},
		{"far future completed", timePtr(now.Add(30 * 24 * time.Hour)), true, UrgencyNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyDeadline(tt.deadline, tt.completed, now)
			if got != tt.want {
				t.Errorf("ClassifyDeadline() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Every deadline/completed pair must land in exactly one bucket, and
// IsOverdue must agree with the classifier's overdue case.
func TestClassifierAgreesWithIsOverdue(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	deadlines := []*time.Time{
		nil,
		timePtr(now.Add(-48 * time.Hour)),
		timePtr(now.Add(-time.Second)),
		timePtr(now),
		timePtr(now.Add(12 * time.Hour)),
		timePtr(now.Add(36 * time.Hour)),
		timePtr(now.Add(100 * 24 * time.Hour)),
	}

	valid := map[Urgency]bool{
		UrgencyNone:    true,
		UrgencyOverdue: true,
		UrgencyToday:   true,
		UrgencySoon:    true,
		UrgencyNormal:  true,
	}

	for _, deadline := range deadlines {
		for _, completed := range []bool{false, true} {
			got := ClassifyDeadline(deadline, completed, now)
			if !valid[got] {
				t.Fatalf("ClassifyDeadline(%v, %v) returned unknown bucket %q", deadline, completed, got)
			}
			if completed && got != UrgencyNone {
				t.Errorf("completed todo classified %q, want %q", got, UrgencyNone)
			}

			todo := Todo{Deadline: deadline, Completed: completed}
			if todo.IsOverdue(now) != (got == UrgencyOverdue) {
				t.Errorf("IsOverdue() = %v disagrees with bucket %q (deadline=%v completed=%v)",
					todo.IsOverdue(now), got, deadline, completed)
			}
		}
	}
}

func TestUrgencyRankOrder(t *testing.T) {
	order := []Urgency{UrgencyOverdue, UrgencyToday, UrgencySoon, UrgencyNormal, UrgencyNone}
	for i := 1; i < len(order); i++ {
		if UrgencyRank(order[i-1]) >= UrgencyRank(order[i]) {
			t.Errorf("expected %q to rank before %q", order[i-1], order[i])
		}
	}
}

func TestPriorityRank(t *testing.T) {
	if PriorityRank(PriorityHigh) <= PriorityRank(PriorityMedium) {
		t.Error("high should outrank medium")
	}
	if PriorityRank(PriorityMedium) <= PriorityRank(PriorityLow) {
		t.Error("medium should outrank low")
	}
	if PriorityRank("bogus") >= PriorityRank(PriorityLow) {
		t.Error("unknown priority should rank below low")
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		offset time.Duration
		want   int64
	}{
		{"exactly one day", 24 * time.Hour, 1},
		{"just over one day", 24*time.Hour + time.Minute, 2},
		{"exactly three days", 72 * time.Hour, 3},
		{"just over three days", 72*time.Hour + time.Minute, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntil(now.Add(tt.offset), now); got != tt.want {
				t.Errorf("DaysUntil(+%v) = %d, want %d", tt.offset, got, tt.want)
			}
		})
	}

	// The soon bucket ends exactly where DaysUntil crosses 3.
	for _, offset := range []time.Duration{25 * time.Hour, 72 * time.Hour, 72*time.Hour + time.Minute} {
		deadline := now.Add(offset)
		bucket := ClassifyDeadline(&deadline, false, now)
		if (DaysUntil(deadline, now) <= 3) != (bucket == UrgencySoon) {
			t.Errorf("bucket %q disagrees with DaysUntil=%d at +%v", bucket, DaysUntil(deadline, now), offset)
		}
	}
}
