package presentation

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"todo-api/domain/models"
)

type SortKey string

const (
	SortCreated  SortKey = "created"
	SortDeadline SortKey = "deadline"
	SortPriority SortKey = "priority"
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterOverdue   Filter = "overdue"
)

// View holds one user's working set of todos along with the active sort key,
// filter and editing session. It re-derives its visible list after every
// mutation. Updates are synchronous: one source round trip, then a refresh.
type View struct {
	source  Source
	todos   []*models.Todo
	sortKey SortKey
	filter  Filter
	editing *uuid.UUID

	now func() time.Time
}

func NewView(source Source) *View {
	return &View{
		source:  source,
		sortKey: SortCreated,
		filter:  FilterAll,
		now:     time.Now,
	}
}

// Refresh reloads the working set from the source.
func (v *View) Refresh(ctx context.Context) error {
	todos, err := v.source.List(ctx)
	if err != nil {
		return err
	}
	v.todos = todos
	return nil
}

func (v *View) SetSort(key SortKey) {
	v.sortKey = key
}

func (v *View) SetFilter(f Filter) {
	v.filter = f
}

// Visible sorts the full set by the active key, then filters. Filtering never
// re-sorts; it is always applied over the already-ordered whole.
func (v *View) Visible() []*models.Todo {
	sorted := make([]*models.Todo, len(v.todos))
	copy(sorted, v.todos)

	now := v.now()
	switch v.sortKey {
	case SortDeadline:
		// Ascending, no-deadline last; ties among those fall back to newest first.
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := sorted[i], sorted[j]
			switch {
			case a.Deadline == nil && b.Deadline == nil:
				return a.CreatedAt.After(b.CreatedAt)
			case a.Deadline == nil:
				return false
			case b.Deadline == nil:
				return true
			default:
				return a.Deadline.Before(*b.Deadline)
			}
		})
	case SortPriority:
		// Most urgent bucket first.
		sort.SliceStable(sorted, func(i, j int) bool {
			return models.UrgencyRank(sorted[i].Urgency(now)) < models.UrgencyRank(sorted[j].Urgency(now))
		})
	default:
		// Newest first.
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	}

	if v.filter == FilterAll {
		return sorted
	}

	visible := make([]*models.Todo, 0, len(sorted))
	for _, todo := range sorted {
		switch v.filter {
		case FilterActive:
			if !todo.Completed {
				visible = append(visible, todo)
			}
		case FilterCompleted:
			if todo.Completed {
				visible = append(visible, todo)
			}
		case FilterOverdue:
			if todo.IsOverdue(now) {
				visible = append(visible, todo)
			}
		}
	}
	return visible
}

// Add creates a todo from trimmed text; blank input is ignored.
func (v *View) Add(ctx context.Context, text string, deadline *time.Time) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if _, err := v.source.Add(ctx, text, deadline); err != nil {
		return err
	}
	return v.Refresh(ctx)
}

func (v *View) Toggle(ctx context.Context, id uuid.UUID) error {
	if err := v.source.Toggle(ctx, id); err != nil {
		return err
	}
	return v.Refresh(ctx)
}

func (v *View) Remove(ctx context.Context, id uuid.UUID) error {
	if err := v.source.Remove(ctx, id); err != nil {
		return err
	}
	return v.Refresh(ctx)
}

// StartEdit opens an editing session on id, abandoning any session already
// open on another todo. At most one todo is ever in editing state.
func (v *View) StartEdit(id uuid.UUID) {
	v.editing = &id
}

func (v *View) CancelEdit() {
	v.editing = nil
}

// EditingID returns the todo currently being edited, if any.
func (v *View) EditingID() (uuid.UUID, bool) {
	if v.editing == nil {
		return uuid.Nil, false
	}
	return *v.editing, true
}

// SaveEdit commits the open editing session. Empty trimmed text leaves the
// todo unchanged and just exits edit mode. A non-empty save commits the text
// and the deadline composed from the date/time inputs; an empty date input
// clears any existing deadline.
func (v *View) SaveEdit(ctx context.Context, text, dateInput, timeInput string) error {
	if v.editing == nil {
		return nil
	}
	id := *v.editing
	v.editing = nil

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	deadline, err := ComposeDeadline(dateInput, timeInput)
	if err != nil {
		return err
	}

	if err := v.source.Save(ctx, id, text, deadline); err != nil {
		return err
	}
	return v.Refresh(ctx)
}
