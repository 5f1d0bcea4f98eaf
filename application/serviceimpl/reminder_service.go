package serviceimpl

import (
	"context"
	"time"

	"todo-api/domain/ports"
	"todo-api/domain/repositories"
	"todo-api/pkg/logger"
	"todo-api/pkg/scheduler"
)

// ReminderConfig controls the due-soon sweep.
type ReminderConfig struct {
	Cron   string        // gocron cron expression, default hourly
	Window time.Duration // how far ahead to look, default 24h
}

// ReminderService periodically scans for todos due within the window and
// publishes todo.due_soon events for each.
type ReminderService struct {
	config    ReminderConfig
	todoRepo  repositories.TodoRepository
	events    ports.EventPublisher
	scheduler scheduler.EventScheduler
}

func NewReminderService(
	config ReminderConfig,
	todoRepo repositories.TodoRepository,
	events ports.EventPublisher,
	eventScheduler scheduler.EventScheduler,
) *ReminderService {
	service := &ReminderService{
		config:    config,
		todoRepo:  todoRepo,
		events:    events,
		scheduler: eventScheduler,
	}

	if service.config.Cron == "" {
		service.config.Cron = "0 * * * *"
	}
	if service.config.Window == 0 {
		service.config.Window = 24 * time.Hour
	}

	return service
}

// RegisterSweepJob registers the sweep with the scheduler.
func (s *ReminderService) RegisterSweepJob() error {
	return s.scheduler.AddJob("due_soon_sweep", s.config.Cron, func() {
		s.RunSweep(context.Background())
	})
}

// RunSweep performs one scan. Publish failures are logged and skipped so a
// flaky broker never aborts the sweep.
func (s *ReminderService) RunSweep(ctx context.Context) {
	now := time.Now()
	todos, err := s.todoRepo.DueWithin(ctx, s.config.Window, now)
	if err != nil {
		logger.ErrorContext(ctx, "Due-soon sweep failed", "error", err)
		return
	}
	if len(todos) == 0 {
		return
	}

	published := 0
	for _, todo := range todos {
		event := ports.TodoEvent{
			TodoID:   todo.ID,
			UserID:   todo.UserID,
			Deadline: todo.Deadline,
			At:       now,
		}
		if err := s.events.Publish(ctx, ports.EventTodoDueSoon, event); err != nil {
			logger.WarnContext(ctx, "Due-soon publish failed", "todo_id", todo.ID, "error", err)
			continue
		}
		published++
	}

	logger.InfoContext(ctx, "Due-soon sweep completed", "due", len(todos), "published", published)
}
