package nats

import (
	"context"

	"todo-api/domain/ports"
)

// NoopPublisher stands in when NATS is not configured; events vanish silently.
type NoopPublisher struct{}

func NewNoopPublisher() ports.EventPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) Publish(ctx context.Context, subject string, event ports.TodoEvent) error {
	return nil
}
