package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"todo-api/domain/ports"
)

// Publisher publishes todo events to NATS subjects.
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) ports.EventPublisher {
	return &Publisher{client: client}
}

func (p *Publisher) Publish(ctx context.Context, subject string, event ports.TodoEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.client.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}
