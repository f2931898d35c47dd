package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"poolbnb/internal/app/events"
)

// EventPublisher adapts the sarama producer to the application's event
// port, publishing every event JSON-encoded on a single topic keyed by
// the aggregate id.
type EventPublisher struct {
	Producer *Producer
	Topic    string
}

func (p EventPublisher) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: encode event %s: %w", event.Type, err)
	}
	headers := map[string]string{"event_type": event.Type}
	return p.Producer.Publish(ctx, p.Topic, event.Key, payload, headers)
}
