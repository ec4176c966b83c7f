package eventbus

import (
	"context"
	"log/slog"
)

// AuditLogConsumer is an EventConsumer that records every event it sees to
// structured logs -- the notification sink's minimal built-in observer,
// always registered regardless of which Publisher/Consumer pair backs the
// bus (InProcessEventBus for a single process, RabbitMQConsumer across
// several).
type AuditLogConsumer struct {
	eventTypes []string
	logger     *slog.Logger
}

// NewAuditLogConsumer creates a consumer for the given routing keys. A nil
// or empty eventTypes subscribes to every routing key schedcore emits.
func NewAuditLogConsumer(logger *slog.Logger, eventTypes ...string) *AuditLogConsumer {
	if logger == nil {
		logger = slog.Default()
	}
	if len(eventTypes) == 0 {
		eventTypes = []string{
			"activity.added",
			"activity.removed",
			"activity.renamed",
			"activity.recolored",
			"activity.entity_added",
			"activity.duration_changed",
			"activity.inserted",
			"group.added",
			"group.removed",
			"autoinsertion.done",
			"workhours.changed",
		}
	}
	return &AuditLogConsumer{eventTypes: eventTypes, logger: logger}
}

// EventTypes implements EventConsumer.
func (c *AuditLogConsumer) EventTypes() []string { return c.eventTypes }

// Handle implements EventConsumer, logging the event's envelope fields at
// info level. It never returns an error: an audit trail must not make a
// dispatch failure and hold up other consumers.
func (c *AuditLogConsumer) Handle(ctx context.Context, event *ConsumedEvent) error {
	c.logger.Info("event",
		"routing_key", event.RoutingKey,
		"aggregate_type", event.AggregateType,
		"aggregate_id", event.AggregateID,
		"event_id", event.EventID,
		"correlation_id", event.Metadata.CorrelationID,
		"causation_id", event.Metadata.CausationID,
	)
	return nil
}
