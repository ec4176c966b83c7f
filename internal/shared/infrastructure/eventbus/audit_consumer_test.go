package eventbus_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/adrienmarchand/schedcore/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogConsumer_DefaultEventTypes(t *testing.T) {
	consumer := eventbus.NewAuditLogConsumer(nil)

	types := consumer.EventTypes()
	assert.Contains(t, types, "activity.added")
	assert.Contains(t, types, "autoinsertion.done")
	assert.Contains(t, types, "workhours.changed")
}

func TestAuditLogConsumer_CustomEventTypes(t *testing.T) {
	consumer := eventbus.NewAuditLogConsumer(nil, "activity.added")

	assert.Equal(t, []string{"activity.added"}, consumer.EventTypes())
}

func TestAuditLogConsumer_HandleNeverErrors(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	consumer := eventbus.NewAuditLogConsumer(logger, "activity.added")

	err := consumer.Handle(context.Background(), &eventbus.ConsumedEvent{
		EventID:       uuid.New(),
		AggregateID:   "1",
		AggregateType: "activity",
		RoutingKey:    "activity.added",
	})
	require.NoError(t, err)
}

func TestAuditLogConsumer_WiredIntoInProcessBus(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	bus := eventbus.NewInProcessEventBus(logger)
	bus.RegisterConsumer(eventbus.NewAuditLogConsumer(logger, "activity.added"))

	assert.Equal(t, 1, bus.GetRegistry().ConsumerCount())
}
