package application

import (
	"testing"
	"time"

	"github.com/adrienmarchand/schedcore/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventMetadata(t *testing.T) {
	t.Run("generates correlation and causation IDs", func(t *testing.T) {
		metadata := NewEventMetadata(uuid.Nil)

		assert.NotEqual(t, uuid.Nil, metadata.CorrelationID)
		assert.NotEqual(t, uuid.Nil, metadata.CausationID)
	})

	t.Run("chains an existing causation ID", func(t *testing.T) {
		causationID := uuid.New()

		metadata := NewEventMetadata(causationID)

		assert.Equal(t, causationID, metadata.CausationID)
	})

	t.Run("generates unique correlation IDs", func(t *testing.T) {
		metadata1 := NewEventMetadata(uuid.Nil)
		metadata2 := NewEventMetadata(uuid.Nil)

		assert.NotEqual(t, metadata1.CorrelationID, metadata2.CorrelationID)
	})
}

// testEvent is a concrete implementation of DomainEvent with metadata setter.
type testEvent struct {
	domain.BaseEvent
}

// nonSetterEvent is a domain event that doesn't implement SetMetadata.
type nonSetterEvent struct {
	eventID uuid.UUID
}

func (e nonSetterEvent) EventID() uuid.UUID             { return e.eventID }
func (e nonSetterEvent) AggregateID() string             { return "" }
func (e nonSetterEvent) AggregateType() string           { return "test" }
func (e nonSetterEvent) RoutingKey() string              { return "test.event" }
func (e nonSetterEvent) OccurredAt() time.Time           { return time.Time{} }
func (e nonSetterEvent) Metadata() domain.EventMetadata  { return domain.EventMetadata{} }

func TestApplyEventMetadata(t *testing.T) {
	t.Run("applies metadata to events with setter", func(t *testing.T) {
		event := &testEvent{
			BaseEvent: domain.NewBaseEvent("activity-1", "test", "test.created"),
		}

		metadata := NewEventMetadata(uuid.Nil)

		ApplyEventMetadata([]domain.DomainEvent{event}, metadata)

		assert.Equal(t, metadata.CorrelationID, event.Metadata().CorrelationID)
		assert.Equal(t, metadata.CausationID, event.Metadata().CausationID)
	})

	t.Run("applies metadata to multiple events", func(t *testing.T) {
		event1 := &testEvent{
			BaseEvent: domain.NewBaseEvent("activity-1", "test", "test.event1"),
		}
		event2 := &testEvent{
			BaseEvent: domain.NewBaseEvent("activity-2", "test", "test.event2"),
		}

		metadata := NewEventMetadata(uuid.Nil)

		ApplyEventMetadata([]domain.DomainEvent{event1, event2}, metadata)

		assert.Equal(t, metadata.CorrelationID, event1.Metadata().CorrelationID)
		assert.Equal(t, metadata.CorrelationID, event2.Metadata().CorrelationID)
	})

	t.Run("ignores events without a metadata setter", func(t *testing.T) {
		metadata := NewEventMetadata(uuid.Nil)

		require.NotPanics(t, func() {
			ApplyEventMetadata([]domain.DomainEvent{nonSetterEvent{eventID: uuid.New()}}, metadata)
		})
	})

	t.Run("handles empty event list", func(t *testing.T) {
		metadata := NewEventMetadata(uuid.Nil)

		require.NotPanics(t, func() {
			ApplyEventMetadata([]domain.DomainEvent{}, metadata)
		})
	})

	t.Run("handles nil event list", func(t *testing.T) {
		metadata := NewEventMetadata(uuid.Nil)

		require.NotPanics(t, func() {
			ApplyEventMetadata(nil, metadata)
		})
	})
}
