package application

import (
	"context"

	"github.com/adrienmarchand/schedcore/internal/shared/domain"
	"github.com/google/uuid"
)

type metadataSetter interface {
	SetMetadata(metadata domain.EventMetadata)
}

type causationIDKey struct{}

// WithCausationID attaches a causation id to ctx -- the CLI command tree
// sets this to its per-invocation correlation id, so every domain event a
// command's mutations raise chains back to the command that caused it.
func WithCausationID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, causationIDKey{}, id)
}

// CausationIDFromContext returns the causation id attached to ctx, or
// uuid.Nil if none was set.
func CausationIDFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(causationIDKey{}).(uuid.UUID)
	return id
}

// NewEventMetadata creates operation-scoped metadata for domain events,
// chaining the causation id of the triggering operation if any.
func NewEventMetadata(causationID uuid.UUID) domain.EventMetadata {
	if causationID == uuid.Nil {
		causationID = uuid.New()
	}
	return domain.EventMetadata{
		CorrelationID: uuid.New(),
		CausationID:   causationID,
	}
}

// ApplyEventMetadata sets metadata on all events that support it.
func ApplyEventMetadata(events []domain.DomainEvent, metadata domain.EventMetadata) {
	for _, event := range events {
		if setter, ok := event.(metadataSetter); ok {
			setter.SetMetadata(metadata)
		}
	}
}
