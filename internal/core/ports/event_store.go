package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/event"
)

// EventStore is the append-only domain event log.
type EventStore interface {
	// Append stores e as the next event of its subject and returns it
	// stamped with its sequence. Events are never updated or deleted.
	Append(ctx context.Context, e *event.Event) (*event.Event, error)

	// History returns the events of a subject ordered by sequence. An unknown
	// subject has an empty history.
	History(ctx context.Context, subjectID string) ([]*event.Event, error)
}
