package event

import (
	"errors"
	"maps"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent constructor")

// Payload is the opaque structured body of an event. It must be JSON
// serialisable.
type Payload map[string]any

// Event is a fact that happened to a subject. Subjects are order and
// shipment ids or skus, hence a plain string.
//
// Sequence is assigned by the event store on append and is strictly
// increasing per subject, starting at 1. A new event carries sequence 0.
type Event struct {
	id         kernel.UUID
	eventType  Type
	subjectID  string
	sequence   int64
	payload    Payload
	occurredAt time.Time

	guard guard.ConstructorGuard
}

// NewEvent creates an event that has not been appended yet.
func NewEvent(eventType Type, subjectID string, payload Payload, occurredAt time.Time) (*Event, error) {
	return RestoreEvent(kernel.NewUUID(), eventType, subjectID, 0, payload, occurredAt)
}

// RestoreEvent rebuilds an event read back from the store.
func RestoreEvent(
	id kernel.UUID,
	eventType Type,
	subjectID string,
	sequence int64,
	payload Payload,
	occurredAt time.Time,
) (*Event, error) {
	e := &Event{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		eventType.Validate(),
		e.setSubjectID(subjectID),
		e.setSequence(sequence),
		e.setOccurredAt(occurredAt),
	); err != nil {
		return nil, err
	}

	e.eventType = eventType
	e.payload = maps.Clone(payload)
	if e.payload == nil {
		e.payload = Payload{}
	}

	return e, nil
}

func (e *Event) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

func (e *Event) ID() kernel.UUID       { return e.id }
func (e *Event) Type() Type            { return e.eventType }
func (e *Event) SubjectID() string     { return e.subjectID }
func (e *Event) Sequence() int64       { return e.sequence }
func (e *Event) OccurredAt() time.Time { return e.occurredAt }

// Payload returns a shallow copy of the payload.
func (e *Event) Payload() Payload {
	return maps.Clone(e.payload)
}

// WithSequence returns a copy of the event stamped with its position in the
// subject's stream. Only the event store calls it.
func (e *Event) WithSequence(sequence int64) (*Event, error) {
	return RestoreEvent(e.id, e.eventType, e.subjectID, sequence, e.payload, e.occurredAt)
}

func (e *Event) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Event) setSubjectID(subjectID string) error {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return errs.NewValueIsRequiredError("subject id")
	}
	e.subjectID = subjectID
	return nil
}

func (e *Event) setSequence(sequence int64) error {
	if sequence < 0 {
		return errs.NewValueIsOutOfRangeError("sequence", sequence, 0, "unbounded")
	}
	e.sequence = sequence
	return nil
}

func (e *Event) setOccurredAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("occurred at")
	}
	e.occurredAt = at.UTC()
	return nil
}
