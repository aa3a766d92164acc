package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/ports"
)

// recordEvent appends one domain event within the caller's unit of work.
func recordEvent(
	ctx context.Context,
	store ports.EventStore,
	at time.Time,
	eventType event.Type,
	subjectID string,
	payload event.Payload,
) error {
	e, err := event.NewEvent(eventType, subjectID, payload, at)
	if err != nil {
		return err
	}

	if _, err = store.Append(ctx, e); err != nil {
		return fmt.Errorf("append %s event: %w", eventType, err)
	}
	return nil
}

// toPayload turns a JSON-tagged struct into an event payload.
func toPayload(v any) (event.Payload, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var payload event.Payload
	if err = json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
