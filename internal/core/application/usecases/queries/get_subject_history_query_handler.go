package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetSubjectHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetSubjectHistoryQueryHandler(db *gorm.DB) GetSubjectHistoryQueryHandler {
	return GetSubjectHistoryQueryHandler{db: db}
}

// Handle returns the events ordered by sequence. An unknown subject yields an
// empty slice, not an error.
func (h GetSubjectHistoryQueryHandler) Handle(ctx context.Context, query GetSubjectHistoryQuery) ([]EventView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			type,
			sequence,
			occurred_at,
			payload
		FROM domain_events
		WHERE subject_id = ?
		ORDER BY sequence
	`, query.SubjectID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]EventView, 0)
	for rows.Next() {
		var (
			id         uuid.UUID
			view       EventView
			occurredAt time.Time
			payload    []byte
		)
		if err = rows.Scan(&id, &view.Type, &view.Sequence, &occurredAt, &payload); err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		view.OccurredAt = occurredAt.UTC()
		if err = json.Unmarshal(payload, &view.Payload); err != nil {
			return nil, fmt.Errorf("decode payload of event %s: %w", view.ID, err)
		}

		events = append(events, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
