// Package eventrepo is the append-only domain event log on Postgres.
package eventrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EventDTO is one domain_events row. (subject_id, sequence) is unique, so two
// appends that race for the same sequence cannot both commit.
type EventDTO struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Type       string         `gorm:"type:varchar(64);not null;index"`
	SubjectID  string         `gorm:"type:varchar(128);not null;uniqueIndex:idx_domain_events_subject_sequence,priority:1"`
	Sequence   int64          `gorm:"type:bigint;not null;uniqueIndex:idx_domain_events_subject_sequence,priority:2"`
	Payload    datatypes.JSON `gorm:"type:jsonb;not null"`
	OccurredAt time.Time      `gorm:"type:timestamptz;not null"`
}

func (EventDTO) TableName() string {
	return "domain_events"
}

func fromDomain(e *event.Event) (EventDTO, error) {
	payload, err := json.Marshal(e.Payload())
	if err != nil {
		return EventDTO{}, err
	}

	return EventDTO{
		ID:         e.ID().Bytes(),
		Type:       e.Type().String(),
		SubjectID:  e.SubjectID(),
		Sequence:   e.Sequence(),
		Payload:    datatypes.JSON(payload),
		OccurredAt: e.OccurredAt().UTC(),
	}, nil
}

func toDomain(dto EventDTO) (*event.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var payload event.Payload
	if err = json.Unmarshal(dto.Payload, &payload); err != nil {
		return nil, err
	}

	return event.RestoreEvent(id, event.Type(dto.Type), dto.SubjectID, dto.Sequence, payload, dto.OccurredAt.UTC())
}
