package eventrepo

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/event"

	"gorm.io/gorm"
)

// GormEventStore implements ports.EventStore.
//
// The next sequence of a subject is MAX(sequence)+1 read inside the caller's
// transaction. Writers of one subject are already serialized by the aggregate
// row lock they hold; the unique index catches anything that is not.
type GormEventStore struct {
	db *gorm.DB
}

func NewGormEventStore(db *gorm.DB) *GormEventStore {
	return &GormEventStore{db: db}
}

func (s *GormEventStore) Append(ctx context.Context, e *event.Event) (*event.Event, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var next int64
	if err := db.Model(&EventDTO{}).
		Select("COALESCE(MAX(sequence), 0) + 1").
		Where("subject_id = ?", e.SubjectID()).
		Scan(&next).Error; err != nil {
		return nil, err
	}

	stamped, err := e.WithSequence(next)
	if err != nil {
		return nil, err
	}

	dto, err := fromDomain(stamped)
	if err != nil {
		return nil, err
	}
	if err = db.Create(&dto).Error; err != nil {
		return nil, fmt.Errorf("append event %d of %s: %w", next, e.SubjectID(), err)
	}

	return stamped, nil
}

func (s *GormEventStore) History(ctx context.Context, subjectID string) ([]*event.Event, error) {
	var dtos []EventDTO
	if err := s.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("sequence").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]*event.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, nil
}
