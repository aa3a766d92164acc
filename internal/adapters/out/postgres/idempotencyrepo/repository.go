package idempotencyrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/idempotency"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormIdempotencyStore implements ports.IdempotencyStore.
type GormIdempotencyStore struct {
	db *gorm.DB
}

func NewGormIdempotencyStore(db *gorm.DB) *GormIdempotencyStore {
	return &GormIdempotencyStore{db: db}
}

// Claim is one INSERT ... ON CONFLICT statement. A live key keeps its row and
// the statement affects nothing; an expired key is taken over in place.
func (s *GormIdempotencyStore) Claim(ctx context.Context, record *idempotency.Record) (bool, error) {
	if err := record.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(record)
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"claimed_at", "expires_at", "result"}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "idempotency_keys.expires_at <= excluded.claimed_at"},
		}},
	}).Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (s *GormIdempotencyStore) Get(ctx context.Context, key string) (*idempotency.Record, error) {
	var dto IdempotencyKeyDTO
	if err := s.db.WithContext(ctx).First(&dto, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("idempotency key", key)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (s *GormIdempotencyStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at <= ?", now.UTC()).Delete(&IdempotencyKeyDTO{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
