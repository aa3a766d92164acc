// Package idempotencyrepo stores idempotency claims and their cached results.
package idempotencyrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/idempotency"

	"gorm.io/datatypes"
)

type IdempotencyKeyDTO struct {
	Key       string         `gorm:"column:key;type:varchar(255);primaryKey"`
	ClaimedAt time.Time      `gorm:"type:timestamptz;not null"`
	ExpiresAt time.Time      `gorm:"type:timestamptz;not null;index"`
	Result    datatypes.JSON `gorm:"type:jsonb;not null"`
}

func (IdempotencyKeyDTO) TableName() string {
	return "idempotency_keys"
}

func fromDomain(r *idempotency.Record) IdempotencyKeyDTO {
	return IdempotencyKeyDTO{
		Key:       r.Key(),
		ClaimedAt: r.ClaimedAt().UTC(),
		ExpiresAt: r.ExpiresAt().UTC(),
		Result:    datatypes.JSON(r.Result()),
	}
}

func toDomain(dto IdempotencyKeyDTO) (*idempotency.Record, error) {
	return idempotency.RestoreRecord(dto.Key, json.RawMessage(dto.Result), dto.ClaimedAt.UTC(), dto.ExpiresAt.UTC())
}
