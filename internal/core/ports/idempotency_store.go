package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/idempotency"
)

// IdempotencyStore maps idempotency keys to cached outcomes.
type IdempotencyStore interface {
	// Claim inserts the record if its key is absent, as a single atomic
	// operation. It returns false, without error, when the key was already
	// claimed.
	Claim(ctx context.Context, record *idempotency.Record) (bool, error)

	// Get returns *errs.ObjectNotFoundError for an unknown key.
	Get(ctx context.Context, key string) (*idempotency.Record, error)

	// PurgeExpired deletes records whose retention window ended at or before
	// now and returns how many were removed.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
