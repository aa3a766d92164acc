package idempotency

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// MaxKeyLength matches the width of the key column.
const MaxKeyLength = 255

var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord or RestoreRecord constructor")

// Record is a claimed key. It is created at most once per key and never
// updated; it disappears only when its retention window has passed.
type Record struct {
	key       string
	claimedAt time.Time
	expiresAt time.Time
	result    json.RawMessage

	guard guard.ConstructorGuard
}

// NewRecord claims key at claimedAt for ttl with the serialised result.
func NewRecord(key string, result json.RawMessage, claimedAt time.Time, ttl time.Duration) (*Record, error) {
	if ttl <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("ttl", ttl, "1ns", "unbounded")
	}
	return RestoreRecord(key, result, claimedAt, claimedAt.Add(ttl))
}

// RestoreRecord rebuilds a record read from the store.
func RestoreRecord(key string, result json.RawMessage, claimedAt, expiresAt time.Time) (*Record, error) {
	r := &Record{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setKey(key),
		r.setResult(result),
		r.setWindow(claimedAt, expiresAt),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// NormalizeKey trims the caller-supplied header value and checks its length.
// An empty result means no key was supplied.
func NormalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if len(key) > MaxKeyLength {
		return "", errs.NewValueIsOutOfRangeError("idempotency key length", len(key), 1, MaxKeyLength)
	}
	return key, nil
}

func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

func (r *Record) Key() string          { return r.key }
func (r *Record) ClaimedAt() time.Time { return r.claimedAt }
func (r *Record) ExpiresAt() time.Time { return r.expiresAt }

// Result returns a copy of the cached outcome.
func (r *Record) Result() json.RawMessage {
	return slices.Clone(r.result)
}

// IsExpired reports whether the retention window has passed at now.
func (r *Record) IsExpired(now time.Time) bool {
	return !now.Before(r.expiresAt)
}

func (r *Record) setKey(key string) error {
	key, err := NormalizeKey(key)
	if err != nil {
		return err
	}
	if key == "" {
		return errs.NewValueIsRequiredError("idempotency key")
	}
	r.key = key
	return nil
}

func (r *Record) setResult(result json.RawMessage) error {
	if len(result) == 0 || !json.Valid(result) {
		return errs.NewValueIsInvalidError("cached result must be a JSON document")
	}
	r.result = slices.Clone(result)
	return nil
}

func (r *Record) setWindow(claimedAt, expiresAt time.Time) error {
	if claimedAt.IsZero() {
		return errs.NewValueIsRequiredError("claimed at")
	}
	if !expiresAt.After(claimedAt) {
		return errs.NewValueIsInvalidError("expires at must be after claimed at")
	}
	r.claimedAt = claimedAt.UTC()
	r.expiresAt = expiresAt.UTC()
	return nil
}
