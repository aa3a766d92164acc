package idempotency_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/idempotency"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	claimedAt := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	result := json.RawMessage(`{"ok":true}`)

	t.Run("should claim with retention window", func(t *testing.T) {
		r, err := idempotency.NewRecord("  key-1 ", result, claimedAt, time.Hour)

		require.NoError(t, err)
		assert.Equal(t, "key-1", r.Key())
		assert.Equal(t, claimedAt, r.ClaimedAt())
		assert.Equal(t, claimedAt.Add(time.Hour), r.ExpiresAt())
		assert.JSONEq(t, `{"ok":true}`, string(r.Result()))
	})

	t.Run("expiry is inclusive of the deadline", func(t *testing.T) {
		r, err := idempotency.NewRecord("key-1", result, claimedAt, time.Hour)
		require.NoError(t, err)

		assert.False(t, r.IsExpired(claimedAt.Add(59*time.Minute)))
		assert.True(t, r.IsExpired(claimedAt.Add(time.Hour)))
	})

	t.Run("should reject invalid input", func(t *testing.T) {
		testCases := []struct {
			name    string
			key     string
			result  json.RawMessage
			ttl     time.Duration
			wantErr error
		}{
			{"blank key", "   ", result, time.Hour, errs.ErrValueIsRequired},
			{"long key", strings.Repeat("k", idempotency.MaxKeyLength+1), result, time.Hour, errs.ErrValueIsOutOfRange},
			{"empty result", "k", nil, time.Hour, errs.ErrValueIsInvalid},
			{"broken result", "k", json.RawMessage(`{`), time.Hour, errs.ErrValueIsInvalid},
			{"zero ttl", "k", result, 0, errs.ErrValueIsOutOfRange},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				r, err := idempotency.NewRecord(tc.key, tc.result, claimedAt, tc.ttl)

				require.Error(t, err)
				assert.Nil(t, r)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})
}

func TestNormalizeKey(t *testing.T) {
	key, err := idempotency.NormalizeKey("")
	require.NoError(t, err)
	assert.Empty(t, key)

	key, err = idempotency.NormalizeKey(" abc ")
	require.NoError(t, err)
	assert.Equal(t, "abc", key)
}
