package inventory_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Reserve(t *testing.T) {
	testCases := []struct {
		name          string
		available     int
		requested     int
		wantGranted   int
		wantAvailable int
	}{
		{"full grant", 10, 4, 4, 6},
		{"exact grant", 5, 5, 5, 0},
		{"partial grant", 6, 10, 6, 0},
		{"nothing available", 0, 3, 0, 0},
		{"zero requested", 3, 0, 0, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := inventory.NewRecord(kernel.MustSKU("SKU-1"), tc.available)
			require.NoError(t, err)

			granted, err := r.Reserve(tc.requested)

			require.NoError(t, err)
			assert.Equal(t, tc.wantGranted, granted)
			assert.Equal(t, tc.wantAvailable, r.Available())
		})
	}

	t.Run("negative request is rejected", func(t *testing.T) {
		r, err := inventory.NewRecord(kernel.MustSKU("SKU-1"), 3)
		require.NoError(t, err)

		_, err = r.Reserve(-1)

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, 3, r.Available())
	})
}

func TestRecord_Restock(t *testing.T) {
	r, err := inventory.NewRecord(kernel.MustSKU("SKU-1"), 0)
	require.NoError(t, err)

	require.NoError(t, r.Restock(7))
	assert.Equal(t, 7, r.Available())

	assert.ErrorIs(t, r.Restock(0), errs.ErrValueIsInvalid)
	assert.Equal(t, 7, r.Available())
}

func TestNewRecord(t *testing.T) {
	_, err := inventory.NewRecord(kernel.MustSKU("SKU-1"), -1)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = inventory.NewRecord(kernel.SKU{}, 1)
	assert.Error(t, err)
}
