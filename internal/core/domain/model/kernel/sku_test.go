package kernel_test

import (
	"strings"
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSKU(t *testing.T) {
	t.Run("trims and accepts valid codes", func(t *testing.T) {
		sku, err := kernel.NewSKU("  WIDGET-42.b_1 ")

		require.NoError(t, err)
		require.NoError(t, sku.Validate())
		assert.Equal(t, "WIDGET-42.b_1", sku.String())
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := kernel.NewSKU("   ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects overlong code", func(t *testing.T) {
		_, err := kernel.NewSKU(strings.Repeat("A", kernel.MaxSKULength+1))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects unsupported characters", func(t *testing.T) {
		for _, code := range []string{"-LEADING", "has space", "slash/sku", "émoji"} {
			_, err := kernel.NewSKU(code)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, code)
		}
	})
}

func TestSKU_ZeroValueAndEquality(t *testing.T) {
	var zero kernel.SKU
	require.ErrorIs(t, zero.Validate(), kernel.ErrSKUIsNotConstructed)

	a := kernel.MustSKU("A-1")
	assert.True(t, a.IsEqual(kernel.MustSKU("A-1")))
	assert.False(t, a.IsEqual(kernel.MustSKU("a-1")))
	assert.Panics(t, func() { kernel.MustSKU("") })
}
