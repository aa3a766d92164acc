package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	t.Run("should build valid query", func(t *testing.T) {
		id := kernel.NewUUID()

		q, err := queries.NewGetOrderQuery(id)

		require.NoError(t, err)
		require.NoError(t, q.Validate())
		assert.True(t, q.OrderID().IsEqual(id))
	})

	t.Run("should reject zero id", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(kernel.UUID{})
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var q queries.GetOrderQuery
		assert.ErrorIs(t, q.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestNewGetShipmentQuery(t *testing.T) {
	_, err := queries.NewGetShipmentQuery(kernel.UUID{})
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	var q queries.GetShipmentQuery
	assert.ErrorIs(t, q.Validate(), queries.ErrGetShipmentQueryIsNotConstructed)
}

func TestNewGetSubjectHistoryQuery(t *testing.T) {
	q, err := queries.NewGetSubjectHistoryQuery("  SKU-1 ")
	require.NoError(t, err)
	assert.Equal(t, "SKU-1", q.SubjectID())

	_, err = queries.NewGetSubjectHistoryQuery(" ")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
