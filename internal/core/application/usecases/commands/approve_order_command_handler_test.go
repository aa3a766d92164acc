package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/clock"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApproveOrderCommandHandler_Handle(t *testing.T) {
	t.Run("draft is approved", func(t *testing.T) {
		ctx := t.Context()
		o := draftOrder(t, 1)
		cmd, err := commands.NewApproveOrderCommand(o.ID())
		require.NoError(t, err)

		uow := newMockUnitOfWork()
		uow.expectCommitted(ctx)
		uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		uow.orders.On("Update", ctx, o).Return(nil).Once()
		uow.events.On("Append", ctx, mock.Anything).Return(nil).Once()

		h := commands.NewApproveOrderCommandHandler(orderUoWFactory{uow: uow}, clock.NewFixed(testNow))
		status, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Approved, status)
		events := uow.events.appended()
		require.Len(t, events, 1)
		assert.Equal(t, event.OrderApproved, events[0].Type())
		uow.AssertExpectations(t)
		uow.orders.AssertExpectations(t)
	})

	t.Run("second approval fails and writes nothing", func(t *testing.T) {
		ctx := t.Context()
		o := approvedOrder(t, 1)
		cmd, err := commands.NewApproveOrderCommand(o.ID())
		require.NoError(t, err)

		uow := newMockUnitOfWork()
		uow.expectRolledBack(ctx)
		uow.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

		h := commands.NewApproveOrderCommandHandler(orderUoWFactory{uow: uow}, clock.NewFixed(testNow))
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "APPROVED")
		uow.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.events.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		uow.AssertExpectations(t)
	})

	t.Run("zero id is rejected by the constructor", func(t *testing.T) {
		_, err := commands.NewApproveOrderCommand(kernel.UUID{})
		assert.Error(t, err)
	})
}
