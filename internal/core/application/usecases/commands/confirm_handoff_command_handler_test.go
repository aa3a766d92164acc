package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/pkg/clock"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDriver(t *testing.T) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), "EMP-7", "Dana Driver")
	require.NoError(t, err)
	return u
}

func TestConfirmHandoffCommandHandler_DriverThenReceiver(t *testing.T) {
	s := newShipment(t, 1, 1)
	driver := newDriver(t)

	steps := []struct {
		status  shipment.Status
		message string
	}{
		{shipment.InTransit, "Dana Driver: " + shipment.CustodyToDriver},
		{shipment.Delivered, "Dana Driver: " + shipment.CustodyToReceiver},
	}

	for _, step := range steps {
		ctx := t.Context()
		cmd, err := commands.NewConfirmHandoffCommand("EMP-7", s.ID())
		require.NoError(t, err)

		uow := newMockUnitOfWork()
		uow.expectCommitted(ctx)
		uow.users.On("FindByTag", ctx, "EMP-7").Return(driver, nil).Once()
		uow.shipments.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once()
		uow.shipments.On("Update", ctx, s).Return(nil).Once()
		uow.events.On("Append", ctx, mock.Anything).Return(nil).Once()

		h := commands.NewConfirmHandoffCommandHandler(custodyUoWFactory{uow: uow}, clock.NewFixed(testNow))
		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, step.status, result.NewStatus)
		assert.Equal(t, step.message, result.Message)
		assert.True(t, result.User.ID.IsEqual(driver.ID()))
		assert.Equal(t, "Dana Driver", result.User.Name)

		events := uow.events.appended()
		require.Len(t, events, 1)
		assert.Equal(t, event.CustodyTransferred, events[0].Type())
		assert.Equal(t, shipment.UnknownLocation, events[0].Payload()["location"])
		uow.AssertExpectations(t)
	}

	require.Len(t, s.Custody(), 2)
	assert.Equal(t, testNow, s.Custody()[1].At)

	t.Run("third scan fails naming DELIVERED", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewConfirmHandoffCommand("EMP-7", s.ID())
		require.NoError(t, err)

		uow := newMockUnitOfWork()
		uow.expectRolledBack(ctx)
		uow.users.On("FindByTag", ctx, "EMP-7").Return(driver, nil).Once()
		uow.shipments.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once()

		h := commands.NewConfirmHandoffCommandHandler(custodyUoWFactory{uow: uow}, clock.NewFixed(testNow))
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "DELIVERED")
		uow.shipments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		assert.Len(t, s.Custody(), 2)
	})
}

func TestConfirmHandoffCommandHandler_UnknownTag(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewConfirmHandoffCommand("nobody", kernel.NewUUID())
	require.NoError(t, err)

	uow := newMockUnitOfWork()
	uow.expectRolledBack(ctx)
	uow.users.On("FindByTag", ctx, "nobody").Return(nil, errs.NewObjectNotFoundError("user", "nobody")).Once()

	h := commands.NewConfirmHandoffCommandHandler(custodyUoWFactory{uow: uow}, clock.NewFixed(testNow))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.shipments.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestNewConfirmHandoffCommand(t *testing.T) {
	_, err := commands.NewConfirmHandoffCommand("  ", kernel.NewUUID())
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	cmd, err := commands.NewConfirmHandoffCommand(" EMP-7 ", kernel.NewUUID())
	require.NoError(t, err)
	assert.Equal(t, "EMP-7", cmd.TagID())
}
