package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/clock"
)

// ApproveOrderCommandHandler approves a DRAFT order and records ORDER_APPROVED.
// Any other status fails with an InvalidTransition error and nothing is written.
type ApproveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
}

func NewApproveOrderCommandHandler(uowFactory OrderUoWFactory, clk clock.Clock) ApproveOrderCommandHandler {
	return ApproveOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

func (h ApproveOrderCommandHandler) Handle(ctx context.Context, cmd ApproveOrderCommand) (order.Status, error) {
	if err := cmd.Validate(); err != nil {
		return order.Unknown, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Unknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return order.Unknown, err
	}

	if err = approve(ctx, uow, o, h.clock); err != nil {
		return order.Unknown, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return order.Unknown, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Unknown, err
	}

	return o.Status(), nil
}

// approve applies the approval and records its event. Shared with the
// allocate flow, where approval is implicit.
func approve(ctx context.Context, uow OrderUoW, o *order.Order, clk clock.Clock) error {
	if err := o.Approve(); err != nil {
		return err
	}

	return recordEvent(ctx, uow.EventStore(), clk.Now(), event.OrderApproved, o.ID().String(), event.Payload{
		"orderId": o.ID().String(),
	})
}
