package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/clock"
)

// CreateOrderCommandHandler persists a new DRAFT order and records ORDER_CREATED.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clk clock.Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID())
	if err != nil {
		return err
	}
	for _, l := range cmd.lines {
		if _, err = o.AddLine(kernel.NewUUID(), l.sku, l.quantity, l.uom, l.unitPrice); err != nil {
			return err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	if err = recordEvent(ctx, uow.EventStore(), h.clock.Now(), event.OrderCreated, o.ID().String(), event.Payload{
		"orderId":  o.ID().String(),
		"lines":    len(o.Lines()),
		"quantity": o.TotalQuantity(),
		"total":    o.Total().String(),
	}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
