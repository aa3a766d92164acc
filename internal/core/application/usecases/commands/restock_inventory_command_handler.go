package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/pkg/clock"
)

// RestockInventoryCommandHandler increments available stock and records
// INVENTORY_RESTOCKED with the sku as subject. It returns the new available
// quantity.
type RestockInventoryCommandHandler struct {
	uowFactory InventoryUoWFactory
	clock      clock.Clock
}

func NewRestockInventoryCommandHandler(uowFactory InventoryUoWFactory, clk clock.Clock) RestockInventoryCommandHandler {
	return RestockInventoryCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

func (h RestockInventoryCommandHandler) Handle(ctx context.Context, cmd RestockInventoryCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	record, err := uow.InventoryRepository().Restock(ctx, cmd.SKU(), cmd.Quantity())
	if err != nil {
		return 0, err
	}

	if err = recordEvent(ctx, uow.EventStore(), h.clock.Now(), event.InventoryRestocked, cmd.SKU().String(), event.Payload{
		"sku":       cmd.SKU().String(),
		"quantity":  cmd.Quantity(),
		"available": record.Available(),
	}); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return record.Available(), nil
}
