package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/clock"
	"fulfillment/internal/pkg/errs"
)

// CreateShipmentCommandHandler creates a shipment in CREATED and records
// SHIPMENT_CREATED.
//
// From an order: one line per ALLOCATED order line with requested = reserved
// = line quantity, since allocation already holds the stock. The order must
// have at least one allocated line and no earlier shipment.
//
// Ad hoc: each line reserves inventory now; reserved is whatever was granted.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	clock      clock.Clock
}

func NewCreateShipmentCommandHandler(uowFactory ShipmentUoWFactory, clk clock.Clock) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var (
		lines []*shipment.Line
		err   error
	)
	if cmd.OrderID() != nil {
		lines, err = h.linesFromOrder(ctx, uow, *cmd.OrderID())
	} else {
		lines, err = h.reserveLines(ctx, uow, cmd.lines)
	}
	if err != nil {
		return nil, err
	}

	s, err := shipment.NewShipment(cmd.ShipmentID(), cmd.OrderID(), lines)
	if err != nil {
		return nil, err
	}

	if err = uow.ShipmentRepository().Add(ctx, s); err != nil {
		return nil, err
	}

	payload := event.Payload{
		"shipmentId": s.ID().String(),
		"lines":      shipmentLinePayload(s.Lines()),
	}
	if s.OrderID() != nil {
		payload["orderId"] = s.OrderID().String()
	}
	if err = recordEvent(ctx, uow.EventStore(), h.clock.Now(), event.ShipmentCreated, s.ID().String(), payload); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (h CreateShipmentCommandHandler) linesFromOrder(ctx context.Context, uow ShipmentUoW, orderID kernel.UUID) ([]*shipment.Line, error) {
	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	exists, err := uow.ShipmentRepository().ExistsForOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewValueIsInvalidError("order " + orderID.String() + " already has a shipment")
	}

	allocated := o.AllocatedLines()
	if len(allocated) == 0 {
		return nil, errs.NewValueIsRequiredError("allocated order lines")
	}

	lines := make([]*shipment.Line, 0, len(allocated))
	for _, l := range allocated {
		line, lineErr := shipment.NewLine(kernel.NewUUID(), l.SKU(), l.Quantity(), l.Quantity())
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (h CreateShipmentCommandHandler) reserveLines(ctx context.Context, uow ShipmentUoW, specs []shipmentLineSpec) ([]*shipment.Line, error) {
	inventory := uow.InventoryRepository()

	lines := make([]*shipment.Line, 0, len(specs))
	for _, spec := range specs {
		granted, err := inventory.Reserve(ctx, spec.sku, spec.quantity)
		if err != nil {
			return nil, err
		}
		line, err := shipment.NewLine(kernel.NewUUID(), spec.sku, spec.quantity, granted)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func shipmentLinePayload(lines []*shipment.Line) []map[string]any {
	out := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		out = append(out, map[string]any{
			"lineId":    l.ID().String(),
			"sku":       l.SKU().String(),
			"requested": l.Requested(),
			"reserved":  l.Reserved(),
		})
	}
	return out
}
