package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/clock"
)

var actionEvents = map[shipment.Action]event.Type{
	shipment.ActionPick:     event.ShipmentPicked,
	shipment.ActionPack:     event.ShipmentPacked,
	shipment.ActionDispatch: event.ShipmentDispatched,
	shipment.ActionDeliver:  event.ShipmentDelivered,
}

// AdvanceShipmentCommandHandler applies a warehouse transition under the
// shipment row lock and records its SHIPMENT_* event.
//
// A rejected transition (InvalidTransition, or InsufficientReserved on
// dispatch) writes nothing, so repeating the call fails the same way until
// the cause is fixed.
type AdvanceShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	clock      clock.Clock
}

func NewAdvanceShipmentCommandHandler(uowFactory ShipmentUoWFactory, clk clock.Clock) AdvanceShipmentCommandHandler {
	return AdvanceShipmentCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

func (h AdvanceShipmentCommandHandler) Handle(ctx context.Context, cmd AdvanceShipmentCommand) (shipment.Status, error) {
	if err := cmd.Validate(); err != nil {
		return shipment.Unknown, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return shipment.Unknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	s, err := shipmentRepo.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return shipment.Unknown, err
	}

	from := s.Status()
	if err = s.Advance(cmd.Action()); err != nil {
		return from, err
	}

	if err = shipmentRepo.Update(ctx, s); err != nil {
		return shipment.Unknown, err
	}

	if err = recordEvent(ctx, uow.EventStore(), h.clock.Now(), actionEvents[cmd.Action()], s.ID().String(), event.Payload{
		"shipmentId": s.ID().String(),
		"from":       from.String(),
		"to":         s.Status().String(),
	}); err != nil {
		return shipment.Unknown, err
	}

	if err = uow.Commit(ctx); err != nil {
		return shipment.Unknown, err
	}

	return s.Status(), nil
}
