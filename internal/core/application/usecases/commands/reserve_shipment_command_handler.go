package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/pkg/clock"
	"fulfillment/internal/pkg/errs"
)

// ReserveShipmentCommandHandler asks inventory for the shortfall of each
// short line and records SHIPMENT_RESERVED when anything was granted.
// It returns the shortages that remain.
type ReserveShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	clock      clock.Clock
}

func NewReserveShipmentCommandHandler(uowFactory ShipmentUoWFactory, clk clock.Clock) ReserveShipmentCommandHandler {
	return ReserveShipmentCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

func (h ReserveShipmentCommandHandler) Handle(ctx context.Context, cmd ReserveShipmentCommand) ([]errs.Shortage, error) {
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

	shipmentRepo := uow.ShipmentRepository()

	s, err := shipmentRepo.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	if !s.Status().IsBeforeDispatch() {
		return nil, errs.NewInvalidTransitionError("shipment", "reserve", s.Status().String())
	}

	inventory := uow.InventoryRepository()
	grants := make([]map[string]any, 0)
	for _, line := range s.ShortLines() {
		granted, reserveErr := inventory.Reserve(ctx, line.SKU(), line.Shortfall())
		if reserveErr != nil {
			return nil, reserveErr
		}
		if granted == 0 {
			continue
		}
		if err = s.Reserve(line.ID(), granted); err != nil {
			return nil, err
		}
		grants = append(grants, map[string]any{
			"lineId":  line.ID().String(),
			"sku":     line.SKU().String(),
			"granted": granted,
		})
	}

	if len(grants) == 0 {
		return s.Shortages(), nil
	}

	if err = shipmentRepo.Update(ctx, s); err != nil {
		return nil, err
	}

	if err = recordEvent(ctx, uow.EventStore(), h.clock.Now(), event.ShipmentReserved, s.ID().String(), event.Payload{
		"shipmentId": s.ID().String(),
		"grants":     grants,
	}); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s.Shortages(), nil
}
