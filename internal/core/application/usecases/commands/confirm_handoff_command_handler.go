package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/clock"
)

// HandoffActor identifies who took custody.
type HandoffActor struct {
	ID   kernel.UUID
	Name string
}

// ConfirmHandoffResult is returned to the scanner.
type ConfirmHandoffResult struct {
	NewStatus shipment.Status
	Message   string
	User      HandoffActor
}

// ConfirmHandoffCommandHandler runs the tag-based two-step custody
// transition: resolve the tag to a user, resolve the shipment, hand off,
// record the custody entry on the shipment and append CUSTODY_TRANSFERRED.
type ConfirmHandoffCommandHandler struct {
	uowFactory CustodyUoWFactory
	clock      clock.Clock
}

func NewConfirmHandoffCommandHandler(uowFactory CustodyUoWFactory, clk clock.Clock) ConfirmHandoffCommandHandler {
	return ConfirmHandoffCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

func (h ConfirmHandoffCommandHandler) Handle(ctx context.Context, cmd ConfirmHandoffCommand) (ConfirmHandoffResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConfirmHandoffResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ConfirmHandoffResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := uow.UserRepository().FindByTag(ctx, cmd.TagID())
	if err != nil {
		return ConfirmHandoffResult{}, err
	}

	shipmentRepo := uow.ShipmentRepository()
	s, err := shipmentRepo.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return ConfirmHandoffResult{}, err
	}

	record, err := s.HandOff(actor.DisplayName(), h.clock.Now())
	if err != nil {
		return ConfirmHandoffResult{}, err
	}

	if err = shipmentRepo.Update(ctx, s); err != nil {
		return ConfirmHandoffResult{}, err
	}

	if err = recordEvent(ctx, uow.EventStore(), record.At, event.CustodyTransferred, s.ID().String(), event.Payload{
		"shipmentId": s.ID().String(),
		"userId":     actor.ID().String(),
		"actor":      record.Actor,
		"action":     record.Action,
		"from":       record.From,
		"to":         record.To,
		"location":   record.Location,
	}); err != nil {
		return ConfirmHandoffResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ConfirmHandoffResult{}, err
	}

	return ConfirmHandoffResult{
		NewStatus: s.Status(),
		Message:   record.Message(),
		User:      HandoffActor{ID: actor.ID(), Name: actor.DisplayName()},
	}, nil
}
