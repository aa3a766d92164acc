package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrReserveShipmentCommandIsNotConstructed = errors.New(
	"ReserveShipmentCommand must be created via NewReserveShipmentCommand constructor",
)

// ReserveShipmentCommand tops up the reservation of every short line.
type ReserveShipmentCommand struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewReserveShipmentCommand(shipmentID kernel.UUID) (ReserveShipmentCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return ReserveShipmentCommand{}, err
	}

	return ReserveShipmentCommand{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ReserveShipmentCommand) Validate() error {
	return c.guard.Validate(ErrReserveShipmentCommandIsNotConstructed)
}

func (c ReserveShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}
