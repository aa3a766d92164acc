package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/guard"
)

var ErrAdvanceShipmentCommandIsNotConstructed = errors.New(
	"AdvanceShipmentCommand must be created via NewAdvanceShipmentCommand constructor",
)

// AdvanceShipmentCommand applies one warehouse transition: pick, pack,
// dispatch or deliver.
type AdvanceShipmentCommand struct {
	shipmentID kernel.UUID
	action     shipment.Action

	guard guard.ConstructorGuard
}

func NewAdvanceShipmentCommand(shipmentID kernel.UUID, action string) (AdvanceShipmentCommand, error) {
	parsed, actionErr := shipment.ParseAction(action)
	if err := errors.Join(shipmentID.Validate(), actionErr); err != nil {
		return AdvanceShipmentCommand{}, err
	}

	return AdvanceShipmentCommand{
		shipmentID: shipmentID,
		action:     parsed,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceShipmentCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceShipmentCommandIsNotConstructed)
}

func (c AdvanceShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }
func (c AdvanceShipmentCommand) Action() shipment.Action { return c.action }
