package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentFromOrderCommand or NewCreateShipmentCommand constructor",
)

// ShipmentLineInput is one ad hoc shipment line as received from the caller.
type ShipmentLineInput struct {
	SKU      string
	Quantity int
}

type shipmentLineSpec struct {
	sku      kernel.SKU
	quantity int
}

// CreateShipmentCommand builds a shipment either from the allocated lines of
// an order or from ad hoc lines that reserve inventory on creation.
type CreateShipmentCommand struct {
	shipmentID kernel.UUID
	orderID    *kernel.UUID
	lines      []shipmentLineSpec

	guard guard.ConstructorGuard
}

// NewCreateShipmentFromOrderCommand ships every ALLOCATED line of the order.
func NewCreateShipmentFromOrderCommand(shipmentID, orderID kernel.UUID) (CreateShipmentCommand, error) {
	if err := errors.Join(shipmentID.Validate(), orderID.Validate()); err != nil {
		return CreateShipmentCommand{}, err
	}

	return CreateShipmentCommand{
		shipmentID: shipmentID,
		orderID:    &orderID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// NewCreateShipmentCommand ships ad hoc lines. Each line reserves what it can;
// a short line blocks dispatch until topped up.
func NewCreateShipmentCommand(shipmentID kernel.UUID, lines []ShipmentLineInput) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	var linesErr error
	if len(lines) == 0 {
		linesErr = errs.NewValueIsRequiredError("shipment lines")
	}
	for i, in := range lines {
		sku, err := kernel.NewSKU(in.SKU)
		if err != nil {
			linesErr = errors.Join(linesErr, fmt.Errorf("line %d: %w", i, err))
			continue
		}
		if in.Quantity <= 0 {
			linesErr = errors.Join(linesErr, fmt.Errorf("line %d: %w", i,
				errs.NewValueIsOutOfRangeError("quantity", in.Quantity, 1, "unbounded")))
			continue
		}
		cmd.lines = append(cmd.lines, shipmentLineSpec{sku: sku, quantity: in.Quantity})
	}

	if err := errors.Join(shipmentID.Validate(), linesErr); err != nil {
		return CreateShipmentCommand{}, err
	}

	cmd.shipmentID = shipmentID
	return cmd, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// OrderID is nil for ad hoc shipments.
func (c CreateShipmentCommand) OrderID() *kernel.UUID {
	return c.orderID
}
