package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/idempotency"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrTransferCustodyCommandIsNotConstructed = errors.New(
	"TransferCustodyCommand must be created via NewTransferCustodyCommand constructor",
)

// TransferCustodyCommand confirms the manifest-based NFC handshake of a
// shipment. The idempotency key is optional; an empty key disables replay
// detection.
type TransferCustodyCommand struct {
	shipmentID     kernel.UUID
	idempotencyKey string

	guard guard.ConstructorGuard
}

func NewTransferCustodyCommand(shipmentID kernel.UUID, idempotencyKey string) (TransferCustodyCommand, error) {
	key, keyErr := idempotency.NormalizeKey(idempotencyKey)
	if err := errors.Join(shipmentID.Validate(), keyErr); err != nil {
		return TransferCustodyCommand{}, err
	}

	return TransferCustodyCommand{
		shipmentID:     shipmentID,
		idempotencyKey: key,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c TransferCustodyCommand) Validate() error {
	return c.guard.Validate(ErrTransferCustodyCommandIsNotConstructed)
}

func (c TransferCustodyCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c TransferCustodyCommand) IdempotencyKey() string {
	return c.idempotencyKey
}
