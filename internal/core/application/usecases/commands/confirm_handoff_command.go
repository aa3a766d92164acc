package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrConfirmHandoffCommandIsNotConstructed = errors.New(
	"ConfirmHandoffCommand must be created via NewConfirmHandoffCommand constructor",
)

// ConfirmHandoffCommand is one NFC tag scan against a shipment.
type ConfirmHandoffCommand struct {
	tagID      string
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmHandoffCommand(tagID string, shipmentID kernel.UUID) (ConfirmHandoffCommand, error) {
	tagID = strings.TrimSpace(tagID)

	var tagErr error
	if tagID == "" {
		tagErr = errs.NewValueIsRequiredError("nfc tag id")
	}

	if err := errors.Join(tagErr, shipmentID.Validate()); err != nil {
		return ConfirmHandoffCommand{}, err
	}

	return ConfirmHandoffCommand{
		tagID:      tagID,
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmHandoffCommand) Validate() error {
	return c.guard.Validate(ErrConfirmHandoffCommandIsNotConstructed)
}

func (c ConfirmHandoffCommand) TagID() string           { return c.tagID }
func (c ConfirmHandoffCommand) ShipmentID() kernel.UUID { return c.shipmentID }
