package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRestockInventoryCommandIsNotConstructed = errors.New(
	"RestockInventoryCommand must be created via NewRestockInventoryCommand constructor",
)

// RestockInventoryCommand adds received units of a sku to available stock.
type RestockInventoryCommand struct {
	sku      kernel.SKU
	quantity int

	guard guard.ConstructorGuard
}

func NewRestockInventoryCommand(sku string, quantity int) (RestockInventoryCommand, error) {
	parsed, skuErr := kernel.NewSKU(sku)

	var qtyErr error
	if quantity <= 0 {
		qtyErr = errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}

	if err := errors.Join(skuErr, qtyErr); err != nil {
		return RestockInventoryCommand{}, err
	}

	return RestockInventoryCommand{
		sku:      parsed,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RestockInventoryCommand) Validate() error {
	return c.guard.Validate(ErrRestockInventoryCommandIsNotConstructed)
}

func (c RestockInventoryCommand) SKU() kernel.SKU { return c.sku }
func (c RestockInventoryCommand) Quantity() int   { return c.quantity }
