package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLineInput is one requested line as received from the caller.
type OrderLineInput struct {
	SKU            string
	Quantity       int
	UnitOfMeasure  string
	UnitPriceMinor int64
}

type orderLineSpec struct {
	sku       kernel.SKU
	quantity  int
	uom       string
	unitPrice kernel.Money
}

// CreateOrderCommand registers a new DRAFT order with its lines.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), []OrderLineInput{
//	    {SKU: "SKU-1", Quantity: 10, UnitOfMeasure: "EA", UnitPriceMinor: 1999},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type CreateOrderCommand struct {
	orderID kernel.UUID
	lines   []orderLineSpec

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates every line up front so a bad request never
// opens a transaction.
func NewCreateOrderCommand(orderID kernel.UUID, lines []OrderLineInput) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LineCount is the number of requested lines.
func (c CreateOrderCommand) LineCount() int {
	return len(c.lines)
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLineInput) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("order lines")
	}

	specs := make([]orderLineSpec, 0, len(lines))
	var lineErrs []error
	for i, in := range lines {
		sku, err := kernel.NewSKU(in.SKU)
		if err != nil {
			lineErrs = append(lineErrs, fmt.Errorf("line %d: %w", i, err))
			continue
		}
		if in.Quantity <= 0 {
			lineErrs = append(lineErrs, fmt.Errorf("line %d: %w", i,
				errs.NewValueIsOutOfRangeError("quantity", in.Quantity, 1, "unbounded")))
			continue
		}
		price, err := kernel.NewMoney(in.UnitPriceMinor)
		if err != nil {
			lineErrs = append(lineErrs, fmt.Errorf("line %d: %w", i, err))
			continue
		}
		specs = append(specs, orderLineSpec{sku: sku, quantity: in.Quantity, uom: in.UnitOfMeasure, unitPrice: price})
	}
	if len(lineErrs) > 0 {
		return errors.Join(lineErrs...)
	}

	c.lines = specs
	return nil
}
