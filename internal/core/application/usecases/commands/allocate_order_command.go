package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAllocateOrderCommandIsNotConstructed = errors.New(
	"AllocateOrderCommand must be created via NewAllocateOrderCommand constructor",
)

// AllocateOrderCommand reserves inventory for the OPEN lines of an order.
// With autoApprove set, a DRAFT order is approved first in the same
// transaction.
type AllocateOrderCommand struct {
	orderID     kernel.UUID
	autoApprove bool

	guard guard.ConstructorGuard
}

func NewAllocateOrderCommand(orderID kernel.UUID, autoApprove bool) (AllocateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AllocateOrderCommand{}, err
	}

	return AllocateOrderCommand{
		orderID:     orderID,
		autoApprove: autoApprove,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AllocateOrderCommand) Validate() error {
	return c.guard.Validate(ErrAllocateOrderCommandIsNotConstructed)
}

func (c AllocateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AllocateOrderCommand) AutoApprove() bool {
	return c.autoApprove
}
