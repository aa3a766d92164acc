package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrApproveOrderCommandIsNotConstructed = errors.New(
	"ApproveOrderCommand must be created via NewApproveOrderCommand constructor",
)

// ApproveOrderCommand moves a DRAFT order to APPROVED.
type ApproveOrderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewApproveOrderCommand(orderID kernel.UUID) (ApproveOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ApproveOrderCommand{}, err
	}

	return ApproveOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ApproveOrderCommand) Validate() error {
	return c.guard.Validate(ErrApproveOrderCommandIsNotConstructed)
}

func (c ApproveOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
