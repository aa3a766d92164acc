package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/clock"
)

// AllocateOrderResult reports the order status after allocation and the
// grant obtained for every line that was attempted.
type AllocateOrderResult struct {
	OrderID kernel.UUID
	Status  order.Status
	Grants  []services.Grant
}

// AllocateOrderCommandHandler runs the allocation algorithm.
//
// Reservations, line splits, the status change and the events all commit in
// one transaction, so a crash mid-allocation leaves neither inventory nor the
// order half-updated. Events:
//   - ORDER_ALLOCATED when every line is allocated
//   - ORDER_BACKORDERED when the pass left backordered lines
//   - nothing when there was no OPEN line to attempt
type AllocateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	allocator  services.OrderAllocator
	clock      clock.Clock
}

func NewAllocateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	allocator services.OrderAllocator,
	clk clock.Clock,
) AllocateOrderCommandHandler {
	return AllocateOrderCommandHandler{
		uowFactory: uowFactory,
		allocator:  allocator,
		clock:      clk,
	}
}

func (h AllocateOrderCommandHandler) Handle(ctx context.Context, cmd AllocateOrderCommand) (AllocateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return AllocateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AllocateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return AllocateOrderResult{}, err
	}

	if cmd.AutoApprove() && o.Status() == order.Draft {
		if err = approve(ctx, uow, o, h.clock); err != nil {
			return AllocateOrderResult{}, err
		}
	}

	allocation, err := h.allocator.Allocate(ctx, o, uow.InventoryRepository())
	if err != nil {
		return AllocateOrderResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return AllocateOrderResult{}, err
	}

	if len(allocation.Grants) > 0 {
		if err = h.recordOutcome(ctx, uow, o, allocation); err != nil {
			return AllocateOrderResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return AllocateOrderResult{}, err
	}

	return AllocateOrderResult{
		OrderID: o.ID(),
		Status:  o.Status(),
		Grants:  allocation.Grants,
	}, nil
}

func (h AllocateOrderCommandHandler) recordOutcome(
	ctx context.Context,
	uow OrderUoW,
	o *order.Order,
	allocation services.Allocation,
) error {
	now := h.clock.Now()
	subject := o.ID().String()

	if allocation.FullyAllocated {
		return recordEvent(ctx, uow.EventStore(), now, event.OrderAllocated, subject, event.Payload{
			"orderId": subject,
			"lines":   linePayload(o.AllocatedLines()),
		})
	}

	return recordEvent(ctx, uow.EventStore(), now, event.OrderBackordered, subject, event.Payload{
		"orderId":     subject,
		"allocated":   linePayload(o.AllocatedLines()),
		"backordered": linePayload(o.BackorderedLines()),
	})
}

func linePayload(lines []*order.Line) []map[string]any {
	out := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		out = append(out, map[string]any{
			"lineId":   l.ID().String(),
			"sku":      l.SKU().String(),
			"quantity": l.Quantity(),
		})
	}
	return out
}
