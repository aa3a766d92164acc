package services

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// Reserver grants up to requested units of sku and returns the grant.
// Implementations must make the read-decrement-write atomic per sku.
type Reserver interface {
	Reserve(ctx context.Context, sku kernel.SKU, requested int) (granted int, err error)
}

// Grant is the outcome of one reservation attempt.
type Grant struct {
	LineID    kernel.UUID
	SKU       kernel.SKU
	Requested int
	Granted   int
	// RemainderID is the BACKORDERED line created by a partial grant.
	RemainderID *kernel.UUID
}

// Allocation summarises an allocation pass.
type Allocation struct {
	Grants []Grant
	// FullyAllocated is true when the order moved to ALLOCATED.
	FullyAllocated bool
}

// OrderAllocator runs the allocation algorithm on an approved order.
//
// For every OPEN line, in order, it asks the Reserver for the line quantity:
//   - a full grant allocates the line
//   - a partial grant allocates the granted quantity and splits the remainder
//     into a new BACKORDERED line
//   - a zero grant backorders the line
//
// Afterwards the order becomes ALLOCATED only if no line is BACKORDERED.
//
// The allocator is stateless. Atomicity across the reservations and the order
// update is the caller's job: run Allocate inside one unit of work.
type OrderAllocator struct {
	newID func() kernel.UUID
}

func NewOrderAllocator() OrderAllocator {
	return OrderAllocator{newID: kernel.NewUUID}
}

// Allocate mutates o and returns what happened. On error the order may be
// partially allocated in memory and must be discarded with the transaction.
func (a OrderAllocator) Allocate(ctx context.Context, o *order.Order, reserver Reserver) (Allocation, error) {
	if err := o.Validate(); err != nil {
		return Allocation{}, err
	}
	if err := o.Status().ValidateAllocate(); err != nil {
		return Allocation{}, err
	}

	newID := a.newID
	if newID == nil {
		newID = kernel.NewUUID
	}

	open := o.OpenLines()
	grants := make([]Grant, 0, len(open))

	for _, line := range open {
		requested := line.Quantity()

		granted, err := reserver.Reserve(ctx, line.SKU(), requested)
		if err != nil {
			return Allocation{}, fmt.Errorf("reserve %s: %w", line.SKU(), err)
		}
		if granted < 0 || granted > requested {
			return Allocation{}, fmt.Errorf("reserve %s: granted %d of %d", line.SKU(), granted, requested)
		}

		remainder, err := o.AllocateLine(line.ID(), granted, newID())
		if err != nil {
			return Allocation{}, err
		}

		grant := Grant{
			LineID:    line.ID(),
			SKU:       line.SKU(),
			Requested: requested,
			Granted:   granted,
		}
		if remainder != nil {
			id := remainder.ID()
			grant.RemainderID = &id
		}
		grants = append(grants, grant)
	}

	full, err := o.CompleteAllocation()
	if err != nil {
		return Allocation{}, err
	}

	return Allocation{Grants: grants, FullyAllocated: full}, nil
}
