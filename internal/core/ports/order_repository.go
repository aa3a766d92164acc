// Package ports defines the contracts between the fulfillment core and its
// infrastructure: repositories, the event and idempotency stores, the unit of
// work that binds them to one transaction, and outbound collaborators.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// lines included.
type OrderRepository interface {
	// Add persists a new order with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and line changes of an existing order. Lines
	// created by a split are inserted; existing lines are updated in place.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its lines in position order.
	// Returns *errs.ObjectNotFoundError if absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with the order row locked until the transaction
	// ends. Transitions must load through it so concurrent commands on one
	// order are serialized.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
