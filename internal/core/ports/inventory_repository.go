package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
)

// InventoryRepository is the inventory reservation service.
type InventoryRepository interface {
	// Reserve atomically grants min(available, requested) and decrements
	// available by the grant. Two concurrent calls for one sku never observe
	// the same available value. An unknown sku grants 0. Shortage is not an
	// error.
	Reserve(ctx context.Context, sku kernel.SKU, requested int) (int, error)

	// Restock adds qty units, creating the record if needed, and returns the
	// record after the change.
	Restock(ctx context.Context, sku kernel.SKU, qty int) (*inventory.Record, error)

	// Get returns *errs.ObjectNotFoundError for an unknown sku.
	Get(ctx context.Context, sku kernel.SKU) (*inventory.Record, error)
}
