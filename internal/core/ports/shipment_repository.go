package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
type ShipmentRepository interface {
	Add(ctx context.Context, aggregate *shipment.Shipment) error
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get returns *errs.ObjectNotFoundError if absent.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetForUpdate locks the shipment row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// ExistsForOrder reports whether a shipment was already built from the order.
	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)
}
