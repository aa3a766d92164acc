package ports

import (
	"context"

	"fulfillment/internal/core/domain/services"
)

// BillingTrigger notifies billing that a shipment changed hands. Callers
// treat it as fire-and-forget: its error is logged, never retried and never
// fails the custody transfer.
type BillingTrigger interface {
	CustodyTransferred(ctx context.Context, manifest services.Manifest) error
}
