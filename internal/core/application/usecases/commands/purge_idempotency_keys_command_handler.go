package commands

import (
	"context"

	"fulfillment/internal/pkg/clock"
)

// PurgeIdempotencyKeysCommandHandler deletes expired idempotency records and
// returns how many were removed.
type PurgeIdempotencyKeysCommandHandler struct {
	uowFactory IdempotencyUoWFactory
	clock      clock.Clock
}

func NewPurgeIdempotencyKeysCommandHandler(uowFactory IdempotencyUoWFactory, clk clock.Clock) PurgeIdempotencyKeysCommandHandler {
	return PurgeIdempotencyKeysCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

func (h PurgeIdempotencyKeysCommandHandler) Handle(ctx context.Context, cmd PurgeIdempotencyKeysCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	purged, err := uow.IdempotencyStore().PurgeExpired(ctx, h.clock.Now())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return purged, nil
}
