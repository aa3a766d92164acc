package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrPurgeIdempotencyKeysCommandIsNotConstructed = errors.New(
	"PurgeIdempotencyKeysCommand must be created via NewPurgeIdempotencyKeysCommand constructor",
)

// PurgeIdempotencyKeysCommand removes claims whose retention window has ended.
type PurgeIdempotencyKeysCommand struct {
	guard guard.ConstructorGuard
}

func NewPurgeIdempotencyKeysCommand() PurgeIdempotencyKeysCommand {
	return PurgeIdempotencyKeysCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c PurgeIdempotencyKeysCommand) Validate() error {
	return c.guard.Validate(ErrPurgeIdempotencyKeysCommandIsNotConstructed)
}
