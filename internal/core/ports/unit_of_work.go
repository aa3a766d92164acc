package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one storage transaction. Every repository it hands out is
// bound to the transaction started by Begin, so reservations, aggregate
// updates, events and idempotency claims commit or roll back together.
type UnitOfWork interface {
	// Begin starts the transaction.
	Begin(ctx context.Context) error

	// Commit commits the transaction. Returns an error without an active one.
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction. Returns an error without an active
	// one, so it is safe to defer after a successful Commit.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ShipmentRepository() ShipmentRepository
	InventoryRepository() InventoryRepository
	EventStore() EventStore
	IdempotencyStore() IdempotencyStore
	UserRepository() UserRepository
}
