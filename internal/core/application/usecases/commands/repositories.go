// Package commands contains business operations that modify system state.
// Every command follows the same pattern: a constructor-validated command
// value, and a handler that opens one unit of work, loads the aggregates it
// needs with a row lock, applies the domain operation, appends the matching
// domain events and commits.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces narrow ports.UnitOfWork to what each handler uses.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	EventStoreFactory interface {
		EventStore() ports.EventStore
	}

	IdempotencyStoreFactory interface {
		IdempotencyStore() ports.IdempotencyStore
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// OrderUoW serves order creation, approval and allocation.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		InventoryRepoFactory
		EventStoreFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// InventoryUoW serves restocking.
	InventoryUoW interface {
		TxManager
		InventoryRepoFactory
		EventStoreFactory
	}

	InventoryUoWFactory interface {
		Create() InventoryUoW
	}

	// ShipmentUoW serves shipment creation, reservation and warehouse
	// transitions.
	ShipmentUoW interface {
		TxManager
		OrderRepoFactory
		ShipmentRepoFactory
		InventoryRepoFactory
		EventStoreFactory
	}

	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// CustodyUoW serves both custody handoff flows.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   claimed, err := uow.IdempotencyStore().Claim(ctx, record)
	//   _, err = uow.EventStore().Append(ctx, e)
	//
	//   err = uow.Commit(ctx)
	CustodyUoW interface {
		TxManager
		ShipmentRepoFactory
		IdempotencyStoreFactory
		EventStoreFactory
		UserRepoFactory
	}

	CustodyUoWFactory interface {
		Create() CustodyUoW
	}
)

type (
	// IdempotencyUoW serves the retention purge.
	IdempotencyUoW interface {
		TxManager
		IdempotencyStoreFactory
	}

	IdempotencyUoWFactory interface {
		Create() IdempotencyUoW
	}

	// UserUoW serves the custody actor directory.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}
)
