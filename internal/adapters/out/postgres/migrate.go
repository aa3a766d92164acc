package postgres

import (
	"fulfillment/internal/adapters/out/postgres/eventrepo"
	"fulfillment/internal/adapters/out/postgres/idempotencyrepo"
	"fulfillment/internal/adapters/out/postgres/inventoryrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/shipmentrepo"
	"fulfillment/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Models lists every table the service owns.
func Models() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&inventoryrepo.InventoryDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.ShipmentLineDTO{},
		&eventrepo.EventDTO{},
		&idempotencyrepo.IdempotencyKeyDTO{},
		&userrepo.UserDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
