// Package inventoryrepo is the Postgres inventory reservation service.
package inventoryrepo

import (
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
)

type InventoryDTO struct {
	SKU       string `gorm:"column:sku;type:varchar(64);primaryKey"`
	Available int    `gorm:"type:int;not null;check:available >= 0"`
}

func (InventoryDTO) TableName() string {
	return "inventory"
}

func toDomain(dto InventoryDTO) (*inventory.Record, error) {
	sku, err := kernel.NewSKU(dto.SKU)
	if err != nil {
		return nil, err
	}
	return inventory.NewRecord(sku, dto.Available)
}
