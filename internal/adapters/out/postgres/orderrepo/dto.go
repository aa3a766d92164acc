// Package orderrepo persists order aggregates, lines included, with GORM.
package orderrepo

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders row. Lines live in order_lines and are loaded in
// position order.
type OrderDTO struct {
	ID     uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Status int            `gorm:"type:smallint;not null;index"`
	Lines  []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is one order_lines row. Position keeps the aggregate's line
// order, so a backorder remainder stays next to the line it came from.
type OrderLineDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Position       int       `gorm:"type:int;not null"`
	SKU            string    `gorm:"column:sku;type:varchar(64);not null;index"`
	Quantity       int       `gorm:"type:int;not null"`
	UnitOfMeasure  string    `gorm:"type:varchar(16);not null"`
	UnitPriceMinor int64     `gorm:"type:bigint;not null"`
	Status         int       `gorm:"type:smallint;not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	lines := make([]OrderLineDTO, 0, len(o.Lines()))

	for i, l := range o.Lines() {
		lines = append(lines, OrderLineDTO{
			ID:             l.ID().Bytes(),
			OrderID:        orderID,
			Position:       i,
			SKU:            l.SKU().String(),
			Quantity:       l.Quantity(),
			UnitOfMeasure:  l.UnitOfMeasure(),
			UnitPriceMinor: l.UnitPrice().Minor(),
			Status:         int(l.Status()),
		})
	}

	return OrderDTO{
		ID:     orderID,
		Status: int(o.Status()),
		Lines:  lines,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, lineErr := lineToDomain(l)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(id, order.Status(dto.Status), lines)
}

func lineToDomain(dto OrderLineDTO) (*order.Line, error) {
	id, idErr := kernel.UUIDFromBytes(dto.ID[:])
	orderID, orderErr := kernel.UUIDFromBytes(dto.OrderID[:])
	sku, skuErr := kernel.NewSKU(dto.SKU)
	price, priceErr := kernel.NewMoney(dto.UnitPriceMinor)
	if err := errors.Join(idErr, orderErr, skuErr, priceErr); err != nil {
		return nil, err
	}

	return order.RestoreLine(id, orderID, sku, dto.Quantity, dto.UnitOfMeasure, price, order.LineStatus(dto.Status))
}
