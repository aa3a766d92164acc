// Package shipmentrepo persists shipment aggregates with GORM. Lines are rows
// of shipment_lines; the custody log is a JSON column on the shipment row.
package shipmentrepo

import (
	"encoding/json"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ShipmentDTO struct {
	ID      uuid.UUID         `gorm:"type:uuid;primaryKey"`
	OrderID *uuid.UUID        `gorm:"type:uuid;index"`
	Status  int               `gorm:"type:smallint;not null;index"`
	Custody datatypes.JSON    `gorm:"type:jsonb;not null"`
	Lines   []ShipmentLineDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

type ShipmentLineDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position   int       `gorm:"type:int;not null"`
	SKU        string    `gorm:"column:sku;type:varchar(64);not null"`
	Requested  int       `gorm:"type:int;not null"`
	Reserved   int       `gorm:"type:int;not null"`
}

func (ShipmentLineDTO) TableName() string {
	return "shipment_lines"
}

func fromDomain(s *shipment.Shipment) (ShipmentDTO, error) {
	shipmentID := s.ID().Bytes()

	var orderID *uuid.UUID
	if id := s.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	custody := s.Custody()
	if custody == nil {
		custody = []shipment.CustodyRecord{}
	}
	rawCustody, err := json.Marshal(custody)
	if err != nil {
		return ShipmentDTO{}, err
	}

	lines := make([]ShipmentLineDTO, 0, len(s.Lines()))
	for i, l := range s.Lines() {
		lines = append(lines, ShipmentLineDTO{
			ID:         l.ID().Bytes(),
			ShipmentID: shipmentID,
			Position:   i,
			SKU:        l.SKU().String(),
			Requested:  l.Requested(),
			Reserved:   l.Reserved(),
		})
	}

	return ShipmentDTO{
		ID:      shipmentID,
		OrderID: orderID,
		Status:  int(s.Status()),
		Custody: datatypes.JSON(rawCustody),
		Lines:   lines,
	}, nil
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	var custody []shipment.CustodyRecord
	if len(dto.Custody) > 0 {
		if err = json.Unmarshal(dto.Custody, &custody); err != nil {
			return nil, err
		}
	}

	lines := make([]*shipment.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		lineID, idErr := kernel.UUIDFromBytes(l.ID[:])
		sku, skuErr := kernel.NewSKU(l.SKU)
		if joined := errors.Join(idErr, skuErr); joined != nil {
			return nil, joined
		}

		line, lineErr := shipment.RestoreLine(lineID, sku, l.Requested, l.Reserved)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return shipment.RestoreShipment(id, orderID, shipment.Status(dto.Status), lines, custody)
}
