package queries

import (
	"context"
	"encoding/json"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GetShipmentQueryHandler struct {
	db *gorm.DB
}

func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	id := query.ShipmentID()

	var header struct {
		OrderID *uuid.UUID
		Status  int
		Custody datatypes.JSON
	}
	result := db.Raw(`SELECT order_id, status, custody FROM shipments WHERE id = ?`, id.Bytes()).Scan(&header)
	if result.Error != nil {
		return GetShipmentQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetShipmentQueryResponse{}, errs.NewObjectNotFoundError("shipment", id.String())
	}

	response := GetShipmentQueryResponse{
		ID:      id,
		Status:  shipment.Status(header.Status).String(),
		Lines:   make([]ShipmentLineView, 0),
		Custody: make([]shipment.CustodyRecord, 0),
	}

	if header.OrderID != nil {
		orderID, err := kernel.UUIDFromBytes(header.OrderID[:])
		if err != nil {
			return GetShipmentQueryResponse{}, err
		}
		response.OrderID = &orderID
	}

	if len(header.Custody) > 0 {
		if err := json.Unmarshal(header.Custody, &response.Custody); err != nil {
			return GetShipmentQueryResponse{}, fmt.Errorf("decode custody log of shipment %s: %w", id, err)
		}
	}

	rows, err := db.Raw(`
		SELECT
			id,
			sku,
			requested,
			reserved
		FROM shipment_lines
		WHERE shipment_id = ?
		ORDER BY position
	`, id.Bytes()).Rows()
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			lineID uuid.UUID
			view   ShipmentLineView
		)
		if err = rows.Scan(&lineID, &view.SKU, &view.Requested, &view.Reserved); err != nil {
			return GetShipmentQueryResponse{}, err
		}
		if view.ID, err = kernel.UUIDFromBytes(lineID[:]); err != nil {
			return GetShipmentQueryResponse{}, err
		}
		view.Shortfall = max(view.Requested-view.Reserved, 0)
		response.Lines = append(response.Lines, view)
	}

	if err = rows.Err(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	return response, nil
}
