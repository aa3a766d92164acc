package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	id := query.OrderID()

	var status []int
	if err := db.Raw(`SELECT status FROM orders WHERE id = ?`, id.Bytes()).Scan(&status).Error; err != nil {
		return GetOrderQueryResponse{}, err
	}
	if len(status) == 0 {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", id.String())
	}

	rows, err := db.Raw(`
		SELECT
			id,
			sku,
			quantity,
			unit_of_measure,
			unit_price_minor,
			status
		FROM order_lines
		WHERE order_id = ?
		ORDER BY position
	`, id.Bytes()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	response := GetOrderQueryResponse{
		ID:     id,
		Status: order.Status(status[0]).String(),
		Lines:  make([]OrderLineView, 0),
		Total:  decimal.Zero,
	}

	for rows.Next() {
		var (
			lineID     uuid.UUID
			view       OrderLineView
			priceMinor int64
			lineStatus int
		)
		if err = rows.Scan(&lineID, &view.SKU, &view.Quantity, &view.UnitOfMeasure, &priceMinor, &lineStatus); err != nil {
			return GetOrderQueryResponse{}, err
		}

		if view.ID, err = kernel.UUIDFromBytes(lineID[:]); err != nil {
			return GetOrderQueryResponse{}, err
		}
		price, priceErr := kernel.NewMoney(priceMinor)
		if priceErr != nil {
			return GetOrderQueryResponse{}, priceErr
		}

		view.UnitPrice = price.Decimal()
		view.LineTotal = price.Times(view.Quantity).Decimal()
		view.Status = order.LineStatus(lineStatus).String()

		response.Total = response.Total.Add(view.LineTotal)
		response.Lines = append(response.Lines, view)
	}

	if err = rows.Err(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}
