package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New("GetOrderQuery must be created via NewGetOrderQuery constructor")

// GetOrderQuery reads one order with its lines in display order.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the read model of an order. Prices are decimals in
// the major currency unit.
type GetOrderQueryResponse struct {
	ID     kernel.UUID
	Status string
	Lines  []OrderLineView
	Total  decimal.Decimal
}

type OrderLineView struct {
	ID            kernel.UUID
	SKU           string
	Quantity      int
	UnitOfMeasure string
	UnitPrice     decimal.Decimal
	LineTotal     decimal.Decimal
	Status        string
}
