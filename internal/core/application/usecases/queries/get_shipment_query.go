package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New("GetShipmentQuery must be created via NewGetShipmentQuery constructor")

// GetShipmentQuery reads one shipment with its lines and custody log.
type GetShipmentQuery struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetShipmentQuery(shipmentID kernel.UUID) (GetShipmentQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}

	return GetShipmentQuery{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

func (q GetShipmentQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

type GetShipmentQueryResponse struct {
	ID      kernel.UUID
	OrderID *kernel.UUID
	Status  string
	Lines   []ShipmentLineView
	Custody []shipment.CustodyRecord
}

type ShipmentLineView struct {
	ID        kernel.UUID
	SKU       string
	Requested int
	Reserved  int
	Shortfall int
}
