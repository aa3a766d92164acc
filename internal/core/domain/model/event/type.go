package event

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Type is the enumerated tag of an event. The string form is persisted.
type Type string

const (
	OrderCreated          Type = "ORDER_CREATED"
	OrderApproved         Type = "ORDER_APPROVED"
	OrderAllocated        Type = "ORDER_ALLOCATED"
	OrderBackordered      Type = "ORDER_BACKORDERED"
	InventoryRestocked    Type = "INVENTORY_RESTOCKED"
	ShipmentCreated       Type = "SHIPMENT_CREATED"
	ShipmentReserved      Type = "SHIPMENT_RESERVED"
	ShipmentPicked        Type = "SHIPMENT_PICKED"
	ShipmentPacked        Type = "SHIPMENT_PACKED"
	ShipmentDispatched    Type = "SHIPMENT_DISPATCHED"
	ShipmentDelivered     Type = "SHIPMENT_DELIVERED"
	NFCHandshakeConfirmed Type = "NFC_HANDSHAKE_CONFIRMED"
	CustodyTransferred    Type = "CUSTODY_TRANSFERRED"
)

var knownTypes = map[Type]struct{}{
	OrderCreated:          {},
	OrderApproved:         {},
	OrderAllocated:        {},
	OrderBackordered:      {},
	InventoryRestocked:    {},
	ShipmentCreated:       {},
	ShipmentReserved:      {},
	ShipmentPicked:        {},
	ShipmentPacked:        {},
	ShipmentDispatched:    {},
	ShipmentDelivered:     {},
	NFCHandshakeConfirmed: {},
	CustodyTransferred:    {},
}

func (t Type) String() string {
	return string(t)
}

func (t Type) Validate() error {
	if _, ok := knownTypes[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("event type is invalid", fmt.Errorf("%q is not a known event type", string(t)))
	}
	return nil
}
