package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Envelope wraps every response body.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

type Error struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type NewOrder struct {
	Id    *openapi_types.UUID `json:"id,omitempty"`
	Lines []NewOrderLine      `json:"lines" validate:"required,min=1,dive"`
}

type NewOrderLine struct {
	Sku            string `json:"sku" validate:"required,max=64"`
	Quantity       int    `json:"quantity" validate:"gte=1"`
	UnitOfMeasure  string `json:"unitOfMeasure,omitempty" validate:"max=16"`
	UnitPriceMinor int64  `json:"unitPriceMinor" validate:"gte=0"`
}

type OrderStatus struct {
	OrderId openapi_types.UUID `json:"orderId"`
	Status  string             `json:"status"`
}

type Order struct {
	Id     openapi_types.UUID `json:"id"`
	Status string             `json:"status"`
	Lines  []OrderLine        `json:"lines"`
	Total  decimal.Decimal    `json:"total"`
}

type OrderLine struct {
	Id            openapi_types.UUID `json:"id"`
	Sku           string             `json:"sku"`
	Quantity      int                `json:"quantity"`
	UnitOfMeasure string             `json:"unitOfMeasure"`
	UnitPrice     decimal.Decimal    `json:"unitPrice"`
	LineTotal     decimal.Decimal    `json:"lineTotal"`
	Status        string             `json:"status"`
}

type Allocation struct {
	OrderId openapi_types.UUID `json:"orderId"`
	Status  string             `json:"status"`
	Grants  []Grant            `json:"grants"`
}

type Grant struct {
	LineId      openapi_types.UUID  `json:"lineId"`
	Sku         string              `json:"sku"`
	Requested   int                 `json:"requested"`
	Granted     int                 `json:"granted"`
	RemainderId *openapi_types.UUID `json:"remainderId,omitempty"`
}

type Event struct {
	Id         openapi_types.UUID `json:"id"`
	Type       string             `json:"type"`
	Sequence   int64              `json:"sequence"`
	OccurredAt time.Time          `json:"occurredAt"`
	Payload    map[string]any     `json:"payload"`
}

type Restock struct {
	Quantity int `json:"quantity" validate:"gte=1"`
}

type StockLevel struct {
	Sku       string `json:"sku"`
	Available int    `json:"available"`
}

// NewShipment takes either an order id or ad hoc lines, never both.
type NewShipment struct {
	Id      *openapi_types.UUID `json:"id,omitempty"`
	OrderId *openapi_types.UUID `json:"orderId,omitempty" validate:"required_without=Lines,excluded_with=Lines"`
	Lines   []NewShipmentLine   `json:"lines,omitempty" validate:"required_without=OrderId,dive"`
}

type NewShipmentLine struct {
	Sku      string `json:"sku" validate:"required,max=64"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

type Shipment struct {
	Id      openapi_types.UUID  `json:"id"`
	OrderId *openapi_types.UUID `json:"orderId,omitempty"`
	Status  string              `json:"status"`
	Lines   []ShipmentLine      `json:"lines"`
	Custody []CustodyEntry      `json:"custody"`
}

type ShipmentLine struct {
	Id        openapi_types.UUID `json:"id"`
	Sku       string             `json:"sku"`
	Requested int                `json:"requested"`
	Reserved  int                `json:"reserved"`
	Shortfall int                `json:"shortfall"`
}

type CustodyEntry struct {
	Action   string    `json:"action"`
	Actor    string    `json:"actor"`
	At       time.Time `json:"at"`
	Location string    `json:"location"`
	From     string    `json:"from"`
	To       string    `json:"to"`
}

type ShipmentStatus struct {
	ShipmentId openapi_types.UUID `json:"shipmentId"`
	Status     string             `json:"status"`
}

type Shortage struct {
	Sku       string `json:"sku"`
	Requested int    `json:"requested"`
	Reserved  int    `json:"reserved"`
}

type Reservation struct {
	ShipmentId openapi_types.UUID `json:"shipmentId"`
	Shortages  []Shortage         `json:"shortages"`
}

type Handshake struct {
	NfcTagId   string             `json:"nfcTagId" validate:"required"`
	ShipmentId openapi_types.UUID `json:"shipmentId" validate:"required"`
}

type HandshakeResult struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message,omitempty"`
	NewStatus string       `json:"newStatus,omitempty"`
	User      *HandoffUser `json:"user,omitempty"`
	Error     *Error       `json:"error,omitempty"`
}

type HandoffUser struct {
	Id   openapi_types.UUID `json:"id"`
	Name string             `json:"name"`
}

type NewUser struct {
	Id          *openapi_types.UUID `json:"id,omitempty"`
	EmployeeId  string              `json:"employeeId" validate:"required,max=64"`
	DisplayName string              `json:"displayName" validate:"required,max=255"`
}

type User struct {
	Id          openapi_types.UUID `json:"id"`
	EmployeeId  string             `json:"employeeId"`
	DisplayName string             `json:"displayName"`
}

// AllocateOrderParams are the query parameters of allocateOrder. A missing
// AutoApprove means true.
type AllocateOrderParams struct {
	AutoApprove *bool `form:"autoApprove,omitempty" json:"autoApprove,omitempty"`
}

// TransferCustodyParams are the header parameters of transferCustody.
type TransferCustodyParams struct {
	IdempotencyKey *string `json:"Idempotency-Key,omitempty"`
}
