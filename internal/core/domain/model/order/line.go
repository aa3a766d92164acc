package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// DefaultUnitOfMeasure is used when a line is created without one.
const DefaultUnitOfMeasure = "EA"

var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine or RestoreLine constructor")

// Line is one sku entry of an order. It is owned by its Order and only
// mutated through it.
type Line struct {
	id        kernel.UUID
	orderID   kernel.UUID
	sku       kernel.SKU
	quantity  int
	uom       string
	unitPrice kernel.Money
	status    LineStatus

	guard guard.ConstructorGuard
}

// NewLine creates an OPEN line. An empty unit of measure defaults to DefaultUnitOfMeasure.
func NewLine(id, orderID kernel.UUID, sku kernel.SKU, quantity int, uom string, unitPrice kernel.Money) (*Line, error) {
	return RestoreLine(id, orderID, sku, quantity, uom, unitPrice, LineOpen)
}

// RestoreLine rebuilds a line from persistence in any valid status.
func RestoreLine(
	id, orderID kernel.UUID,
	sku kernel.SKU,
	quantity int,
	uom string,
	unitPrice kernel.Money,
	status LineStatus,
) (*Line, error) {
	line := &Line{
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setID(id),
		line.setOrderID(orderID),
		line.setSKU(sku),
		line.setQuantity(quantity),
		line.setUOM(uom),
		line.setStatus(status),
	); err != nil {
		return nil, err
	}

	return line, nil
}

// Validate reports ErrLineIsNotConstructed for a nil line or one built as a
// zero value instead of through NewLine or RestoreLine.
func (l *Line) Validate() error {
	if l == nil {
		return ErrLineIsNotConstructed
	}
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// ID identifies the line within its order.
func (l *Line) ID() kernel.UUID { return l.id }

// OrderID is the owning order.
func (l *Line) OrderID() kernel.UUID { return l.orderID }

func (l *Line) SKU() kernel.SKU { return l.sku }

// Quantity is the ordered quantity. After a partial allocation it is the
// granted part; the remainder lives on the backordered sibling.
func (l *Line) Quantity() int { return l.quantity }

// UnitOfMeasure is free text such as "EA" and may be empty.
func (l *Line) UnitOfMeasure() string { return l.uom }

// UnitPrice is the price of one unit in minor currency units.
func (l *Line) UnitPrice() kernel.Money { return l.unitPrice }

// Status is the allocation state of the line.
func (l *Line) Status() LineStatus { return l.status }

// Total is quantity times unit price.
func (l *Line) Total() kernel.Money {
	return l.unitPrice.Times(l.quantity)
}

// settle applies a reservation grant. It returns the BACKORDERED remainder
// line when 0 < granted < quantity, nil otherwise.
func (l *Line) settle(granted int, remainderID kernel.UUID) (*Line, error) {
	if l.status != LineOpen {
		return nil, errs.NewInvalidTransitionError("order line", "allocate", l.status.String())
	}
	if granted < 0 || granted > l.quantity {
		return nil, errs.NewValueIsOutOfRangeError("granted", granted, 0, l.quantity)
	}

	switch {
	case granted == l.quantity:
		l.status = LineAllocated
		return nil, nil
	case granted == 0:
		l.status = LineBackordered
		return nil, nil
	}

	remainder, err := RestoreLine(remainderID, l.orderID, l.sku, l.quantity-granted, l.uom, l.unitPrice, LineBackordered)
	if err != nil {
		return nil, err
	}

	l.quantity = granted
	l.status = LineAllocated
	return remainder, nil
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	l.orderID = orderID
	return nil
}

func (l *Line) setSKU(sku kernel.SKU) error {
	if err := sku.Validate(); err != nil {
		return err
	}
	l.sku = sku
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.quantity = quantity
	return nil
}

func (l *Line) setUOM(uom string) error {
	uom = strings.TrimSpace(uom)
	if uom == "" {
		uom = DefaultUnitOfMeasure
	}
	l.uom = strings.ToUpper(uom)
	return nil
}

func (l *Line) setStatus(status LineStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	l.status = status
	return nil
}
