package shipment

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine or RestoreLine constructor")

// Line is one sku of a shipment. Requested is what must leave the dock;
// reserved is how much inventory is held for it. Reserved never exceeds
// requested.
type Line struct {
	id        kernel.UUID
	sku       kernel.SKU
	requested int
	reserved  int

	guard guard.ConstructorGuard
}

// NewLine creates a line with the given reservation already applied, e.g.
// requested == reserved for lines built from allocated order lines.
func NewLine(id kernel.UUID, sku kernel.SKU, requested, reserved int) (*Line, error) {
	line := &Line{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setID(id),
		line.setSKU(sku),
		line.setQuantities(requested, reserved),
	); err != nil {
		return nil, err
	}

	return line, nil
}

// RestoreLine rebuilds a line from persistence.
func RestoreLine(id kernel.UUID, sku kernel.SKU, requested, reserved int) (*Line, error) {
	return NewLine(id, sku, requested, reserved)
}

func (l *Line) Validate() error {
	if l == nil {
		return ErrLineIsNotConstructed
	}
	return l.guard.Validate(ErrLineIsNotConstructed)
}

func (l *Line) ID() kernel.UUID { return l.id }
func (l *Line) SKU() kernel.SKU { return l.sku }
func (l *Line) Requested() int  { return l.requested }
func (l *Line) Reserved() int   { return l.reserved }
func (l *Line) Shortfall() int  { return l.requested - l.reserved }
func (l *Line) IsCovered() bool { return l.reserved >= l.requested }

func (l *Line) addReserved(granted int) error {
	if granted < 0 || granted > l.Shortfall() {
		return errs.NewValueIsOutOfRangeError("granted", granted, 0, l.Shortfall())
	}
	l.reserved += granted
	return nil
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setSKU(sku kernel.SKU) error {
	if err := sku.Validate(); err != nil {
		return err
	}
	l.sku = sku
	return nil
}

func (l *Line) setQuantities(requested, reserved int) error {
	if requested <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("requested is invalid", fmt.Errorf("%d is not greater than 0", requested))
	}
	if reserved < 0 || reserved > requested {
		return errs.NewValueIsOutOfRangeError("reserved", reserved, 0, requested)
	}
	l.requested = requested
	l.reserved = reserved
	return nil
}
