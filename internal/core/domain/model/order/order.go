package order

import (
	"errors"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root of a customer order. It owns its lines and is
// the only way to change them.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Lines keep their insertion order; a backorder remainder is placed right
//     after the line it was split from
//   - Status is ALLOCATED only if every line is ALLOCATED
type Order struct {
	id     kernel.UUID
	status Status
	lines  []*Line

	guard guard.ConstructorGuard
}

// NewOrder creates an empty DRAFT order. Lines are added with AddLine.
func NewOrder(id kernel.UUID) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:     id,
		status: Draft,
		lines:  make([]*Line, 0),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder rebuilds an order from persistence and re-checks the aggregate
// invariants against the stored lines.
func RestoreOrder(id kernel.UUID, status Status, lines []*Line) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setStatus(status),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	if o.status == Allocated && !o.allLinesAllocated() {
		return nil, errs.NewValueIsInvalidError("ALLOCATED order with unallocated lines")
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Status() Status {
	return o.status
}

// Lines returns the lines in order. The slice is a copy; the lines are not.
func (o *Order) Lines() []*Line {
	return slices.Clone(o.lines)
}

// OpenLines returns the lines still waiting for a reservation attempt.
func (o *Order) OpenLines() []*Line {
	open := make([]*Line, 0, len(o.lines))
	for _, l := range o.lines {
		if l.status == LineOpen {
			open = append(open, l)
		}
	}
	return open
}

// AllocatedLines returns the lines whose quantity is fully reserved.
func (o *Order) AllocatedLines() []*Line {
	allocated := make([]*Line, 0, len(o.lines))
	for _, l := range o.lines {
		if l.status == LineAllocated {
			allocated = append(allocated, l)
		}
	}
	return allocated
}

// BackorderedLines returns the lines awaiting replenishment.
func (o *Order) BackorderedLines() []*Line {
	backordered := make([]*Line, 0)
	for _, l := range o.lines {
		if l.status == LineBackordered {
			backordered = append(backordered, l)
		}
	}
	return backordered
}

// HasBackorders reports whether any line is BACKORDERED.
func (o *Order) HasBackorders() bool {
	return len(o.BackorderedLines()) > 0
}

// TotalQuantity sums every line, whatever its status.
func (o *Order) TotalQuantity() int {
	total := 0
	for _, l := range o.lines {
		total += l.quantity
	}
	return total
}

// Total sums quantity times unit price over every line.
func (o *Order) Total() kernel.Money {
	var total kernel.Money
	for _, l := range o.lines {
		total = total.Add(l.Total())
	}
	return total
}

// AddLine appends an OPEN line. Only drafts accept new lines.
func (o *Order) AddLine(id kernel.UUID, sku kernel.SKU, quantity int, uom string, unitPrice kernel.Money) (*Line, error) {
	if o.status != Draft {
		return nil, errs.NewInvalidTransitionError("order", "add line to", o.status.String())
	}

	line, err := NewLine(id, o.id, sku, quantity, uom, unitPrice)
	if err != nil {
		return nil, err
	}

	o.lines = append(o.lines, line)
	return line, nil
}

// Approve moves a DRAFT order to APPROVED. An order without lines cannot be approved.
func (o *Order) Approve() error {
	newStatus, err := o.status.Approve()
	if err != nil {
		return err
	}
	if len(o.lines) == 0 {
		return errs.NewValueIsRequiredError("order lines")
	}

	o.status = newStatus
	return nil
}

// AllocateLine records the reservation grant for one OPEN line.
//
//   - granted == quantity: the line becomes ALLOCATED
//   - 0 < granted < quantity: the line becomes ALLOCATED with quantity granted
//     and a BACKORDERED remainder line (identified by remainderID) is inserted
//     right after it and returned
//   - granted == 0: the line becomes BACKORDERED
func (o *Order) AllocateLine(lineID kernel.UUID, granted int, remainderID kernel.UUID) (*Line, error) {
	if err := o.status.ValidateAllocate(); err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(o.lines, func(l *Line) bool { return l.id.IsEqual(lineID) })
	if idx < 0 {
		return nil, errs.NewObjectNotFoundError("order line", lineID.String())
	}

	remainder, err := o.lines[idx].settle(granted, remainderID)
	if err != nil {
		return nil, err
	}

	if remainder != nil {
		o.lines = slices.Insert(o.lines, idx+1, remainder)
	}

	return remainder, nil
}

// CompleteAllocation closes an allocation pass. It moves the order to
// ALLOCATED and returns true when every line is ALLOCATED; otherwise the order
// stays APPROVED and false is returned.
func (o *Order) CompleteAllocation() (bool, error) {
	if err := o.status.ValidateAllocate(); err != nil {
		return false, err
	}

	if !o.allLinesAllocated() {
		return false, nil
	}

	o.status = Allocated
	return true, nil
}

func (o *Order) allLinesAllocated() bool {
	if len(o.lines) == 0 {
		return false
	}
	for _, l := range o.lines {
		if l.status != LineAllocated {
			return false
		}
	}
	return true
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	restored := make([]*Line, 0, len(lines))
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
		restored = append(restored, l)
	}
	o.lines = restored
	return nil
}
