package shipment

import (
	"errors"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment constructor")

// Shipment is the aggregate root for a consignment of reserved goods.
//
// A shipment optionally points back at the order it was built from. The
// reference is informational only: the shipment never reads or changes the
// order after creation.
//
// Invariants:
//   - At least one line, each with 0 <= reserved <= requested
//   - Status only moves along the transitions documented on Status
//   - Every method either succeeds completely or leaves the shipment as it was
type Shipment struct {
	id      kernel.UUID
	orderID *kernel.UUID
	status  Status
	lines   []*Line
	custody []CustodyRecord

	guard guard.ConstructorGuard
}

// NewShipment creates a shipment in CREATED.
//
// Parameters:
//   - id: identifier of the new shipment
//   - orderID: source order, nil for ad hoc shipments
//   - lines: at least one line; lines are owned by the shipment from now on
//
// Example:
//
//	line, _ := shipment.NewLine(kernel.NewUUID(), sku, 6, 6)
//	s, err := shipment.NewShipment(kernel.NewUUID(), &orderID, []*shipment.Line{line})
func NewShipment(id kernel.UUID, orderID *kernel.UUID, lines []*Line) (*Shipment, error) {
	return RestoreShipment(id, orderID, Created, lines, nil)
}

// RestoreShipment rebuilds a shipment from persistence in any valid status.
func RestoreShipment(
	id kernel.UUID,
	orderID *kernel.UUID,
	status Status,
	lines []*Line,
	custody []CustodyRecord,
) (*Shipment, error) {
	s := &Shipment{
		custody: slices.Clone(custody),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setStatus(status),
		s.setLines(lines),
	); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// OrderID returns the source order, or nil for ad hoc shipments.
func (s *Shipment) OrderID() *kernel.UUID {
	if s.orderID == nil {
		return nil
	}
	id := *s.orderID
	return &id
}

func (s *Shipment) Status() Status {
	return s.status
}

// Lines returns the lines in creation order. The slice is a copy.
func (s *Shipment) Lines() []*Line {
	return slices.Clone(s.lines)
}

// Custody returns the custody log, oldest first.
func (s *Shipment) Custody() []CustodyRecord {
	return slices.Clone(s.custody)
}

// Shortages lists every line whose reservation does not cover its request.
func (s *Shipment) Shortages() []errs.Shortage {
	var shortages []errs.Shortage
	for _, l := range s.lines {
		if !l.IsCovered() {
			shortages = append(shortages, errs.Shortage{
				SKU:       l.sku.String(),
				Requested: l.requested,
				Reserved:  l.reserved,
			})
		}
	}
	return shortages
}

// ShortLines returns the lines that still need inventory.
func (s *Shipment) ShortLines() []*Line {
	short := make([]*Line, 0)
	for _, l := range s.lines {
		if !l.IsCovered() {
			short = append(short, l)
		}
	}
	return short
}

// Pick moves CREATED to PICKED.
func (s *Shipment) Pick() error {
	return s.Advance(ActionPick)
}

// Pack moves PICKED to PACKED.
func (s *Shipment) Pack() error {
	return s.Advance(ActionPack)
}

// Dispatch moves PACKED to DISPATCHED. Besides the status check, every line
// must be fully reserved; otherwise an *errs.InsufficientReservedError lists
// the short lines and the shipment stays PACKED.
func (s *Shipment) Dispatch() error {
	return s.Advance(ActionDispatch)
}

// Deliver moves DISPATCHED to DELIVERED.
func (s *Shipment) Deliver() error {
	return s.Advance(ActionDeliver)
}

// Advance applies a warehouse action to the shipment.
//
// Each action has exactly one source status:
//
//	pick: CREATED -> PICKED, pack: PICKED -> PACKED,
//	dispatch: PACKED -> DISPATCHED, deliver: DISPATCHED -> DELIVERED
//
// The status check runs before the reservation check, so dispatching a
// CREATED shipment is an invalid transition even when it is also short.
//
// Returns:
//   - nil after moving to the target status
//   - an InvalidTransitionError naming the current status when the action
//     does not apply
//   - an *errs.InsufficientReservedError listing the short lines when a
//     PACKED shipment is dispatched without full reservations
//
// On error the shipment is left unchanged, so a failed dispatch can be
// retried after a reservation top-up.
//
// Example:
//
//	if err := s.Advance(shipment.ActionDispatch); err != nil {
//	    var short *errs.InsufficientReservedError
//	    if errors.As(err, &short) {
//	        // short.Shortages lists sku, requested and reserved
//	    }
//	}
func (s *Shipment) Advance(action Action) error {
	next, err := s.status.next(action)
	if err != nil {
		return err
	}

	if action == ActionDispatch {
		if shortages := s.Shortages(); len(shortages) > 0 {
			return errs.NewInsufficientReservedError(s.id.String(), shortages)
		}
	}

	s.status = next
	return nil
}

// Reserve adds granted units to a line's reservation. Only possible before
// dispatch and never beyond the requested quantity.
func (s *Shipment) Reserve(lineID kernel.UUID, granted int) error {
	if !s.status.IsBeforeDispatch() {
		return errs.NewInvalidTransitionError("shipment", "reserve", s.status.String())
	}

	idx := slices.IndexFunc(s.lines, func(l *Line) bool { return l.id.IsEqual(lineID) })
	if idx < 0 {
		return errs.NewObjectNotFoundError("shipment line", lineID.String())
	}

	return s.lines[idx].addReserved(granted)
}

// HandOff records a tag-based custody transfer to actor.
//
// Transitions:
//   - CREATED or READY_TO_SHIP: the driver takes the shipment, IN_TRANSIT
//   - IN_TRANSIT: the receiver takes it, DELIVERED
//   - anything else fails with an InvalidTransition error naming the status
//
// Parameters:
//   - actor: display name of the user who scanned the tag, must not be blank
//   - at: time of the scan, must not be zero
//
// Returns:
//   - the CustodyRecord, also appended to the custody log; its Message is
//     the confirmation shown on the scanner
//   - an error with the shipment unchanged otherwise
//
// Example:
//
//	record, err := s.HandOff("Dana", now) // CREATED -> IN_TRANSIT
//	record.Message()                      // "Dana: custody transferred to driver"
func (s *Shipment) HandOff(actor string, at time.Time) (CustodyRecord, error) {
	var (
		next   Status
		action string
	)

	switch s.status {
	case Created, ReadyToShip:
		next, action = InTransit, CustodyToDriver
	case InTransit:
		next, action = Delivered, CustodyToReceiver
	default:
		return CustodyRecord{}, errs.NewInvalidTransitionError("shipment", "hand off", s.status.String())
	}

	record, err := newCustodyRecord(action, actor, at, s.status, next)
	if err != nil {
		return CustodyRecord{}, err
	}

	s.status = next
	s.custody = append(s.custody, record)
	return record, nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setOrderID(orderID *kernel.UUID) error {
	if orderID == nil {
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	id := *orderID
	s.orderID = &id
	return nil
}

func (s *Shipment) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func (s *Shipment) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("shipment lines")
	}
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	s.lines = slices.Clone(lines)
	return nil
}
