package shipment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of a shipment.
//
//	Created ─pick─> Picked ─pack─> Packed ─dispatch─> Dispatched ─deliver─> Delivered
//
// ReadyToShip and InTransit belong to the tag-based handoff:
//
//	Created|ReadyToShip ─handoff─> InTransit ─handoff─> Delivered
type Status int

const (
	Unknown Status = iota
	Created
	ReadyToShip
	Picked
	Packed
	Dispatched
	InTransit
	Delivered
)

var statusNames = map[Status]string{
	Unknown:     "UNKNOWN",
	Created:     "CREATED",
	ReadyToShip: "READY_TO_SHIP",
	Picked:      "PICKED",
	Packed:      "PACKED",
	Dispatched:  "DISPATCHED",
	InTransit:   "IN_TRANSIT",
	Delivered:   "DELIVERED",
}

// Action names a warehouse transition.
type Action string

const (
	ActionPick     Action = "pick"
	ActionPack     Action = "pack"
	ActionDispatch Action = "dispatch"
	ActionDeliver  Action = "deliver"
)

// transitions maps each action to its single permitted source and target.
var transitions = map[Action]struct{ from, to Status }{
	ActionPick:     {Created, Picked},
	ActionPack:     {Picked, Packed},
	ActionDispatch: {Packed, Dispatched},
	ActionDeliver:  {Dispatched, Delivered},
}

// String returns the upper-case name used in storage, events and the API.
// Values outside the enumeration render as "UNKNOWN".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// Validate checks if the Status value is valid.
//
// Returns:
//   - nil for Created through Delivered
//   - ValueIsInvalidError for Unknown (0) and any other value
func (s Status) Validate() error {
	if s < Created || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid shipment status", s))
	}
	return nil
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// IsBeforeDispatch reports whether the reservation may still change.
func (s Status) IsBeforeDispatch() bool {
	switch s {
	case Created, ReadyToShip, Picked, Packed:
		return true
	default:
		return false
	}
}

// ParseStatus is the inverse of String.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name && s != Unknown {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a shipment status", name))
}

// ParseAction accepts the lower-case action names used on the wire.
func ParseAction(name string) (Action, error) {
	a := Action(name)
	if _, ok := transitions[a]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("action is invalid", fmt.Errorf("%q is not a shipment action", name))
	}
	return a, nil
}

// next returns the status reached by applying a from s.
func (s Status) next(a Action) (Status, error) {
	t, ok := transitions[a]
	if !ok {
		return s, errs.NewValueIsInvalidErrorWithCause("action is invalid", fmt.Errorf("%q is not a shipment action", a))
	}
	if s != t.from {
		return s, errs.NewInvalidTransitionError("shipment", string(a), s.String())
	}
	return t.to, nil
}
