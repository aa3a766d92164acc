package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrInsufficientReserved = errors.New("insufficient reserved")
)

// InvalidTransitionError reports an operation attempted from a status that does not permit it.
// Status always names the offending current status.
type InvalidTransitionError struct {
	Entity string
	Action string
	Status string
}

func NewInvalidTransitionError(entity, action, status string) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, Action: action, Status: status}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s %s in status %s", ErrInvalidTransition, e.Action, e.Entity, e.Status)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Shortage describes one shipment line whose reservation does not cover its request.
type Shortage struct {
	SKU       string
	Requested int
	Reserved  int
}

// InsufficientReservedError is a resource-availability conflict raised at dispatch time.
// The same request can succeed later once the reservation is topped up.
type InsufficientReservedError struct {
	ShipmentID string
	Shortages  []Shortage
}

func NewInsufficientReservedError(shipmentID string, shortages []Shortage) *InsufficientReservedError {
	return &InsufficientReservedError{ShipmentID: shipmentID, Shortages: shortages}
}

func (e *InsufficientReservedError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (reserved %d of %d)", s.SKU, s.Reserved, s.Requested))
	}
	return fmt.Sprintf("%s: shipment %s is short on %s", ErrInsufficientReserved, e.ShipmentID, strings.Join(parts, ", "))
}

func (e *InsufficientReservedError) Unwrap() error {
	return ErrInsufficientReserved
}
