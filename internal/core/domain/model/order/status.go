package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It is a value object: transitions are computed by its methods and the
// Order aggregate stores the result.
//
// State transitions:
//
//	Draft ──approve──> Approved ──allocate (no backorder)──> Allocated
//	                      │
//	                      └──allocate (backorder)──> Approved
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialised Status values.
	Unknown Status = iota

	// Draft is the initial status. Lines can only be added to a draft.
	Draft

	// Approved orders may be allocated. A partially allocated order stays
	// here while any of its lines is backordered.
	Approved

	// Allocated means every line received stock. It is terminal for this core.
	Allocated
)

var statusNames = map[Status]string{
	Unknown:   "UNKNOWN",
	Draft:     "DRAFT",
	Approved:  "APPROVED",
	Allocated: "ALLOCATED",
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
// Valid statuses are: Draft, Approved, Allocated.
// Unknown (0) and any other values are invalid.
//
// Returns:
//   - nil if the status is valid
//   - ValueIsInvalidError wrapping the offending value otherwise
//
// Repositories call it on every status read back from the database.
func (s Status) Validate() error {
	if s < Draft || s > Allocated {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// Approve computes the status after approval.
//
// Only a Draft order can be approved.
//
// Returns:
//   - Approved and nil when s is Draft
//   - s unchanged and an InvalidTransitionError naming s otherwise
//
// Example:
//
//	next, err := order.Draft.Approve()    // Approved, nil
//	_, err = order.Allocated.Approve()    // errs.ErrInvalidTransition, "ALLOCATED"
func (s Status) Approve() (Status, error) {
	if s != Draft {
		return s, errs.NewInvalidTransitionError("order", "approve", s.String())
	}
	return Approved, nil
}

// ValidateAllocate checks that allocation may run from s.
//
// Allocation runs on Approved orders only, including orders left Approved
// by an earlier partial allocation. A Draft order must be approved first.
//
// Returns:
//   - nil when s is Approved
//   - an InvalidTransitionError naming s otherwise
//
// Example:
//
//	if err := o.Status().ValidateAllocate(); err != nil {
//	    return err // errors.Is(err, errs.ErrInvalidTransition)
//	}
func (s Status) ValidateAllocate() error {
	if s != Approved {
		return errs.NewInvalidTransitionError("order", "allocate", s.String())
	}
	return nil
}
