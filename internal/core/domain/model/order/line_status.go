package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// LineStatus is the allocation state of a single order line.
type LineStatus int

const (
	// LineUnknown catches uninitialised values.
	LineUnknown LineStatus = iota
	// LineOpen lines have not been through allocation yet.
	LineOpen
	// LineAllocated lines hold reserved stock for their full quantity.
	LineAllocated
	// LineBackordered lines wait for stock that was not available.
	LineBackordered
)

var lineStatusNames = map[LineStatus]string{
	LineUnknown:     "UNKNOWN",
	LineOpen:        "OPEN",
	LineAllocated:   "ALLOCATED",
	LineBackordered: "BACKORDERED",
}

// String returns the upper-case name used in storage and the API.
func (s LineStatus) String() string {
	if name, ok := lineStatusNames[s]; ok {
		return name
	}
	return lineStatusNames[LineUnknown]
}

// Validate rejects LineUnknown and values outside the enumeration.
func (s LineStatus) Validate() error {
	if s < LineOpen || s > LineBackordered {
		return errs.NewValueIsInvalidErrorWithCause("line status is invalid", fmt.Errorf("%d is not a valid line status", s))
	}
	return nil
}

// IsSettled reports whether the line is frozen (ALLOCATED or BACKORDERED).
func (s LineStatus) IsSettled() bool {
	return s == LineAllocated || s == LineBackordered
}
