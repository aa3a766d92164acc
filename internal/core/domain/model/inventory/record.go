package inventory

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

// Record holds the available quantity of one sku. Available never drops
// below zero.
type Record struct {
	sku       kernel.SKU
	available int

	guard guard.ConstructorGuard
}

func NewRecord(sku kernel.SKU, available int) (*Record, error) {
	if err := sku.Validate(); err != nil {
		return nil, err
	}
	if available < 0 {
		return nil, errs.NewValueIsOutOfRangeError("available", available, 0, "unbounded")
	}

	return &Record{
		sku:       sku,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

func (r *Record) SKU() kernel.SKU {
	return r.sku
}

func (r *Record) Available() int {
	return r.available
}

// Reserve grants min(available, requested) and decrements available by the
// grant. A shortage is not an error: a partial or zero grant is a normal
// outcome.
func (r *Record) Reserve(requested int) (int, error) {
	if requested < 0 {
		return 0, errs.NewValueIsOutOfRangeError("requested", requested, 0, "unbounded")
	}

	granted := min(r.available, requested)
	r.available -= granted
	return granted, nil
}

// Restock adds qty units.
func (r *Record) Restock(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", qty))
	}
	r.available += qty
	return nil
}
