package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// MaxSKULength bounds SKU codes to the width of the sku columns.
const MaxSKULength = 64

var (
	// ErrSKUIsNotConstructed is returned when validating a zero SKU.
	ErrSKUIsNotConstructed = errs.NewValueIsRequiredError("SKU must be created via NewSKU")

	skuPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._\-]*$`)
)

// SKU is a stock-keeping unit code. Codes are case-sensitive and compared verbatim.
type SKU struct {
	code  string
	guard guard.ConstructorGuard
}

// NewSKU trims surrounding whitespace and checks length and alphabet.
func NewSKU(code string) (SKU, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return SKU{}, errs.NewValueIsRequiredError("sku")
	}
	if len(code) > MaxSKULength {
		return SKU{}, errs.NewValueIsOutOfRangeError("sku length", len(code), 1, MaxSKULength)
	}
	if !skuPattern.MatchString(code) {
		return SKU{}, errs.NewValueIsInvalidErrorWithCause("sku", fmt.Errorf("%q contains unsupported characters", code))
	}
	return SKU{code: code, guard: guard.NewConstructorGuard()}, nil
}

// MustSKU is NewSKU for literals. It panics on invalid input.
func MustSKU(code string) SKU {
	sku, err := NewSKU(code)
	if err != nil {
		panic(err)
	}
	return sku
}

func (s SKU) String() string {
	return s.code
}

func (s SKU) IsEqual(other SKU) bool {
	return s.code == other.code
}

func (s SKU) Validate() error {
	return s.guard.Validate(ErrSKUIsNotConstructed)
}
