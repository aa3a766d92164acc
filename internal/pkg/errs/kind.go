package errs

import "errors"

// Kind is the stable, machine-readable classification of a failure.
type Kind string

const (
	KindNotFound             Kind = "NOT_FOUND"
	KindInvalidTransition    Kind = "INVALID_TRANSITION"
	KindInsufficientReserved Kind = "INSUFFICIENT_RESERVED"
	KindValidation           Kind = "VALIDATION_ERROR"
	KindInternal             Kind = "INTERNAL"
)

// KindOf classifies err. A joined error takes the most specific kind among its members.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInsufficientReserved):
		return KindInsufficientReserved
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	default:
		return KindInternal
	}
}
