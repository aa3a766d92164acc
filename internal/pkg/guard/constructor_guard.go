// Package guard detects domain objects that bypassed their constructors.
//
// A zero-value struct in the domain layer is almost always a bug: it skips the
// validation the constructor performs. Embedding a ConstructorGuard lets the
// object report that condition from its Validate method.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether its owner was built by a constructor.
//
// Example:
//
//	type Command struct {
//	    shipmentID kernel.UUID
//	    guard      guard.ConstructorGuard
//	}
//
//	func NewCommand(id kernel.UUID) Command {
//	    return Command{shipmentID: id, guard: guard.NewConstructorGuard()}
//	}
//
//	func (c Command) Validate() error {
//	    return c.guard.Validate(ErrCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
