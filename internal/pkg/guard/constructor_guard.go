// Package guard marks values that were built through their constructor so that
// zero values of commands, queries and aggregates can be rejected early.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a field; only NewConstructorGuard sets it.
//
// Example:
//
//	type PromoteRequestCommand struct {
//	    requestID kernel.UUID
//	    guard     guard.ConstructorGuard
//	}
//
//	func (c PromoteRequestCommand) Validate() error {
//	    return c.guard.Validate(ErrPromoteRequestCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation.
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
