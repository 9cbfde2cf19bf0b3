// Package guard provides a small helper for enforcing constructor usage
// on value objects. Embedding a ConstructorGuard in a struct makes the
// zero value detectable, so objects created outside their constructor
// fail validation instead of silently carrying unchecked state.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guard is a
// zero value and no custom error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed.
// The zero value is invalid; obtain a valid guard via NewConstructorGuard
// inside the owning type's constructor.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard returns a guard marking the owning object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil if the guard was created via NewConstructorGuard.
// For a zero-value guard it returns notConstructedErr, or
// ErrDefaultConstructorGuard when notConstructedErr is nil.
func (g ConstructorGuard) Validate(notConstructedErr error) error {
	if g.constructed {
		return nil
	}

	if notConstructedErr == nil {
		return ErrDefaultConstructorGuard
	}

	return notConstructedErr
}
