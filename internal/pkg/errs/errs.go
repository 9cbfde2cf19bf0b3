package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used as classification anchors for errors.Is checks.
// Every constructor below wraps one of these, so callers can branch on the
// category without inspecting concrete error types.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")

	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrAlreadyCancelled    = errors.New("order is already cancelled")
	ErrUnauthenticated     = errors.New("credential is missing or unparseable")
	ErrForbidden           = errors.New("no allowed role matched the credential")
	ErrUpstreamUnavailable = errors.New("peer service is unavailable")
)

func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "\r", " ")
}

// ObjectNotFoundError reports that an object referenced by an identifier
// does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports that a supplied value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports that a numeric value is outside its
// allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v (cause: %s)",
			ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max))
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidTransitionError reports an order status change that violates the
// lifecycle rules: the transition guard failed or the order is already in
// a terminal status.
type InvalidTransitionError struct {
	OrderID    int64
	FromStatus int64
	ToStatus   int64
	Reason     string
}

func NewInvalidTransitionError(orderID, fromStatus, toStatus int64, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{OrderID: orderID, FromStatus: fromStatus, ToStatus: toStatus, Reason: reason}
}

func (e *InvalidTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: order %d, status %d -> %d: %s",
		ErrInvalidTransition, e.OrderID, e.FromStatus, e.ToStatus, e.Reason))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// AlreadyCancelledError reports a cancellation attempt on an order that is
// already in the cancelled status.
type AlreadyCancelledError struct {
	OrderID int64
}

func NewAlreadyCancelledError(orderID int64) *AlreadyCancelledError {
	return &AlreadyCancelledError{OrderID: orderID}
}

func (e *AlreadyCancelledError) Error() string {
	return fmt.Sprintf("%s: order %d", ErrAlreadyCancelled, e.OrderID)
}

func (e *AlreadyCancelledError) Unwrap() error {
	return ErrAlreadyCancelled
}

// UnauthenticatedError reports a missing or undecodable credential.
type UnauthenticatedError struct {
	Reason string
}

func NewUnauthenticatedError(reason string) *UnauthenticatedError {
	return &UnauthenticatedError{Reason: reason}
}

func (e *UnauthenticatedError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s", ErrUnauthenticated, e.Reason))
}

func (e *UnauthenticatedError) Unwrap() error {
	return ErrUnauthenticated
}

// ForbiddenError reports a credential that decoded correctly but satisfied
// none of the roles allowed for the operation.
type ForbiddenError struct {
	AllowedRoles []string
}

func NewForbiddenError(allowedRoles []string) *ForbiddenError {
	return &ForbiddenError{AllowedRoles: allowedRoles}
}

func (e *ForbiddenError) Error() string {
	return sanitize(fmt.Sprintf("%s: allowed roles are %s",
		ErrForbidden, strings.Join(e.AllowedRoles, ", ")))
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// UpstreamUnavailableError reports a failed peer RPC. It is always absorbed
// by the calling component and never surfaces to the inbound caller.
type UpstreamUnavailableError struct {
	Peer     string
	Resource string
	Cause    error
}

func NewUpstreamUnavailableError(peer, resource string, cause error) *UpstreamUnavailableError {
	return &UpstreamUnavailableError{Peer: peer, Resource: resource, Cause: cause}
}

func (e *UpstreamUnavailableError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s/%s (cause: %s)", ErrUpstreamUnavailable, e.Peer, e.Resource, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s/%s", ErrUpstreamUnavailable, e.Peer, e.Resource))
}

func (e *UpstreamUnavailableError) Unwrap() error {
	return ErrUpstreamUnavailable
}
