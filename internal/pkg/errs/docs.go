// Package errs provides standardized error types for the order service.
//
// Each error category follows the same pattern: a sentinel error variable
// (e.g. ErrObjectNotFound) that classifies the failure, a struct carrying
// the details, constructors with and without a cause, and an Unwrap method
// so errors.Is resolves the sentinel. Components classify failures with
// errors.Is and the HTTP adapter maps each sentinel onto a fixed
// {statusCode, message} response shape.
//
// The categories mirror the operations of the service: object lookups
// (ObjectNotFound), input validation (ValueIsRequired, ValueIsInvalid,
// ValueIsOutOfRange), order lifecycle guards (InvalidTransition,
// AlreadyCancelled), credential checks (Unauthenticated, Forbidden) and
// peer calls (UpstreamUnavailable).
package errs
