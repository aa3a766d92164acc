// Package errs provides the error taxonomy shared by every layer of the
// fulfillment service.
//
// Each error type follows the same pattern:
//   - a sentinel (ErrObjectNotFound, ErrInvalidTransition, ...) usable with errors.Is
//   - a struct carrying the details of the failure
//   - constructors with and without a cause
//   - Error() for the message and Unwrap() returning the sentinel
//
// KindOf maps any error onto a stable machine-readable Kind. Transport adapters
// use it to pick a status code and to fill the "kind" field of error payloads,
// so the wording of messages can change without breaking clients.
package errs
