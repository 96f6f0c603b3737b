// Package errs provides standardized error types for the dispatch core.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping used throughout the application.
//
// The taxonomy mirrors the operation boundaries:
//   - ValidationError: an operation precondition failed locally
//   - TransitionError: a delivery-status change is not legal from the current state
//   - RateLimitError: the backend signalled throttling
//   - ObjectNotFoundError: a lookup by identifier found nothing
//   - ValueIsRequiredError / ValueIsInvalidError: constructor-level validation
//
// Each error type follows a consistent pattern:
//   - a sentinel error variable (e.g. ErrRateLimited) for errors.Is checks
//   - a struct type with fields for error details
//   - constructor functions with and without cause
//   - Error() for formatting and Unwrap() for classification
//
// Local and validation errors never reach the network layer; network failures
// are caught at each adapter boundary and converted to one of these kinds
// before being handed to the caller.
package errs
