// Package errs provides standardized error types for the procurement application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is malformed or violates a rule
//   - ValueIsOutOfRangeError: For when a value falls outside its bounds
//   - ObjectNotFoundError: For when a referenced record does not exist
//   - InvalidStateError: For when a record's status forbids the requested operation
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// KindOf folds any error chain into one of the three caller-facing kinds
// (not found, invalid state, invalid input) so that transport adapters can map
// failures without knowing the concrete types.
package errs
