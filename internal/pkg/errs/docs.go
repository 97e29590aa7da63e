// Package errs provides standardized error types for the routing application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two groups of error types:
//   - Value errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     ObjectNotFoundError) raised by constructors and setters
//   - Instance errors (MalformedMetadataError, UnexpectedEndOfInputError,
//     ReferenceOutOfRangeError, UnknownPeerError, RouteNotResolvedError) raised while
//     reading an instance, building a plan, or computing plan metrics
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrMalformedMetadata)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is matches the kind
//
// None of these errors are transient: they describe a malformed instance or a
// plan that is not ready for the requested operation, and are returned to the
// caller unchanged.
package errs
