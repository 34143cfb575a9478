// Package errors provides structured error types for programmatic error
// handling across implindex.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUnavailable,
//	    "failed to fetch fragment",
//	    cause,
//	    map[string]any{
//	        "source": source,
//	    },
//	)
//
// The API server maps codes to HTTP status with HTTPStatus.
package errors
