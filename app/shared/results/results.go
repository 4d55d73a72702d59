// Package results provides a generic success/failure result for service
// operations. Domain failures travel in the Failure side and are normal
// outcomes; the separate error return of an operation is reserved for
// infrastructure problems.
package results

// OperationResult holds either a success payload or a failure payload.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
	Error   error
}

// SuccessResult wraps a success payload.
func SuccessResult[S any, F any](success S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &success}
}

// FailureResult wraps a failure payload.
func FailureResult[S any, F any](failure F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &failure}
}

// IsSuccess reports whether a success payload is present.
func (r OperationResult[S, F]) IsSuccess() bool { return r.Success != nil }

// IsFailure reports whether a failure payload is present.
func (r OperationResult[S, F]) IsFailure() bool { return r.Failure != nil }
