package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError is an error built from a panic recovered inside a library call.
// gonum reports shape violations by panicking; Recover turns those into values
// so that callers of Fit and Predict only ever see returned errors.
type PanicError struct {
	// PanicValue is the value passed to panic().
	PanicValue interface{}

	// StackTrace is the goroutine stack captured at recovery time.
	StackTrace string

	// Operation identifies where the panic was recovered.
	Operation string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// String includes the captured stack trace.
func (e *PanicError) String() string {
	return fmt.Sprintf("panic in %s: %v\nStack trace:\n%s",
		e.Operation, e.PanicValue, e.StackTrace)
}

// NewPanicError creates a PanicError for the given operation and panic value.
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover must be deferred directly. It converts a panic into a PanicError
// stored in *err; when *err already holds an error the panic is wrapped
// around it instead.
//
//	func (o *OLS) Fit(X mat.Matrix, y mat.Vector) (err error) {
//	    defer errors.Recover(&err, "OLS.Fit")
//	    ...
//	}
func Recover(err *error, operation string) {
	if r := recover(); r != nil {
		if *err != nil {
			*err = Wrapf(*err, "panic in %s: %v", operation, r)
			return
		}
		*err = NewPanicError(operation, r)
	}
}

// SafeExecute runs fn and converts any panic into a PanicError.
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
