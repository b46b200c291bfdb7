package errors

import "fmt"

// PlatformError is the structured error returned by fsentity packages.
//
// It carries a code for programmatic handling, a retry classification,
// optional context metadata, and the wrapped cause for errors.Is/errors.As.
type PlatformError interface {
	error

	// Code returns the error code identifying the type of error.
	Code() ErrorCode

	// Classification returns whether the error is retryable or permanent.
	Classification() ErrorClassification

	// Message returns the human-readable error message without the cause.
	Message() string

	// Context returns a copy of the attached metadata, or nil if there is none.
	Context() map[string]interface{}

	// Unwrap returns the wrapped cause, or nil.
	Unwrap() error
}

// platformError is the only PlatformError implementation.
// Values are immutable; every helper returns a new instance.
type platformError struct {
	code           ErrorCode
	classification ErrorClassification
	message        string
	context        map[string]interface{}
	cause          error
}

// Error formats the error as "[CODE] message" or "[CODE] message: cause".
func (e *platformError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

func (e *platformError) Code() ErrorCode                     { return e.code }
func (e *platformError) Classification() ErrorClassification { return e.classification }
func (e *platformError) Message() string                     { return e.message }
func (e *platformError) Unwrap() error                       { return e.cause }

// Context returns a copy so callers cannot mutate the error.
func (e *platformError) Context() map[string]interface{} {
	return copyContext(e.context)
}

// copyContext returns a shallow copy of ctx, or nil when ctx is empty.
func copyContext(ctx map[string]interface{}) map[string]interface{} {
	if len(ctx) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(ctx))
	for k, v := range ctx {
		out[k] = v
	}
	return out
}
