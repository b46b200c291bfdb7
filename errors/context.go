package errors

import "errors"

// asPlatformError returns err as a PlatformError, converting plain errors to
// CodeUnknown with err as the cause.
func asPlatformError(err error) PlatformError {
	var platformErr PlatformError
	if errors.As(err, &platformErr) {
		return platformErr
	}
	return &platformError{
		code:           CodeUnknown,
		classification: ClassificationPermanent,
		message:        err.Error(),
		cause:          err,
	}
}

// derive copies base with the given context and classification.
func derive(base PlatformError, ctx map[string]interface{}, classification ErrorClassification) PlatformError {
	return &platformError{
		code:           base.Code(),
		classification: classification,
		message:        base.Message(),
		context:        ctx,
		cause:          base.Unwrap(),
	}
}

// WithContext returns a copy of err with key set in its context.
//
// Plain errors are converted to CodeUnknown first. Returns nil if err is nil.
//
// Example:
//
//	err = errors.WithContext(err, "path", rel)
func WithContext(err error, key string, value interface{}) PlatformError {
	if err == nil {
		return nil
	}
	return WithContextMap(err, map[string]interface{}{key: value})
}

// WithContextMap returns a copy of err with ctx merged into its context.
// New keys override existing ones. Returns nil if err is nil.
func WithContextMap(err error, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}

	base := asPlatformError(err)
	merged := make(map[string]interface{}, len(ctx))
	for k, v := range base.Context() {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}
	return derive(base, merged, base.Classification())
}

// WithClassification returns a copy of err with the given classification.
// Returns nil if err is nil.
//
// Example:
//
//	// EBUSY from the OS is worth retrying even though CodeIO defaults to permanent.
//	err = errors.WithClassification(err, errors.ClassificationRetryable)
func WithClassification(err error, classification ErrorClassification) PlatformError {
	if err == nil {
		return nil
	}

	base := asPlatformError(err)
	return derive(base, base.Context(), classification)
}
