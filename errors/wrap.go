package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps err with a code and message, keeping err reachable through Unwrap.
//
// If err already contains a PlatformError its classification is kept;
// otherwise the default for code applies. Returns nil if err is nil.
//
// Example:
//
//	if err := backend.Rename(from, to); err != nil {
//	    return errors.Wrap(err, errors.CodeIO, "failed to move file")
//	}
func Wrap(err error, code ErrorCode, message string) PlatformError {
	return WrapWithContext(err, code, message, nil)
}

// Wrapf is Wrap with a formatted message. Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) PlatformError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapWithContext wraps err and attaches context in one step.
// The context map is copied. Returns nil if err is nil.
//
// Example:
//
//	return errors.WrapWithContext(err, errors.CodeIO, "failed to write file", map[string]interface{}{
//	    "path": f.Path(),
//	    "size": len(contents),
//	})
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}

	classification := getDefaultClassification(code)
	var platformErr PlatformError
	if errors.As(err, &platformErr) {
		classification = platformErr.Classification()
	}

	return &platformError{
		code:           code,
		classification: classification,
		message:        message,
		context:        copyContext(ctx),
		cause:          err,
	}
}
