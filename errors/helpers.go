package errors

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
// It is the standard library errors.Is, re-exported so callers need one import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// It is the standard library errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCode returns the code of the outermost PlatformError in err's chain.
// Returns CodeUnknown if err is nil or contains no PlatformError.
//
// Example:
//
//	switch errors.GetCode(err) {
//	case errors.CodeNotFound:
//	    // create it
//	case errors.CodeAlreadyExists:
//	    // reuse it
//	}
func GetCode(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		return platformErr.Code()
	}
	return CodeUnknown
}

// GetClassification returns the classification of the outermost PlatformError.
// Returns ClassificationPermanent if err is nil or contains no PlatformError.
func GetClassification(err error) ErrorClassification {
	if err == nil {
		return ClassificationPermanent
	}

	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		return platformErr.Classification()
	}
	return ClassificationPermanent
}

// IsRetryable reports whether err is classified as retryable.
func IsRetryable(err error) bool {
	return GetClassification(err).IsRetryable()
}
