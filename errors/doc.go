// Package errors provides the structured error type used across fsentity.
//
// Every error surfaced by the entity layer, the path resolver and the
// configuration loader is a PlatformError: an error code, a retry
// classification, optional context metadata and an optional cause. The
// package stays compatible with the standard library, so errors.Is and
// errors.As walk the cause chain as usual.
//
// # Creating and wrapping
//
//	err := errors.New(errors.CodeInvalidPath, "path escapes root")
//
//	data, err := backend.ReadFile(full)
//	if err != nil {
//	    return errors.Wrap(err, errors.CodeIO, "failed to read file")
//	}
//
// # Sentinels
//
// Packages declare sentinel errors with New and wrap them when returning, so
// callers can match both the sentinel and the code:
//
//	var ErrFileDoesNotExist = errors.New(errors.CodeNotFound, "file does not exist")
//
//	return errors.Wrapf(ErrFileDoesNotExist, errors.CodeNotFound, "file %q does not exist", rel)
//
//	if errors.Is(err, fsentity.ErrFileDoesNotExist) { ... }
//	if errors.GetCode(err) == errors.CodeNotFound { ... }
//
// # Classification
//
// Codes carry a default classification (retryable or permanent). Nothing in
// fsentity retries; the classification is information for callers that want
// their own recovery policy. Use WithClassification to override it.
//
// # Context
//
// WithContext and WithContextMap attach metadata such as the offending path.
// Context is included by ToJSON and MarshalJSON; the cause chain is not.
package errors
