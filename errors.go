package fsentity

import (
	"syscall"

	"github.com/jmgilman/go/fsentity/errors"
)

// Sentinel errors returned by entity operations. Returned errors wrap these,
// so match them with errors.Is rather than ==.
var (
	// ErrFileAlreadyExists is returned when creating a file, or moving,
	// copying or renaming one, onto a path that is already occupied.
	ErrFileAlreadyExists = errors.New(errors.CodeAlreadyExists, "file already exists")

	// ErrFileDoesNotExist is returned when a regular file is required but absent.
	ErrFileDoesNotExist = errors.New(errors.CodeNotFound, "file does not exist")

	// ErrDirectoryAlreadyExists is returned when creating a directory over an
	// occupied path.
	ErrDirectoryAlreadyExists = errors.New(errors.CodeAlreadyExists, "directory already exists")

	// ErrDirectoryDoesNotExist is returned when a directory is required but absent.
	ErrDirectoryDoesNotExist = errors.New(errors.CodeNotFound, "directory does not exist")

	// ErrInvalidEntity is returned when using an entity after Delete or Move,
	// or one that was not obtained from a Root.
	ErrInvalidEntity = errors.New(errors.CodeInvalidState, "entity is no longer valid")
)

// precondition wraps a sentinel with the offending root-relative path.
func precondition(sentinel errors.PlatformError, message, rel string) error {
	return errors.WrapWithContext(sentinel, sentinel.Code(), message, map[string]interface{}{
		"path": rel,
	})
}

// wrapIO wraps a backend failure as CodeIO. Transient conditions reported by
// the OS are marked retryable; nothing here retries them.
func wrapIO(err error, message, rel string) error {
	if err == nil {
		return nil
	}
	wrapped := errors.WrapWithContext(err, errors.CodeIO, message, map[string]interface{}{
		"path": rel,
	})
	if isTransient(err) {
		return errors.WithClassification(wrapped, errors.ClassificationRetryable)
	}
	return wrapped
}

func isTransient(err error) bool {
	return errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.EBUSY) ||
		errors.Is(err, syscall.EINTR)
}
