package errors

// ErrorCode identifies a category of failure.
// Codes are strings so they read well in logs and serialize naturally.
type ErrorCode string

const (
	// Existence errors.

	// CodeNotFound indicates an entity expected to exist is absent.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeAlreadyExists indicates an entity about to be created is already present.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Validation errors.

	// CodeInvalidPath indicates a path is malformed, escapes the root, or lies outside it.
	CodeInvalidPath ErrorCode = "INVALID_PATH"

	// CodeInvalidInput indicates an argument other than a path is invalid.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates the configuration cannot be used.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// CodeInvalidState indicates an entity was used after it was deleted or moved.
	CodeInvalidState ErrorCode = "INVALID_STATE"

	// Backend errors.

	// CodeIO indicates the underlying filesystem call failed.
	CodeIO ErrorCode = "IO_ERROR"

	// System errors.

	// CodeInternal indicates an unexpected internal failure.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnknown indicates an unclassified error.
	CodeUnknown ErrorCode = "UNKNOWN"
)
