package core

import (
	"errors"
	"io/fs"
)

var (
	// ErrNotExist is returned when a file or directory does not exist.
	// Re-exported from io/fs for convenience.
	ErrNotExist = fs.ErrNotExist

	// ErrExist is returned when a file or directory already exists.
	// Re-exported from io/fs for convenience.
	ErrExist = fs.ErrExist

	// ErrPermission is returned when permission is denied.
	// Re-exported from io/fs for convenience.
	ErrPermission = fs.ErrPermission

	// ErrIsDir is returned when a file operation targets a directory.
	ErrIsDir = errors.New("is a directory")

	// ErrNotDir is returned when a directory operation targets a file.
	ErrNotDir = errors.New("not a directory")

	// ErrNotEmpty is returned when removing a directory that still has entries.
	ErrNotEmpty = errors.New("directory not empty")
)
