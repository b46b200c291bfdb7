package core

import (
	"io/fs"
)

// FSType represents the underlying type of filesystem implementation.
type FSType int

const (
	// FSTypeUnknown indicates the filesystem type is unknown or unspecified.
	FSTypeUnknown FSType = iota
	// FSTypeLocal indicates a disk-backed filesystem.
	FSTypeLocal
	// FSTypeMemory indicates an in-memory filesystem.
	FSTypeMemory
)

// String returns a string representation of the FSType.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// ParseFSType converts "local" or "memory" to an FSType.
// Any other value yields FSTypeUnknown.
func ParseFSType(s string) FSType {
	switch s {
	case "local":
		return FSTypeLocal
	case "memory":
		return FSTypeMemory
	default:
		return FSTypeUnknown
	}
}

// FS is the backend contract used by the entity layer.
type FS interface {
	ReadFS
	WriteFS
	ManageFS

	// Type returns the underlying filesystem type.
	Type() FSType
}

// ReadFS defines read-only operations.
type ReadFS interface {
	// Stat returns metadata for the named file or directory.
	// If there is an error, it will be of type *fs.PathError.
	Stat(name string) (fs.FileInfo, error)

	// ReadDir returns the immediate entries of the named directory.
	// Callers must not depend on the order of the returned entries.
	ReadDir(name string) ([]fs.DirEntry, error)

	// ReadFile reads the named file and returns its full contents.
	ReadFile(name string) ([]byte, error)

	// Exists reports whether the named file or directory exists.
	// A false result with a non-nil error means existence could not be
	// determined, not that the path is absent.
	Exists(name string) (bool, error)
}

// WriteFS defines operations that create or overwrite content.
type WriteFS interface {
	// WriteFile writes data to the named file, creating it if necessary
	// and truncating it otherwise. The parent directory must exist.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Touch creates the named file empty if it does not exist. If it does
	// exist, its contents are left alone and its modification time is
	// updated when the backend supports it. The parent directory must exist.
	Touch(name string, perm fs.FileMode) error

	// Mkdir creates a single directory. It fails with ErrExist if the path
	// is already present and with ErrNotExist if the parent is missing.
	Mkdir(name string, perm fs.FileMode) error

	// MkdirAll creates a directory along with any missing parents.
	// It does nothing if the directory already exists.
	MkdirAll(path string, perm fs.FileMode) error
}

// ManageFS defines operations that remove or relocate entries.
type ManageFS interface {
	// Remove removes the named file or empty directory.
	// Removing a non-empty directory is an error.
	Remove(name string) error

	// Rename moves oldpath to newpath. An existing destination file is replaced.
	Rename(oldpath, newpath string) error

	// Copy duplicates the contents of the file src into dst, creating or
	// replacing dst. A failed copy never leaves a partially written dst.
	Copy(src, dst string) error
}
