// Package billy provides a go-billy-backed implementation of the core.FS
// interface.
//
// This package wraps go-billy's osfs (local) and memfs (in-memory)
// filesystems behind a single adapter type. Both flavours accept absolute,
// slash-separated names and behave the same way where go-billy does not:
//
//   - WriteFile, Touch and Rename refuse to create missing parent directories.
//   - Mkdir creates exactly one level.
//   - Remove fails with core.ErrNotEmpty on a directory with entries.
//   - Copy stages data in a hidden sibling and renames it into place.
//
// Usage:
//
//	// Create local filesystem
//	fs := billy.NewLocal()
//	data, err := fs.ReadFile("/etc/hostname")
//
//	// Scope a local filesystem below a directory
//	fs = billy.NewLocal(billy.WithBase(t.TempDir()))
//
// # Memory Filesystem
//
// For testing or temporary storage, use the in-memory filesystem:
//
//	fs := billy.NewMemory()
//	err := fs.WriteFile("/temp.txt", []byte("data"), 0644)
//
// # Thread Safety
//
// The local filesystem is safe for concurrent use. The memory filesystem
// inherits memfs's lack of locking and must not be mutated concurrently.
package billy
