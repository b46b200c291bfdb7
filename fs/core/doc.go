// Package core defines the backend contract the entity layer delegates to.
//
// fsentity never calls the operating system directly. Every stat, read,
// write, mkdir, remove, rename, copy and listing goes through an FS, which
// keeps the path and existence rules of the entity layer independent of where
// the bytes live. The go-billy backed implementations in fs/billy provide a
// local disk FS and an in-memory FS for tests.
//
// # Interface Hierarchy
//
// FS is composed of three groups:
//
//   - ReadFS: Stat, ReadDir, ReadFile, Exists
//   - WriteFS: WriteFile, Touch, Mkdir, MkdirAll
//   - ManageFS: Remove, Rename, Copy
//
// Names passed to an FS are absolute, slash-separated paths. Resolving
// root-relative paths is the job of the rootpath package, not the backend.
//
// # POSIX Expectations
//
// Backends behave like a local POSIX filesystem:
//
//   - Mkdir is not recursive and fails when the parent is missing
//   - WriteFile and Touch fail when the parent directory is missing
//   - Remove deletes a file or an empty directory only
//   - Rename replaces an existing destination file
//
// Errors are returned as *fs.PathError wrapping the io/fs sentinels, so
// errors.Is(err, core.ErrNotExist) works across backends.
package core
