// Package fsentity models files and directories below a fixed root as typed
// entities.
//
// A Root binds an absolute directory to a filesystem backend (see fs/core)
// and is the only way to obtain entities. Paths given to a Root are relative
// to the root directory; every lookup also has an ...Abs twin that takes an
// absolute path already known to lie below the root. Nothing guesses which
// of the two a string is.
//
//	root, err := fsentity.New("/srv/site")
//	if err != nil {
//	    return err
//	}
//
//	page, err := root.CreateFileWithContents("pages/index.md", []byte("# Hello"))
//	if err != nil {
//	    return err
//	}
//	archived, err := page.Move("archive")
//
// # Snapshots
//
// File and Directory values are snapshots taken when they are resolved.
// Rename, Write and Refresh update a File in place; Move and Copy return a
// new File. After Delete, or after Move for the source file, an entity is
// invalid and its methods fail with ErrInvalidEntity.
//
// # Errors
//
// Existence preconditions are checked before any mutating call and reported
// through ErrFileAlreadyExists, ErrFileDoesNotExist, ErrDirectoryAlreadyExists
// and ErrDirectoryDoesNotExist. Backend failures are wrapped with
// errors.CodeIO and keep the original error in their chain, so
// errors.Is(err, fs.ErrNotExist) still works on them. The check and the
// mutation are separate calls; a concurrent writer can still make the
// backend fail after a check passed.
//
// # Concurrency
//
// A Root may be shared between goroutines. Entities are plain values and
// must not be mutated from several goroutines at once.
package fsentity
