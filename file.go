package fsentity

import (
	"io/fs"
	"strings"
	"time"

	"github.com/jmgilman/go/fsentity/errors"
	"github.com/jmgilman/go/fsentity/internal/logging"
	"github.com/jmgilman/go/fsentity/rootpath"
)

// File is a snapshot of a regular file below a Root.
//
// Name, extension and size are read when the File is resolved and go stale
// if the file changes behind its back; Refresh re-reads them. Rename, Write
// and Refresh update the File in place. Move and Copy return a new File.
type File struct {
	element
	name string
	ext  string
	size int64
}

// Name returns the file name without its extension.
func (f *File) Name() string { return f.name }

// Extension returns the extension without the leading dot, or "".
func (f *File) Extension() string { return f.ext }

// Size returns the size in bytes at the time of the last resolution.
func (f *File) Size() int64 { return f.size }

// Filename returns the final path component, name and extension joined.
func (f *File) Filename() string {
	if f.ext == "" {
		return f.name
	}
	return f.name + "." + f.ext
}

// CreateFile creates an empty file at rel. The parent directory must exist.
// It fails with ErrFileAlreadyExists if anything already occupies rel.
func (r *Root) CreateFile(rel string) (f *File, err error) {
	defer r.track(logging.OpCreateFile, rel, time.Now(), &err)
	return r.createFile(rel, func(full string) error {
		return r.backend.Touch(full, r.fileMode)
	})
}

// CreateFileWithContents creates a file at rel holding contents. The parent
// directory must exist. It fails with ErrFileAlreadyExists if anything
// already occupies rel.
func (r *Root) CreateFileWithContents(rel string, contents []byte) (f *File, err error) {
	defer r.track(logging.OpCreateFile, rel, time.Now(), &err)
	return r.createFile(rel, func(full string) error {
		return r.backend.WriteFile(full, contents, r.fileMode)
	})
}

func (r *Root) createFile(rel string, create func(full string) error) (*File, error) {
	p, err := r.resolveFile(rel)
	if err != nil {
		return nil, err
	}

	_, exists, err := r.stat(p.full)
	if err != nil {
		return nil, wrapIO(err, "failed to stat file", p.rel)
	}
	if exists {
		return nil, precondition(ErrFileAlreadyExists, "file already exists", p.rel)
	}

	if err := create(p.full); err != nil {
		return nil, wrapIO(err, "failed to create file", p.rel)
	}
	return r.loadFile(p)
}

// GetFile returns the regular file at rel. It fails with
// ErrFileDoesNotExist if rel is absent or not a regular file.
func (r *Root) GetFile(rel string) (*File, error) {
	p, err := r.resolveFile(rel)
	if err != nil {
		return nil, err
	}
	return r.loadFile(p)
}

// GetFileAbs is GetFile for an absolute path below the root.
func (r *Root) GetFileAbs(full string) (*File, error) {
	p, err := r.resolveAbs(full)
	if err != nil {
		return nil, err
	}
	return r.GetFile(p.rel)
}

// FileExists reports whether a regular file exists at rel. Invalid paths and
// backend failures report false.
func (r *Root) FileExists(rel string) bool {
	p, err := r.resolveFile(rel)
	if err != nil {
		return false
	}
	return r.isKind(p, false)
}

// FileExistsAbs is FileExists for an absolute path below the root.
func (r *Root) FileExistsAbs(full string) bool {
	p, err := r.resolveAbs(full)
	if err != nil {
		return false
	}
	return r.FileExists(p.rel)
}

// RemoveFile deletes the regular file at rel. It fails with
// ErrFileDoesNotExist if there is none.
func (r *Root) RemoveFile(rel string) error {
	f, err := r.GetFile(rel)
	if err != nil {
		return err
	}
	return f.Delete()
}

// RemoveFileAbs is RemoveFile for an absolute path below the root.
func (r *Root) RemoveFileAbs(full string) error {
	p, err := r.resolveAbs(full)
	if err != nil {
		return err
	}
	return r.RemoveFile(p.rel)
}

// loadFile stats p and builds a File from the result.
func (r *Root) loadFile(p element) (*File, error) {
	info, exists, err := r.stat(p.full)
	if err != nil {
		return nil, wrapIO(err, "failed to stat file", p.rel)
	}
	if !exists || !info.Mode().IsRegular() {
		return nil, precondition(ErrFileDoesNotExist, "file does not exist", p.rel)
	}

	f := &File{element: p}
	f.fill(info)
	return f, nil
}

func (f *File) fill(info fs.FileInfo) {
	f.name, f.ext = rootpath.SplitName(rootpath.Base(f.rel))
	f.size = info.Size()
}

// Refresh re-reads the file's metadata. It fails with ErrFileDoesNotExist if
// the file has disappeared.
func (f *File) Refresh() error {
	if err := f.checkValid(); err != nil {
		return err
	}
	fresh, err := f.root.loadFile(f.element)
	if err != nil {
		return err
	}
	*f = *fresh
	return nil
}

// Directory returns the directory containing the file.
func (f *File) Directory() (*Directory, error) {
	if err := f.checkValid(); err != nil {
		return nil, err
	}
	return f.root.loadDirectory(f.parent())
}

// Delete removes the file. On success the File becomes invalid.
func (f *File) Delete() (err error) {
	if err := f.checkValid(); err != nil {
		return err
	}
	defer f.root.track(logging.OpRemoveFile, f.rel, time.Now(), &err)

	if err := f.root.backend.Remove(f.full); err != nil {
		return wrapIO(err, "failed to delete file", f.rel)
	}
	f.invalidate()
	return nil
}

// Contents reads the whole file.
func (f *File) Contents() ([]byte, error) {
	if err := f.checkValid(); err != nil {
		return nil, err
	}
	data, err := f.root.backend.ReadFile(f.full)
	if err != nil {
		return nil, wrapIO(err, "failed to read file", f.rel)
	}
	return data, nil
}

// Write replaces the file's contents and refreshes its size. It returns f
// so calls can be chained.
func (f *File) Write(contents []byte) (_ *File, err error) {
	if err := f.checkValid(); err != nil {
		return nil, err
	}
	defer f.root.track(logging.OpWriteFile, f.rel, time.Now(), &err)

	if err := f.root.backend.WriteFile(f.full, contents, f.root.fileMode); err != nil {
		return nil, wrapIO(err, "failed to write file", f.rel)
	}
	if err := f.Refresh(); err != nil {
		return nil, err
	}
	return f, nil
}

// Move moves the file into the directory at targetRel, keeping its filename.
// The returned File describes the new location and f becomes invalid.
func (f *File) Move(targetRel string) (*File, error) {
	if err := f.checkValid(); err != nil {
		return nil, err
	}
	dir, err := f.root.GetDirectory(targetRel)
	if err != nil {
		return nil, err
	}
	return f.MoveTo(dir)
}

// MoveTo is Move with the target given as a Directory.
func (f *File) MoveTo(dir *Directory) (moved *File, err error) {
	dest, err := f.destination(dir)
	if err != nil {
		return nil, err
	}
	defer f.root.track(logging.OpMoveFile, f.rel, time.Now(), &err)

	if err := f.root.backend.Rename(f.full, dest.full); err != nil {
		return nil, wrapIO(err, "failed to move file", f.rel)
	}
	f.invalidate()
	return f.root.loadFile(dest)
}

// Copy copies the file into the directory at targetRel, keeping its
// filename. The returned File describes the copy; f stays valid.
func (f *File) Copy(targetRel string) (*File, error) {
	if err := f.checkValid(); err != nil {
		return nil, err
	}
	dir, err := f.root.GetDirectory(targetRel)
	if err != nil {
		return nil, err
	}
	return f.CopyTo(dir)
}

// CopyTo is Copy with the target given as a Directory.
func (f *File) CopyTo(dir *Directory) (copied *File, err error) {
	dest, err := f.destination(dir)
	if err != nil {
		return nil, err
	}
	defer f.root.track(logging.OpCopyFile, f.rel, time.Now(), &err)

	if err := f.root.backend.Copy(f.full, dest.full); err != nil {
		return nil, wrapIO(err, "failed to copy file", f.rel)
	}
	return f.root.loadFile(dest)
}

// destination validates dir as a move or copy target and returns the path
// the file would occupy inside it.
func (f *File) destination(dir *Directory) (element, error) {
	if err := f.checkValid(); err != nil {
		return element{}, err
	}
	if dir == nil {
		return element{}, errors.New(errors.CodeInvalidInput, "target directory is nil")
	}
	if err := dir.checkValid(); err != nil {
		return element{}, err
	}
	if dir.root != f.root {
		return element{}, errors.WithContext(
			errors.New(errors.CodeInvalidInput, "target directory belongs to a different root"),
			"path", dir.full)
	}
	if !f.root.isKind(dir.element, true) {
		return element{}, precondition(ErrDirectoryDoesNotExist, "target directory does not exist", dir.rel)
	}

	dest := f.root.child(dir.element, f.Filename())
	if _, exists, err := f.root.stat(dest.full); err != nil {
		return element{}, wrapIO(err, "failed to stat destination", dest.rel)
	} else if exists {
		return element{}, precondition(ErrFileAlreadyExists, "destination already exists", dest.rel)
	}
	return dest, nil
}

// Rename changes the file's final path component to newName, which must not
// contain a separator. f is updated in place and returned.
func (f *File) Rename(newName string) (_ *File, err error) {
	if err := f.checkValid(); err != nil {
		return nil, err
	}
	if err := validateName(newName); err != nil {
		return nil, err
	}
	defer f.root.track(logging.OpRenameFile, f.rel, time.Now(), &err)

	dest := f.root.child(f.parent(), newName)
	if dest.rel == f.rel {
		if err := f.Refresh(); err != nil {
			return nil, err
		}
		return f, nil
	}
	if _, exists, err := f.root.stat(dest.full); err != nil {
		return nil, wrapIO(err, "failed to stat destination", dest.rel)
	} else if exists {
		return nil, precondition(ErrFileAlreadyExists, "destination already exists", dest.rel)
	}

	if err := f.root.backend.Rename(f.full, dest.full); err != nil {
		return nil, wrapIO(err, "failed to rename file", f.rel)
	}
	f.element = dest
	if err := f.Refresh(); err != nil {
		return nil, err
	}
	return f, nil
}

// validateName checks a single path component.
func validateName(name string) error {
	switch {
	case name == "" || name == "." || name == "..":
		return errors.Newf(errors.CodeInvalidInput, "invalid name %q", name)
	case strings.ContainsAny(name, "/\\"):
		return errors.Newf(errors.CodeInvalidInput, "name %q contains a separator", name)
	case strings.ContainsRune(name, 0):
		return errors.Newf(errors.CodeInvalidInput, "name %q contains a NUL byte", name)
	}
	return nil
}
