package fsentity

import (
	"io/fs"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jmgilman/go/fsentity/errors"
	"github.com/jmgilman/go/fsentity/internal/logging"
	"github.com/jmgilman/go/fsentity/rootpath"
)

// Directory is a snapshot of a directory below a Root, or of the root itself.
type Directory struct {
	element
	name string
}

// Name returns the directory's final path component. For the root this is
// the last element of the root path.
func (d *Directory) Name() string { return d.name }

// IsRoot reports whether d is the root directory.
func (d *Directory) IsRoot() bool { return d.rel == "" }

// CreateDirectory creates a single directory at rel. The parent must exist.
// It fails with ErrDirectoryAlreadyExists if anything already occupies rel.
func (r *Root) CreateDirectory(rel string) (*Directory, error) {
	p, err := r.resolve(rel)
	if err != nil {
		return nil, err
	}
	return r.createDirectory(p)
}

func (r *Root) createDirectory(p element) (d *Directory, err error) {
	defer r.track(logging.OpCreateDirectory, p.rel, time.Now(), &err)

	_, exists, err := r.stat(p.full)
	if err != nil {
		return nil, wrapIO(err, "failed to stat directory", p.rel)
	}
	if exists {
		return nil, precondition(ErrDirectoryAlreadyExists, "directory already exists", p.rel)
	}

	if err := r.backend.Mkdir(p.full, r.dirMode); err != nil {
		return nil, wrapIO(err, "failed to create directory", p.rel)
	}
	return r.loadDirectory(p)
}

// GetDirectory returns the directory at rel; "" is the root. It fails with
// ErrDirectoryDoesNotExist if rel is absent or not a directory.
func (r *Root) GetDirectory(rel string) (*Directory, error) {
	p, err := r.resolve(rel)
	if err != nil {
		return nil, err
	}
	return r.loadDirectory(p)
}

// GetDirectoryAbs is GetDirectory for an absolute path below the root.
func (r *Root) GetDirectoryAbs(full string) (*Directory, error) {
	p, err := r.resolveAbs(full)
	if err != nil {
		return nil, err
	}
	return r.loadDirectory(p)
}

// DirectoryExists reports whether a directory exists at rel. Invalid paths
// and backend failures report false.
func (r *Root) DirectoryExists(rel string) bool {
	p, err := r.resolve(rel)
	if err != nil {
		return false
	}
	return r.isKind(p, true)
}

// DirectoryExistsAbs is DirectoryExists for an absolute path below the root.
func (r *Root) DirectoryExistsAbs(full string) bool {
	p, err := r.resolveAbs(full)
	if err != nil {
		return false
	}
	return r.isKind(p, true)
}

// RemoveDirectory deletes the empty directory at rel. It fails with
// ErrDirectoryDoesNotExist if there is none.
func (r *Root) RemoveDirectory(rel string) error {
	d, err := r.GetDirectory(rel)
	if err != nil {
		return err
	}
	return d.Delete()
}

// RemoveDirectoryAbs is RemoveDirectory for an absolute path below the root.
func (r *Root) RemoveDirectoryAbs(full string) error {
	d, err := r.GetDirectoryAbs(full)
	if err != nil {
		return err
	}
	return d.Delete()
}

func (r *Root) loadDirectory(p element) (*Directory, error) {
	info, exists, err := r.stat(p.full)
	if err != nil {
		return nil, wrapIO(err, "failed to stat directory", p.rel)
	}
	if !exists || !info.IsDir() {
		return nil, precondition(ErrDirectoryDoesNotExist, "directory does not exist", p.rel)
	}

	name := rootpath.Base(p.rel)
	if name == "" {
		name = rootpath.Base(r.resolver.Root())
	}
	return &Directory{element: p, name: name}, nil
}

// Refresh checks that the directory still exists.
func (d *Directory) Refresh() error {
	if err := d.checkValid(); err != nil {
		return err
	}
	fresh, err := d.root.loadDirectory(d.element)
	if err != nil {
		return err
	}
	*d = *fresh
	return nil
}

// Files returns the regular files directly inside d, in backend order.
func (d *Directory) Files() ([]*File, error) {
	return listEntries(d, func(e fs.DirEntry) bool { return e.Type().IsRegular() }, d.root.loadFile)
}

// Children returns the subdirectories directly inside d, in backend order.
func (d *Directory) Children() ([]*Directory, error) {
	return listEntries(d, fs.DirEntry.IsDir, d.root.loadDirectory)
}

// listEntries resolves the entries of d accepted by keep. Entries are loaded
// concurrently, up to the Root's concurrency limit, and returned in listing
// order.
func listEntries[T any](d *Directory, keep func(fs.DirEntry) bool, load func(element) (T, error)) ([]T, error) {
	if err := d.checkValid(); err != nil {
		return nil, err
	}
	entries, err := d.root.backend.ReadDir(d.full)
	if err != nil {
		return nil, wrapIO(err, "failed to list directory", d.rel)
	}

	paths := make([]element, 0, len(entries))
	for _, entry := range entries {
		if keep(entry) {
			paths = append(paths, d.root.child(d.element, entry.Name()))
		}
	}

	results := make([]T, len(paths))
	var eg errgroup.Group
	eg.SetLimit(d.root.concurrency)
	for i, p := range paths {
		eg.Go(func() error {
			v, err := load(p)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// NewChild creates the subdirectory name inside d.
func (d *Directory) NewChild(name string) (*Directory, error) {
	if err := d.checkValid(); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	return d.root.createDirectory(d.root.child(d.element, name))
}

// Delete removes the directory, which must be empty. On success the
// Directory becomes invalid. The root cannot be deleted.
func (d *Directory) Delete() (err error) {
	if err := d.checkValid(); err != nil {
		return err
	}
	if d.IsRoot() {
		return errors.WithContext(
			errors.New(errors.CodeInvalidPath, "the root directory cannot be deleted"), "path", d.full)
	}
	defer d.root.track(logging.OpRemoveDirectory, d.rel, time.Now(), &err)

	if err := d.root.backend.Remove(d.full); err != nil {
		return wrapIO(err, "failed to delete directory", d.rel)
	}
	d.invalidate()
	return nil
}
