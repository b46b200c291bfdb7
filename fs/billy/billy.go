package billy

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/uuid"
	"github.com/jmgilman/go/fsentity/fs/core"
)

// FS adapts a billy.Filesystem to core.FS.
// Local and in-memory filesystems share this type and differ only in the
// wrapped billy implementation and the reported core.FSType.
type FS struct {
	bfs    billy.Filesystem
	fsType core.FSType
}

var _ core.FS = (*FS)(nil)

// Option configures filesystem creation.
type Option func(*config)

type config struct {
	base string
}

// WithBase sets the directory the local filesystem is rooted at.
// Names passed to the filesystem are still absolute; they are resolved
// below base. Defaults to "/".
func WithBase(base string) Option {
	return func(c *config) {
		c.base = base
	}
}

// NewLocal creates a go-billy-backed local filesystem.
// The returned filesystem is rooted at the filesystem root ("/") unless
// WithBase says otherwise.
func NewLocal(opts ...Option) *FS {
	cfg := config{base: "/"}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FS{
		bfs:    osfs.New(cfg.base),
		fsType: core.FSTypeLocal,
	}
}

// NewMemory creates a go-billy-backed in-memory filesystem.
// The filesystem is initially empty apart from "/".
func NewMemory(_ ...Option) *FS {
	return &FS{
		bfs:    memfs.New(),
		fsType: core.FSTypeMemory,
	}
}

// Type returns the filesystem type this adapter was created with.
func (b *FS) Type() core.FSType {
	return b.fsType
}

// normalize converts paths to use forward slashes consistently.
func normalize(name string) string {
	return filepath.ToSlash(filepath.Clean(name))
}

// dirEntry wraps fs.FileInfo to implement fs.DirEntry.
type dirEntry struct {
	info fs.FileInfo
}

func (d *dirEntry) Name() string               { return d.info.Name() }
func (d *dirEntry) IsDir() bool                { return d.info.IsDir() }
func (d *dirEntry) Type() fs.FileMode          { return d.info.Mode().Type() }
func (d *dirEntry) Info() (fs.FileInfo, error) { return d.info, nil }

// ReadFS

// Stat returns file metadata for the named file.
func (b *FS) Stat(name string) (fs.FileInfo, error) {
	name = normalize(name)
	info, err := b.bfs.Stat(name)
	if err != nil {
		return nil, pathError("stat", name, err)
	}
	return info, nil
}

// ReadDir reads the named directory and returns its entries.
// Reading a regular file fails with core.ErrNotDir.
func (b *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	name = normalize(name)
	info, err := b.bfs.Stat(name)
	if err != nil {
		return nil, pathError("readdir", name, err)
	}
	// memfs happily lists the (empty) children of a regular file.
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: core.ErrNotDir}
	}

	infos, err := b.bfs.ReadDir(name)
	if err != nil {
		return nil, pathError("readdir", name, err)
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = &dirEntry{info: info}
	}
	return entries, nil
}

// ReadFile reads the named file and returns its contents.
func (b *FS) ReadFile(name string) ([]byte, error) {
	name = normalize(name)
	info, err := b.bfs.Stat(name)
	if err != nil {
		return nil, pathError("open", name, err)
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: name, Err: core.ErrIsDir}
	}

	f, err := b.bfs.Open(name)
	if err != nil {
		return nil, pathError("open", name, err)
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// Exists reports whether the named file or directory exists.
func (b *FS) Exists(name string) (bool, error) {
	_, err := b.bfs.Stat(normalize(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// WriteFS

// WriteFile writes data to the named file, creating it if necessary.
// Both billy implementations create missing parents on open; this adapter
// refuses instead so callers see the same failure on every backend.
func (b *FS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	name = normalize(name)
	if err := b.checkParent("open", name); err != nil {
		return err
	}
	if err := b.rejectDir("open", name); err != nil {
		return err
	}

	f, err := b.bfs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return pathError("open", name, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return pathError("write", name, err)
	}
	return f.Close()
}

// Touch creates the named file if it does not exist. An existing file keeps
// its contents and gets a new modification time when the underlying
// filesystem implements billy.Change.
func (b *FS) Touch(name string, perm fs.FileMode) error {
	name = normalize(name)
	info, err := b.bfs.Stat(name)
	switch {
	case err == nil && info.IsDir():
		return &fs.PathError{Op: "touch", Path: name, Err: core.ErrIsDir}
	case err == nil:
		if ch, ok := b.bfs.(billy.Change); ok {
			now := time.Now()
			return ch.Chtimes(name, now, now)
		}
		return nil
	case !os.IsNotExist(err):
		return pathError("touch", name, err)
	}

	if err := b.checkParent("touch", name); err != nil {
		return err
	}
	f, err := b.bfs.OpenFile(name, os.O_WRONLY|os.O_CREATE, perm)
	if err != nil {
		return pathError("touch", name, err)
	}
	return f.Close()
}

// Mkdir creates a new directory with the specified name and permission bits.
// Unlike MkdirAll, this will fail if the parent directory does not exist.
func (b *FS) Mkdir(name string, perm fs.FileMode) error {
	name = normalize(name)
	if _, err := b.bfs.Stat(name); err == nil {
		return &fs.PathError{Op: "mkdir", Path: name, Err: core.ErrExist}
	}
	if err := b.checkParent("mkdir", name); err != nil {
		return err
	}
	// The parent is known to exist, so MkdirAll creates exactly one level.
	if err := b.bfs.MkdirAll(name, perm); err != nil {
		return pathError("mkdir", name, err)
	}
	return nil
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (b *FS) MkdirAll(name string, perm fs.FileMode) error {
	name = normalize(name)
	if err := b.bfs.MkdirAll(name, perm); err != nil {
		return pathError("mkdir", name, err)
	}
	return nil
}

// ManageFS

// Remove removes the named file or empty directory.
func (b *FS) Remove(name string) error {
	name = normalize(name)
	info, err := b.bfs.Stat(name)
	if err != nil {
		return pathError("remove", name, err)
	}
	if info.IsDir() {
		infos, err := b.bfs.ReadDir(name)
		if err != nil {
			return pathError("remove", name, err)
		}
		if len(infos) > 0 {
			return &fs.PathError{Op: "remove", Path: name, Err: core.ErrNotEmpty}
		}
	}

	if err := b.bfs.Remove(name); err != nil {
		return pathError("remove", name, err)
	}
	return nil
}

// Rename renames (moves) oldpath to newpath. The parent of newpath must
// already exist.
func (b *FS) Rename(oldpath, newpath string) error {
	oldpath, newpath = normalize(oldpath), normalize(newpath)
	if oldpath == newpath {
		return nil
	}
	info, err := b.bfs.Stat(oldpath)
	if err != nil {
		return pathError("rename", oldpath, err)
	}
	if err := b.checkParent("rename", newpath); err != nil {
		return err
	}

	// memfs moves every stored path sharing oldpath as a string prefix, so
	// "/a/x" would drag "/a/x.bak" along. Regular files are moved by content.
	if b.fsType == core.FSTypeMemory && !info.IsDir() {
		return b.moveContents(oldpath, newpath, info.Mode().Perm())
	}

	if err := b.bfs.Rename(oldpath, newpath); err != nil {
		return pathError("rename", oldpath, err)
	}
	return nil
}

// Copy duplicates src into dst. The data is staged in a hidden sibling of
// dst and renamed into place, so dst is either untouched or complete.
func (b *FS) Copy(src, dst string) error {
	src, dst = normalize(src), normalize(dst)
	info, err := b.bfs.Stat(src)
	if err != nil {
		return pathError("copy", src, err)
	}
	if info.IsDir() {
		return &fs.PathError{Op: "copy", Path: src, Err: core.ErrIsDir}
	}

	data, err := b.ReadFile(src)
	if err != nil {
		return err
	}

	staging := path.Join(path.Dir(dst), fmt.Sprintf(".%s.%s.tmp", path.Base(dst), uuid.NewString()))
	if err := b.WriteFile(staging, data, info.Mode().Perm()); err != nil {
		return err
	}
	if err := b.Rename(staging, dst); err != nil {
		_ = b.bfs.Remove(staging)
		return err
	}
	return nil
}

func (b *FS) moveContents(oldpath, newpath string, perm fs.FileMode) error {
	data, err := b.ReadFile(oldpath)
	if err != nil {
		return err
	}
	if err := b.WriteFile(newpath, data, perm); err != nil {
		return err
	}
	if err := b.bfs.Remove(oldpath); err != nil {
		return pathError("rename", oldpath, err)
	}
	return nil
}

// checkParent fails with fs.ErrNotExist when the parent directory of name
// is missing and with core.ErrNotDir when it is a regular file.
func (b *FS) checkParent(op, name string) error {
	parent := path.Dir(name)
	if parent == "/" || parent == "." {
		return nil
	}
	info, err := b.bfs.Stat(parent)
	if err != nil {
		return pathError(op, name, err)
	}
	if !info.IsDir() {
		return &fs.PathError{Op: op, Path: name, Err: core.ErrNotDir}
	}
	return nil
}

func (b *FS) rejectDir(op, name string) error {
	if info, err := b.bfs.Stat(name); err == nil && info.IsDir() {
		return &fs.PathError{Op: op, Path: name, Err: core.ErrIsDir}
	}
	return nil
}

// pathError attaches op and name to err unless it already is a
// *fs.PathError. Bare os.ErrNotExist values from memfs keep matching
// errors.Is(err, fs.ErrNotExist).
func pathError(op, name string, err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return err
	}
	if os.IsNotExist(err) {
		err = fs.ErrNotExist
	}
	return &fs.PathError{Op: op, Path: name, Err: err}
}
