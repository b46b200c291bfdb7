package fsentity

import (
	"io/fs"
	"path"
	"syscall"
	"time"

	"github.com/jmgilman/go/fsentity/errors"
	"github.com/jmgilman/go/fsentity/fs/billy"
	"github.com/jmgilman/go/fsentity/fs/core"
	"github.com/jmgilman/go/fsentity/internal/logging"
	"github.com/jmgilman/go/fsentity/rootpath"
)

const (
	// DefaultFileMode is the permission used for files created by a Root.
	DefaultFileMode fs.FileMode = 0o644
	// DefaultDirMode is the permission used for directories created by a Root.
	DefaultDirMode fs.FileMode = 0o755
	// DefaultConcurrency bounds the entries a Directory listing stats at once.
	DefaultConcurrency = 8
)

// Root is the resolution context shared by every File and Directory. It
// binds a root directory to a backend and is the only source of entities.
//
// A Root holds no mutable state after New returns and may be shared across
// goroutines.
type Root struct {
	resolver *rootpath.Resolver
	backend  core.FS
	logger   *logging.Logger
	fileMode fs.FileMode
	dirMode  fs.FileMode

	concurrency int
}

// Option configures a Root.
type Option func(*rootOptions)

type rootOptions struct {
	backend     core.FS
	logger      *logging.Logger
	fileMode    fs.FileMode
	dirMode     fs.FileMode
	concurrency int
}

// WithBackend sets the filesystem backend. Defaults to the local disk.
func WithBackend(backend core.FS) Option {
	return func(o *rootOptions) {
		o.backend = backend
	}
}

// WithLogger sets the logger used for operation logging. Defaults to a
// no-op logger.
func WithLogger(logger *logging.Logger) Option {
	return func(o *rootOptions) {
		o.logger = logger
	}
}

// WithFileMode sets the permission bits for created files.
func WithFileMode(mode fs.FileMode) Option {
	return func(o *rootOptions) {
		o.fileMode = mode
	}
}

// WithDirMode sets the permission bits for created directories.
func WithDirMode(mode fs.FileMode) Option {
	return func(o *rootOptions) {
		o.dirMode = mode
	}
}

// WithConcurrency bounds how many entries Files and Children load in
// parallel. Values below one mean one.
func WithConcurrency(n int) Option {
	return func(o *rootOptions) {
		o.concurrency = max(n, 1)
	}
}

// New returns a Root for the absolute directory root. The directory must
// already exist on the backend.
func New(root string, opts ...Option) (*Root, error) {
	o := rootOptions{
		fileMode:    DefaultFileMode,
		dirMode:     DefaultDirMode,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		o.backend = billy.NewLocal()
	}
	if o.logger == nil {
		o.logger = logging.NewNopLogger()
	}

	resolver, err := rootpath.New(root)
	if err != nil {
		return nil, err
	}

	info, err := o.backend.Stat(resolver.Root())
	if err != nil || !info.IsDir() {
		cause := err
		if cause == nil {
			cause = core.ErrNotDir
		}
		return nil, errors.WrapWithContext(cause, errors.CodeInvalidConfig, "root is not an existing directory",
			map[string]interface{}{"root": resolver.Root()})
	}

	return &Root{
		resolver: resolver,
		backend:  o.backend,
		logger:   o.logger.With("root", resolver.Root(), "backend", o.backend.Type().String()),
		fileMode: o.fileMode,
		dirMode:  o.dirMode,

		concurrency: o.concurrency,
	}, nil
}

// Path returns the absolute root directory.
func (r *Root) Path() string {
	return r.resolver.Root()
}

// Resolver returns the path resolver bound to the root.
func (r *Root) Resolver() *rootpath.Resolver {
	return r.resolver
}

// Backend returns the filesystem backend.
func (r *Root) Backend() core.FS {
	return r.backend
}

// Import copies the tree below srcRoot in src into the directory rel,
// creating missing directories on the way. Existing files are overwritten.
// Files and directories get the Root's modes, not the source's.
func (r *Root) Import(src fs.FS, srcRoot, rel string) (err error) {
	defer r.track(logging.OpImport, rel, time.Now(), &err)

	p, err := r.resolve(rel)
	if err != nil {
		return err
	}
	err = core.CopyFromFS(src, r.backend, srcRoot, p.full,
		core.WithCopyFileMode(r.fileMode), core.WithCopyDirMode(r.dirMode))
	if err != nil {
		return wrapIO(err, "failed to import tree", p.rel)
	}
	return nil
}

// element is the resolution state shared by File and Directory.
type element struct {
	root    *Root
	rel     string
	full    string
	invalid bool
}

// Path returns the root-relative path. The root directory itself is "".
func (e *element) Path() string {
	return e.rel
}

// FullPath returns the absolute path.
func (e *element) FullPath() string {
	return e.full
}

// Valid reports whether the entity may still be used. Entities become
// invalid after Delete and, for files, after Move.
func (e *element) Valid() bool {
	return e.root != nil && !e.invalid
}

func (e *element) checkValid() error {
	if e.Valid() {
		return nil
	}
	return precondition(ErrInvalidEntity, "entity is no longer valid", e.rel)
}

func (e *element) invalidate() {
	e.invalid = true
}

// resolve turns a root-relative path into an element.
func (r *Root) resolve(rel string) (element, error) {
	normalized, err := rootpath.Normalize(rel)
	if err != nil {
		return element{}, err
	}
	full, err := r.resolver.Resolve(normalized)
	if err != nil {
		return element{}, err
	}
	return element{root: r, rel: normalized, full: full}, nil
}

// child returns the element for the entry name inside parent. name comes
// from the backend and is used verbatim, so it is not normalized again.
func (r *Root) child(parent element, name string) element {
	return element{
		root: r,
		rel:  path.Join(parent.rel, name),
		full: path.Join(parent.full, name),
	}
}

// parent returns the element of the directory containing e. The root is its
// own parent.
func (e element) parent() element {
	if e.rel == "" {
		return e
	}
	rel := path.Dir(e.rel)
	if rel == "." {
		rel = ""
	}
	return element{root: e.root, rel: rel, full: path.Dir(e.full)}
}

// resolveAbs turns an absolute path below the root into an element.
func (r *Root) resolveAbs(full string) (element, error) {
	rel, err := r.resolver.ResolveAbsolute(full)
	if err != nil {
		return element{}, err
	}
	return r.resolve(rel)
}

// resolveFile is resolve for paths that must name a file, never the root.
func (r *Root) resolveFile(rel string) (element, error) {
	p, err := r.resolve(rel)
	if err != nil {
		return element{}, err
	}
	if p.rel == "" {
		return element{}, errors.WithContext(
			errors.New(errors.CodeInvalidPath, "the root is not a file"), "path", rel)
	}
	return p, nil
}

// stat reports what occupies full. A missing path is not an error.
func (r *Root) stat(full string) (fs.FileInfo, bool, error) {
	info, err := r.backend.Stat(full)
	if err == nil {
		return info, true, nil
	}
	// A regular file in the middle of the path means nothing is there.
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return nil, false, nil
	}
	return nil, false, err
}

// isKind is the predicate behind FileExists and DirectoryExists. Failures
// are logged and reported as absence.
func (r *Root) isKind(p element, wantDir bool) bool {
	info, ok, err := r.stat(p.full)
	if err != nil {
		r.logger.Debug("existence check failed", "path", p.rel, "error", err.Error())
		return false
	}
	return ok && info.IsDir() == wantDir && (wantDir || info.Mode().IsRegular())
}

func (r *Root) track(op logging.Operation, rel string, start time.Time, errp *error) {
	logging.LogOperation(r.logger, op, rel, time.Since(start), *errp)
}
