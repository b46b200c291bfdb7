// Package rootpath resolves root-relative paths against a fixed root
// directory.
//
// A Resolver offers two explicit calling conventions: Resolve takes a path
// relative to the root and ResolveAbsolute takes a path that must already lie
// below it. Containment is decided by whole path segments, so a root of
// "/srv/data" contains "/srv/data/a.txt" but not "/srv/database".
//
// All paths use forward slashes. Backslashes in input are treated as
// separators.
package rootpath

import (
	"path"
	"strings"

	"github.com/jmgilman/go/fsentity/errors"
)

// Kind classifies a path string relative to a Resolver's root.
type Kind int

const (
	// KindRelative marks a path that still needs resolution against the root.
	KindRelative Kind = iota
	// KindAbsolute marks a path that already lies below the root.
	KindAbsolute
)

// String returns a string representation of the Kind.
func (k Kind) String() string {
	if k == KindAbsolute {
		return "absolute"
	}
	return "relative"
}

// Resolver maps root-relative paths to absolute paths. It is immutable and
// safe for concurrent use.
type Resolver struct {
	root string
}

// New returns a Resolver for root. The root must be absolute; it is cleaned
// before use.
func New(root string) (*Resolver, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New(errors.CodeInvalidConfig, "root must not be empty")
	}

	cleaned := path.Clean(toSlash(root))
	if !path.IsAbs(cleaned) {
		return nil, errors.WithContext(
			errors.New(errors.CodeInvalidConfig, "root must be an absolute path"),
			"root", root,
		)
	}
	return &Resolver{root: cleaned}, nil
}

// Root returns the cleaned root directory.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve converts a root-relative path to an absolute path. The empty path
// and "." resolve to the root itself.
//
// Absolute input and paths that climb above the root are rejected with
// errors.CodeInvalidPath.
func (r *Resolver) Resolve(relative string) (string, error) {
	rel, err := Normalize(relative)
	if err != nil {
		return "", err
	}
	return r.join(rel), nil
}

// ResolveAbsolute validates that full lies below the root and returns its
// root-relative form. The root itself yields "".
func (r *Resolver) ResolveAbsolute(full string) (string, error) {
	cleaned := path.Clean(toSlash(full))
	if !path.IsAbs(cleaned) {
		return "", invalidPath("path is not absolute", full)
	}
	if !r.Contains(cleaned) {
		return "", errors.WithContextMap(
			errors.New(errors.CodeInvalidPath, "path is outside the root"),
			map[string]interface{}{"path": full, "root": r.root},
		)
	}
	return r.Relative(cleaned), nil
}

// Contains reports whether p is the root or lies below it. Relative input is
// never contained.
func (r *Resolver) Contains(p string) bool {
	p = toSlash(p)
	if !path.IsAbs(p) {
		return false
	}
	p = path.Clean(p)
	if r.root == "/" || p == r.root {
		return true
	}
	return strings.HasPrefix(p, r.root+"/")
}

// Classify reports whether p already lies below the root.
func (r *Resolver) Classify(p string) Kind {
	if r.Contains(p) {
		return KindAbsolute
	}
	return KindRelative
}

// Relative strips the root from full. The caller must ensure Contains(full).
func (r *Resolver) Relative(full string) string {
	full = path.Clean(toSlash(full))
	if full == r.root {
		return ""
	}
	if r.root == "/" {
		return strings.TrimPrefix(full, "/")
	}
	return strings.TrimPrefix(full, r.root+"/")
}

func (r *Resolver) join(rel string) string {
	if rel == "" {
		return r.root
	}
	return path.Join(r.root, rel)
}

// Normalize cleans a root-relative path: backslashes become slashes, "." and
// ".." segments are resolved and surrounding slashes are trimmed. The root
// itself normalizes to "".
//
// Input that is absolute, contains a NUL byte or climbs above the root fails
// with errors.CodeInvalidPath.
func Normalize(relative string) (string, error) {
	if strings.ContainsRune(relative, 0) {
		return "", invalidPath("path contains a NUL byte", relative)
	}

	p := toSlash(relative)
	if path.IsAbs(p) {
		return "", invalidPath("expected a root-relative path", relative)
	}

	p = path.Clean(p)
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", invalidPath("path escapes root", relative)
	}
	if p == "." {
		return "", nil
	}
	return strings.Trim(p, "/"), nil
}

// Join joins root-relative elements into a normalized root-relative path.
func Join(elem ...string) string {
	p := path.Join(elem...)
	if p == "." {
		return ""
	}
	return strings.Trim(p, "/")
}

// Dir returns the root-relative parent of rel. Top-level entries have the
// root ("") as parent.
func Dir(rel string) string {
	d := path.Dir(rel)
	if d == "." || d == "/" {
		return ""
	}
	return d
}

// Base returns the final element of rel.
func Base(rel string) string {
	if rel == "" {
		return ""
	}
	return path.Base(rel)
}

// SplitName splits a file name at its last dot into stem and extension. The
// extension excludes the dot. A leading dot does not start an extension, so
// ".bashrc" has no extension and "archive.tar.gz" has extension "gz". A
// trailing dot is kept in the stem.
func SplitName(name string) (stem, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return name, ""
	}
	return name[:i], name[i+1:]
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

func invalidPath(message, p string) errors.PlatformError {
	return errors.WithContext(errors.New(errors.CodeInvalidPath, message), "path", p)
}
