package billy

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmgilman/go/fsentity/fs/core"
	"github.com/jmgilman/go/fsentity/fs/fstest"
)

// TestLocalFS runs the fstest conformance suite against a local filesystem
// scoped to a fresh temporary directory per group.
func TestLocalFS(t *testing.T) {
	fstest.TestSuite(t, func() core.FS { return NewLocal(WithBase(t.TempDir())) })
}

// TestMemoryFS runs the fstest conformance suite against the memory filesystem.
func TestMemoryFS(t *testing.T) {
	fstest.TestSuite(t, func() core.FS { return NewMemory() })
}

// TestFS_Type verifies each constructor reports its filesystem type.
func TestFS_Type(t *testing.T) {
	if got := NewLocal().Type(); got != core.FSTypeLocal {
		t.Errorf("NewLocal().Type() = %v (%s), want %v", got, got, core.FSTypeLocal)
	}
	if got := NewMemory().Type(); got != core.FSTypeMemory {
		t.Errorf("NewMemory().Type() = %v (%s), want %v", got, got, core.FSTypeMemory)
	}
}

// TestWithBase verifies absolute names resolve below the configured base.
func TestWithBase(t *testing.T) {
	base := t.TempDir()
	fs := NewLocal(WithBase(base))

	if err := fs.WriteFile("/scoped.txt", []byte("scoped"), 0644); err != nil {
		t.Fatalf("WriteFile(/scoped.txt) error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(base, "scoped.txt"))
	if err != nil {
		t.Fatalf("os.ReadFile() error = %v", err)
	}
	if string(data) != "scoped" {
		t.Errorf("os.ReadFile() = %q, want %q", data, "scoped")
	}
}

// TestNormalize verifies the normalize helper function.
func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "test.txt", "test.txt"},
		{"with double slash", "/dir//file.txt", "/dir/file.txt"},
		{"with dot", "/dir/./file.txt", "/dir/file.txt"},
		{"with dotdot", "/dir/../file.txt", "/file.txt"},
		{"trailing slash", "/dir/", "/dir"},
		{"root", "/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize(tt.input)
			if got != tt.want {
				t.Errorf("normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestDirEntry_Methods verifies dirEntry implements fs.DirEntry correctly.
func TestDirEntry_Methods(t *testing.T) {
	fs := NewMemory()
	if err := fs.WriteFile("/test.txt", []byte("data"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	entries, err := fs.ReadDir("/")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("ReadDir() returned %d entries, want 1", len(entries))
	}

	entry := entries[0]
	if entry.Name() != "test.txt" {
		t.Errorf("DirEntry.Name() = %q, want %q", entry.Name(), "test.txt")
	}
	if entry.IsDir() {
		t.Error("DirEntry.IsDir() = true, want false")
	}
	if !entry.Type().IsRegular() {
		t.Errorf("DirEntry.Type() = %v, want regular", entry.Type())
	}
	info, err := entry.Info()
	if err != nil {
		t.Fatalf("DirEntry.Info() error = %v", err)
	}
	if info.Size() != 4 {
		t.Errorf("DirEntry.Info().Size() = %d, want 4", info.Size())
	}
}

// TestFS_ParentMustBeDirectory verifies writes below a regular file fail.
func TestFS_ParentMustBeDirectory(t *testing.T) {
	for name, fs := range map[string]*FS{
		"local":  NewLocal(WithBase(t.TempDir())),
		"memory": NewMemory(),
	} {
		t.Run(name, func(t *testing.T) {
			if err := fs.WriteFile("/plain", []byte("x"), 0644); err != nil {
				t.Fatalf("WriteFile(/plain) error = %v", err)
			}

			err := fs.WriteFile("/plain/child.txt", []byte("y"), 0644)
			if !errors.Is(err, core.ErrNotDir) {
				t.Errorf("WriteFile(/plain/child.txt) error = %v, want core.ErrNotDir", err)
			}
			err = fs.Mkdir("/plain/sub", 0755)
			if !errors.Is(err, core.ErrNotDir) {
				t.Errorf("Mkdir(/plain/sub) error = %v, want core.ErrNotDir", err)
			}
		})
	}
}

// TestFS_DirectoryGuards verifies file operations refuse directories.
func TestFS_DirectoryGuards(t *testing.T) {
	fs := NewMemory()
	if err := fs.Mkdir("/dir", 0755); err != nil {
		t.Fatalf("Mkdir(/dir) error = %v", err)
	}

	if _, err := fs.ReadFile("/dir"); !errors.Is(err, core.ErrIsDir) {
		t.Errorf("ReadFile(/dir) error = %v, want core.ErrIsDir", err)
	}
	if err := fs.WriteFile("/dir", []byte("x"), 0644); !errors.Is(err, core.ErrIsDir) {
		t.Errorf("WriteFile(/dir) error = %v, want core.ErrIsDir", err)
	}
	if err := fs.Touch("/dir", 0644); !errors.Is(err, core.ErrIsDir) {
		t.Errorf("Touch(/dir) error = %v, want core.ErrIsDir", err)
	}
	if err := fs.Copy("/dir", "/copy"); !errors.Is(err, core.ErrIsDir) {
		t.Errorf("Copy(/dir) error = %v, want core.ErrIsDir", err)
	}
}

// TestFS_RemoveNonEmpty verifies both backends report core.ErrNotEmpty.
func TestFS_RemoveNonEmpty(t *testing.T) {
	for name, fs := range map[string]*FS{
		"local":  NewLocal(WithBase(t.TempDir())),
		"memory": NewMemory(),
	} {
		t.Run(name, func(t *testing.T) {
			if err := fs.MkdirAll("/full/inner", 0755); err != nil {
				t.Fatalf("MkdirAll() error = %v", err)
			}
			err := fs.Remove("/full")
			if !errors.Is(err, core.ErrNotEmpty) {
				t.Errorf("Remove(/full) error = %v, want core.ErrNotEmpty", err)
			}
		})
	}
}

// TestFS_RenameSamePath verifies renaming onto itself is a no-op.
func TestFS_RenameSamePath(t *testing.T) {
	fs := NewMemory()
	if err := fs.WriteFile("/same.txt", []byte("same"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := fs.Rename("/same.txt", "/./same.txt"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	data, err := fs.ReadFile("/same.txt")
	if err != nil || string(data) != "same" {
		t.Errorf("ReadFile(/same.txt) = %q, %v; want %q, nil", data, err, "same")
	}
}

// TestFS_RenameMissingParent verifies Rename refuses to create directories.
func TestFS_RenameMissingParent(t *testing.T) {
	fs := NewLocal(WithBase(t.TempDir()))
	if err := fs.WriteFile("/move.txt", []byte("m"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	err := fs.Rename("/move.txt", "/nowhere/move.txt")
	if !errors.Is(err, iofs.ErrNotExist) {
		t.Errorf("Rename() error = %v, want fs.ErrNotExist", err)
	}
	if ok, _ := fs.Exists("/nowhere"); ok {
		t.Error("Exists(/nowhere) = true, want false")
	}
}

// TestFS_CopyLeavesNoStaging verifies a failed copy removes its staging file.
func TestFS_CopyLeavesNoStaging(t *testing.T) {
	fs := NewMemory()
	if err := fs.WriteFile("/src.txt", []byte("src"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := fs.Copy("/src.txt", "/missing/dst.txt"); err == nil {
		t.Fatal("Copy() into missing directory error = nil, want error")
	}

	entries, err := fs.ReadDir("/")
	if err != nil {
		t.Fatalf("ReadDir(/) error = %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("ReadDir(/) found staging file %q", e.Name())
		}
	}
}
