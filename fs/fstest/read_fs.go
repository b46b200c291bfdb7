package fstest

import (
	"bytes"
	"errors"
	"io/fs"
	"sort"
	"testing"

	"github.com/jmgilman/go/fsentity/fs/core"
)

// TestReadFS tests read operations: Stat, ReadDir, ReadFile, Exists.
// Uses POSIXTestConfig() by default.
func TestReadFS(t *testing.T, filesystem core.FS) {
	TestReadFSWithConfig(t, filesystem, POSIXTestConfig())
}

// TestReadFSWithConfig tests read operations with behavior configuration.
func TestReadFSWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	testContent := []byte("read conformance content")

	// Setup: a file and a directory with two entries
	if err := filesystem.MkdirAll("/read/dir/sub", 0755); err != nil {
		t.Fatalf("MkdirAll(/read/dir/sub): setup failed: %v", err)
	}
	if err := filesystem.WriteFile("/read/file.txt", testContent, 0644); err != nil {
		t.Fatalf("WriteFile(/read/file.txt): setup failed: %v", err)
	}
	if err := filesystem.WriteFile("/read/dir/a.txt", []byte("a"), 0644); err != nil {
		t.Fatalf("WriteFile(/read/dir/a.txt): setup failed: %v", err)
	}

	config.run(t, "ReadFS", "StatFile", func(t *testing.T) {
		testReadFSStatFile(t, filesystem, testContent)
	})
	config.run(t, "ReadFS", "StatDir", func(t *testing.T) {
		testReadFSStatDir(t, filesystem)
	})
	config.run(t, "ReadFS", "StatNotExist", func(t *testing.T) {
		testReadFSStatNotExist(t, filesystem)
	})
	config.run(t, "ReadFS", "ReadDir", func(t *testing.T) {
		testReadFSReadDir(t, filesystem)
	})
	config.run(t, "ReadFS", "ReadDirOnFile", func(t *testing.T) {
		testReadFSReadDirOnFile(t, filesystem)
	})
	config.run(t, "ReadFS", "ReadFile", func(t *testing.T) {
		testReadFSReadFile(t, filesystem, testContent)
	})
	config.run(t, "ReadFS", "ReadFileNotExist", func(t *testing.T) {
		testReadFSReadFileNotExist(t, filesystem)
	})
	config.run(t, "ReadFS", "Exists", func(t *testing.T) {
		testReadFSExists(t, filesystem)
	})
}

// testReadFSStatFile tests Stat() on a regular file.
func testReadFSStatFile(t *testing.T, filesystem core.FS, testContent []byte) {
	info, err := filesystem.Stat("/read/file.txt")
	if err != nil {
		t.Fatalf("Stat(/read/file.txt): got error %v, want nil", err)
	}
	if info.IsDir() {
		t.Errorf("Stat(/read/file.txt).IsDir(): got true, want false")
	}
	if info.Name() != "file.txt" {
		t.Errorf("Stat(/read/file.txt).Name(): got %q, want %q", info.Name(), "file.txt")
	}
	if info.Size() != int64(len(testContent)) {
		t.Errorf("Stat(/read/file.txt).Size(): got %d, want %d", info.Size(), len(testContent))
	}
}

// testReadFSStatDir tests Stat() on a directory.
func testReadFSStatDir(t *testing.T, filesystem core.FS) {
	info, err := filesystem.Stat("/read/dir")
	if err != nil {
		t.Fatalf("Stat(/read/dir): got error %v, want nil", err)
	}
	if !info.IsDir() {
		t.Errorf("Stat(/read/dir).IsDir(): got false, want true")
	}
}

// testReadFSStatNotExist tests Stat() on a missing path.
func testReadFSStatNotExist(t *testing.T, filesystem core.FS) {
	_, err := filesystem.Stat("/read/missing.txt")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat(/read/missing.txt): got error %v, want fs.ErrNotExist", err)
	}
}

// testReadFSReadDir tests ReadDir() lists files and directories.
func testReadFSReadDir(t *testing.T, filesystem core.FS) {
	entries, err := filesystem.ReadDir("/read/dir")
	if err != nil {
		t.Fatalf("ReadDir(/read/dir): got error %v, want nil", err)
	}

	got := make(map[string]bool, len(entries))
	for _, e := range entries {
		got[e.Name()] = e.IsDir()
	}
	want := map[string]bool{"a.txt": false, "sub": true}
	if len(got) != len(want) {
		names := make([]string, 0, len(got))
		for name := range got {
			names = append(names, name)
		}
		sort.Strings(names)
		t.Fatalf("ReadDir(/read/dir): got entries %v, want a.txt and sub", names)
	}
	for name, isDir := range want {
		if got[name] != isDir {
			t.Errorf("ReadDir(/read/dir): entry %q IsDir() = %v, want %v", name, got[name], isDir)
		}
	}
}

// testReadFSReadDirOnFile tests ReadDir() refuses regular files.
func testReadFSReadDirOnFile(t *testing.T, filesystem core.FS) {
	if _, err := filesystem.ReadDir("/read/file.txt"); err == nil {
		t.Errorf("ReadDir(/read/file.txt): got nil error, want error")
	}
}

// testReadFSReadFile tests ReadFile() returns full contents.
func testReadFSReadFile(t *testing.T, filesystem core.FS, testContent []byte) {
	data, err := filesystem.ReadFile("/read/file.txt")
	if err != nil {
		t.Fatalf("ReadFile(/read/file.txt): got error %v, want nil", err)
	}
	if !bytes.Equal(data, testContent) {
		t.Errorf("ReadFile(/read/file.txt): got %q, want %q", data, testContent)
	}
}

// testReadFSReadFileNotExist tests ReadFile() on a missing file.
func testReadFSReadFileNotExist(t *testing.T, filesystem core.FS) {
	_, err := filesystem.ReadFile("/read/missing.txt")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(/read/missing.txt): got error %v, want fs.ErrNotExist", err)
	}
}

// testReadFSExists tests Exists() for files, directories and missing paths.
func testReadFSExists(t *testing.T, filesystem core.FS) {
	tests := []struct {
		name string
		want bool
	}{
		{"/read/file.txt", true},
		{"/read/dir", true},
		{"/read/missing.txt", false},
		{"/nowhere/at/all", false},
	}
	for _, tt := range tests {
		got, err := filesystem.Exists(tt.name)
		if err != nil {
			t.Errorf("Exists(%q): got error %v, want nil", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Exists(%q): got %v, want %v", tt.name, got, tt.want)
		}
	}
}
