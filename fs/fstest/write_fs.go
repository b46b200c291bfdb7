package fstest

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fsentity/fs/core"
)

// TestWriteFS tests write operations: WriteFile, Touch, Mkdir, MkdirAll.
// Uses POSIXTestConfig() by default.
func TestWriteFS(t *testing.T, filesystem core.FS) {
	TestWriteFSWithConfig(t, filesystem, POSIXTestConfig())
}

// TestWriteFSWithConfig tests write operations with behavior configuration.
func TestWriteFSWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	config.run(t, "WriteFS", "WriteFile", func(t *testing.T) {
		testWriteFSWriteFile(t, filesystem)
	})
	config.run(t, "WriteFS", "WriteFileTruncates", func(t *testing.T) {
		testWriteFSWriteFileTruncates(t, filesystem)
	})
	config.run(t, "WriteFS", "WriteInNonExistentDir", func(t *testing.T) {
		testWriteFSWriteInNonExistentDir(t, filesystem, config)
	})
	config.run(t, "WriteFS", "TouchCreates", func(t *testing.T) {
		testWriteFSTouchCreates(t, filesystem)
	})
	config.run(t, "WriteFS", "TouchKeepsContents", func(t *testing.T) {
		testWriteFSTouchKeepsContents(t, filesystem)
	})
	config.run(t, "WriteFS", "Mkdir", func(t *testing.T) {
		testWriteFSMkdir(t, filesystem)
	})
	config.run(t, "WriteFS", "MkdirExisting", func(t *testing.T) {
		testWriteFSMkdirExisting(t, filesystem)
	})
	config.run(t, "WriteFS", "MkdirMissingParent", func(t *testing.T) {
		testWriteFSMkdirMissingParent(t, filesystem)
	})
	config.run(t, "WriteFS", "MkdirAll", func(t *testing.T) {
		testWriteFSMkdirAll(t, filesystem)
	})
}

// testWriteFSWriteFile tests WriteFile() creates a file with the given data.
func testWriteFSWriteFile(t *testing.T, filesystem core.FS) {
	testData := []byte("test data for WriteFile")
	if err := filesystem.WriteFile("/writefile.txt", testData, 0644); err != nil {
		t.Fatalf("WriteFile(/writefile.txt): got error %v, want nil", err)
	}

	data, err := filesystem.ReadFile("/writefile.txt")
	if err != nil {
		t.Fatalf("ReadFile(/writefile.txt): got error %v, want nil", err)
	}
	if !bytes.Equal(data, testData) {
		t.Errorf("ReadFile(/writefile.txt): got %q, want %q", data, testData)
	}
}

// testWriteFSWriteFileTruncates tests WriteFile() replaces longer content.
func testWriteFSWriteFileTruncates(t *testing.T, filesystem core.FS) {
	if err := filesystem.WriteFile("/truncate.txt", []byte("a much longer first body"), 0644); err != nil {
		t.Fatalf("WriteFile(/truncate.txt): setup failed: %v", err)
	}
	if err := filesystem.WriteFile("/truncate.txt", []byte("short"), 0644); err != nil {
		t.Fatalf("WriteFile(/truncate.txt): got error %v, want nil", err)
	}

	data, err := filesystem.ReadFile("/truncate.txt")
	if err != nil {
		t.Fatalf("ReadFile(/truncate.txt): got error %v, want nil", err)
	}
	if string(data) != "short" {
		t.Errorf("ReadFile(/truncate.txt): got %q, want %q", data, "short")
	}
}

// testWriteFSWriteInNonExistentDir tests WriteFile() below a missing directory.
func testWriteFSWriteInNonExistentDir(t *testing.T, filesystem core.FS, config FSTestConfig) {
	err := filesystem.WriteFile("/missing/parent/file.txt", []byte("x"), 0644)
	if config.ImplicitParentDirs {
		if err != nil {
			t.Errorf("WriteFile(/missing/parent/file.txt): got error %v, want nil", err)
		}
		return
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("WriteFile(/missing/parent/file.txt): got error %v, want fs.ErrNotExist", err)
	}
	if ok, _ := filesystem.Exists("/missing"); ok {
		t.Errorf("Exists(/missing) after failed WriteFile: got true, want false")
	}
}

// testWriteFSTouchCreates tests Touch() creates an empty file.
func testWriteFSTouchCreates(t *testing.T, filesystem core.FS) {
	if err := filesystem.Touch("/touched.txt", 0644); err != nil {
		t.Fatalf("Touch(/touched.txt): got error %v, want nil", err)
	}

	info, err := filesystem.Stat("/touched.txt")
	if err != nil {
		t.Fatalf("Stat(/touched.txt): got error %v, want nil", err)
	}
	if info.IsDir() || info.Size() != 0 {
		t.Errorf("Stat(/touched.txt): got dir=%v size=%d, want empty regular file", info.IsDir(), info.Size())
	}
}

// testWriteFSTouchKeepsContents tests Touch() leaves existing data alone.
func testWriteFSTouchKeepsContents(t *testing.T, filesystem core.FS) {
	if err := filesystem.WriteFile("/keep.txt", []byte("keep me"), 0644); err != nil {
		t.Fatalf("WriteFile(/keep.txt): setup failed: %v", err)
	}
	if err := filesystem.Touch("/keep.txt", 0644); err != nil {
		t.Fatalf("Touch(/keep.txt): got error %v, want nil", err)
	}

	data, err := filesystem.ReadFile("/keep.txt")
	if err != nil {
		t.Fatalf("ReadFile(/keep.txt): got error %v, want nil", err)
	}
	if string(data) != "keep me" {
		t.Errorf("ReadFile(/keep.txt) after Touch: got %q, want %q", data, "keep me")
	}
}

// testWriteFSMkdir tests Mkdir() creates a single directory.
func testWriteFSMkdir(t *testing.T, filesystem core.FS) {
	if err := filesystem.Mkdir("/newdir", 0755); err != nil {
		t.Fatalf("Mkdir(/newdir): got error %v, want nil", err)
	}

	info, err := filesystem.Stat("/newdir")
	if err != nil {
		t.Fatalf("Stat(/newdir): got error %v, want nil", err)
	}
	if !info.IsDir() {
		t.Errorf("Stat(/newdir).IsDir(): got false, want true")
	}
}

// testWriteFSMkdirExisting tests Mkdir() on a present path.
func testWriteFSMkdirExisting(t *testing.T, filesystem core.FS) {
	if err := filesystem.Mkdir("/twice", 0755); err != nil {
		t.Fatalf("Mkdir(/twice): setup failed: %v", err)
	}
	err := filesystem.Mkdir("/twice", 0755)
	if !errors.Is(err, fs.ErrExist) {
		t.Errorf("Mkdir(/twice) second call: got error %v, want fs.ErrExist", err)
	}
}

// testWriteFSMkdirMissingParent tests Mkdir() is not recursive.
func testWriteFSMkdirMissingParent(t *testing.T, filesystem core.FS) {
	err := filesystem.Mkdir("/absent/child", 0755)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Mkdir(/absent/child): got error %v, want fs.ErrNotExist", err)
	}
	if ok, _ := filesystem.Exists("/absent"); ok {
		t.Errorf("Exists(/absent) after failed Mkdir: got true, want false")
	}
}

// testWriteFSMkdirAll tests MkdirAll() creates parents and is idempotent.
func testWriteFSMkdirAll(t *testing.T, filesystem core.FS) {
	if err := filesystem.MkdirAll("/deep/nested/tree", 0755); err != nil {
		t.Fatalf("MkdirAll(/deep/nested/tree): got error %v, want nil", err)
	}
	for _, name := range []string{"/deep", "/deep/nested", "/deep/nested/tree"} {
		info, err := filesystem.Stat(name)
		if err != nil {
			t.Errorf("Stat(%q): got error %v, want nil", name, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("Stat(%q).IsDir(): got false, want true", name)
		}
	}

	if err := filesystem.MkdirAll("/deep/nested/tree", 0755); err != nil {
		t.Errorf("MkdirAll(/deep/nested/tree) second call: got error %v, want nil", err)
	}
}
