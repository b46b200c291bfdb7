package fstest

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fsentity/fs/core"
)

// TestManageFS tests file management: Remove, Rename, Copy.
// Uses POSIXTestConfig() by default.
func TestManageFS(t *testing.T, filesystem core.FS) {
	TestManageFSWithConfig(t, filesystem, POSIXTestConfig())
}

// TestManageFSWithConfig tests file management with behavior configuration.
func TestManageFSWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	config.run(t, "ManageFS", "RemoveSingleFile", func(t *testing.T) {
		testManageFSRemoveFile(t, filesystem)
	})
	config.run(t, "ManageFS", "RemoveEmptyDirectory", func(t *testing.T) {
		testManageFSRemoveEmptyDir(t, filesystem)
	})
	config.run(t, "ManageFS", "RemoveNonEmptyDirectory", func(t *testing.T) {
		testManageFSRemoveNonEmptyDir(t, filesystem)
	})
	config.run(t, "ManageFS", "RemoveNotExist", func(t *testing.T) {
		testManageFSRemoveNotExist(t, filesystem)
	})
	config.run(t, "ManageFS", "RenameFile", func(t *testing.T) {
		testManageFSRenameFile(t, filesystem)
	})
	config.run(t, "ManageFS", "RenameKeepsSiblings", func(t *testing.T) {
		testManageFSRenameKeepsSiblings(t, filesystem)
	})
	config.run(t, "ManageFS", "CopyFile", func(t *testing.T) {
		testManageFSCopyFile(t, filesystem)
	})
	config.run(t, "ManageFS", "CopyReplaces", func(t *testing.T) {
		testManageFSCopyReplaces(t, filesystem)
	})
}

// testManageFSRemoveFile tests Remove() single file deletion.
func testManageFSRemoveFile(t *testing.T, filesystem core.FS) {
	if err := filesystem.WriteFile("/testfile.txt", []byte("test file content"), 0644); err != nil {
		t.Fatalf("WriteFile(/testfile.txt): setup failed: %v", err)
	}

	if err := filesystem.Remove("/testfile.txt"); err != nil {
		t.Fatalf("Remove(/testfile.txt): got error %v, want nil", err)
	}

	_, err := filesystem.Stat("/testfile.txt")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat(/testfile.txt) after Remove: got error %v, want fs.ErrNotExist", err)
	}
}

// testManageFSRemoveEmptyDir tests Remove() empty directory deletion.
func testManageFSRemoveEmptyDir(t *testing.T, filesystem core.FS) {
	if err := filesystem.Mkdir("/emptydir", 0755); err != nil {
		t.Fatalf("Mkdir(/emptydir): setup failed: %v", err)
	}

	if err := filesystem.Remove("/emptydir"); err != nil {
		t.Fatalf("Remove(/emptydir): got error %v, want nil", err)
	}

	_, err := filesystem.Stat("/emptydir")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat(/emptydir) after Remove: got error %v, want fs.ErrNotExist", err)
	}
}

// testManageFSRemoveNonEmptyDir tests Remove() refuses a directory with entries.
func testManageFSRemoveNonEmptyDir(t *testing.T, filesystem core.FS) {
	if err := filesystem.Mkdir("/fulldir", 0755); err != nil {
		t.Fatalf("Mkdir(/fulldir): setup failed: %v", err)
	}
	if err := filesystem.WriteFile("/fulldir/file.txt", []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile(/fulldir/file.txt): setup failed: %v", err)
	}

	if err := filesystem.Remove("/fulldir"); err == nil {
		t.Fatalf("Remove(/fulldir): got nil error, want error")
	}

	if ok, _ := filesystem.Exists("/fulldir/file.txt"); !ok {
		t.Errorf("Exists(/fulldir/file.txt) after failed Remove: got false, want true")
	}
}

// testManageFSRemoveNotExist tests Remove() on a missing path.
func testManageFSRemoveNotExist(t *testing.T, filesystem core.FS) {
	err := filesystem.Remove("/does-not-exist.txt")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Remove(/does-not-exist.txt): got error %v, want fs.ErrNotExist", err)
	}
}

// testManageFSRenameFile tests Rename() across directories.
func testManageFSRenameFile(t *testing.T, filesystem core.FS) {
	testData := []byte("test file for rename")
	if err := filesystem.WriteFile("/oldfile.txt", testData, 0644); err != nil {
		t.Fatalf("WriteFile(/oldfile.txt): setup failed: %v", err)
	}
	if err := filesystem.Mkdir("/renamed", 0755); err != nil {
		t.Fatalf("Mkdir(/renamed): setup failed: %v", err)
	}

	if err := filesystem.Rename("/oldfile.txt", "/renamed/newfile.txt"); err != nil {
		t.Fatalf("Rename(/oldfile.txt, /renamed/newfile.txt): got error %v, want nil", err)
	}

	_, err := filesystem.Stat("/oldfile.txt")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat(/oldfile.txt) after Rename: got error %v, want fs.ErrNotExist", err)
	}

	data, err := filesystem.ReadFile("/renamed/newfile.txt")
	if err != nil {
		t.Fatalf("ReadFile(/renamed/newfile.txt) after Rename: got error %v, want nil", err)
	}
	if !bytes.Equal(data, testData) {
		t.Errorf("ReadFile(/renamed/newfile.txt) after Rename: got %q, want %q", data, testData)
	}
}

// testManageFSRenameKeepsSiblings tests Rename() leaves entries sharing a
// name prefix with the source in place.
func testManageFSRenameKeepsSiblings(t *testing.T, filesystem core.FS) {
	if err := filesystem.WriteFile("/notes", []byte("notes"), 0644); err != nil {
		t.Fatalf("WriteFile(/notes): setup failed: %v", err)
	}
	if err := filesystem.WriteFile("/notes.bak", []byte("backup"), 0644); err != nil {
		t.Fatalf("WriteFile(/notes.bak): setup failed: %v", err)
	}

	if err := filesystem.Rename("/notes", "/journal"); err != nil {
		t.Fatalf("Rename(/notes, /journal): got error %v, want nil", err)
	}

	data, err := filesystem.ReadFile("/notes.bak")
	if err != nil {
		t.Fatalf("ReadFile(/notes.bak) after Rename: got error %v, want nil", err)
	}
	if string(data) != "backup" {
		t.Errorf("ReadFile(/notes.bak) after Rename: got %q, want %q", data, "backup")
	}
}

// testManageFSCopyFile tests Copy() duplicates contents and keeps the source.
func testManageFSCopyFile(t *testing.T, filesystem core.FS) {
	testData := []byte("copy me")
	if err := filesystem.WriteFile("/copysrc.txt", testData, 0644); err != nil {
		t.Fatalf("WriteFile(/copysrc.txt): setup failed: %v", err)
	}
	if err := filesystem.Mkdir("/copies", 0755); err != nil {
		t.Fatalf("Mkdir(/copies): setup failed: %v", err)
	}

	if err := filesystem.Copy("/copysrc.txt", "/copies/copysrc.txt"); err != nil {
		t.Fatalf("Copy(/copysrc.txt, /copies/copysrc.txt): got error %v, want nil", err)
	}

	for _, name := range []string{"/copysrc.txt", "/copies/copysrc.txt"} {
		data, err := filesystem.ReadFile(name)
		if err != nil {
			t.Errorf("ReadFile(%q) after Copy: got error %v, want nil", name, err)
			continue
		}
		if !bytes.Equal(data, testData) {
			t.Errorf("ReadFile(%q) after Copy: got %q, want %q", name, data, testData)
		}
	}

	entries, err := filesystem.ReadDir("/copies")
	if err != nil {
		t.Fatalf("ReadDir(/copies): got error %v, want nil", err)
	}
	if len(entries) != 1 {
		t.Errorf("ReadDir(/copies): got %d entries, want 1 (no staging leftovers)", len(entries))
	}
}

// testManageFSCopyReplaces tests Copy() overwrites an existing destination.
func testManageFSCopyReplaces(t *testing.T, filesystem core.FS) {
	if err := filesystem.WriteFile("/fresh.txt", []byte("fresh"), 0644); err != nil {
		t.Fatalf("WriteFile(/fresh.txt): setup failed: %v", err)
	}
	if err := filesystem.WriteFile("/stale.txt", []byte("stale and longer"), 0644); err != nil {
		t.Fatalf("WriteFile(/stale.txt): setup failed: %v", err)
	}

	if err := filesystem.Copy("/fresh.txt", "/stale.txt"); err != nil {
		t.Fatalf("Copy(/fresh.txt, /stale.txt): got error %v, want nil", err)
	}

	data, err := filesystem.ReadFile("/stale.txt")
	if err != nil {
		t.Fatalf("ReadFile(/stale.txt): got error %v, want nil", err)
	}
	if string(data) != "fresh" {
		t.Errorf("ReadFile(/stale.txt) after Copy: got %q, want %q", data, "fresh")
	}
}
