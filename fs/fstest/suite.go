// Package fstest provides a conformance test suite for validating filesystem
// backends against the core.FS interface contracts.
//
// The suite exercises every backend through absolute, slash-separated names
// below "/". Backends that talk to a real disk should be scoped to a scratch
// directory before being handed to the suite.
//
// Example usage:
//
//	func TestMyBackend(t *testing.T) {
//	    fstest.TestSuite(t, func() core.FS {
//	        return mybackend.New(t.TempDir())
//	    })
//	}
package fstest

import (
	"slices"
	"testing"

	"github.com/jmgilman/go/fsentity/fs/core"
)

// FSTestConfig configures the test suite to match filesystem behavior characteristics.
type FSTestConfig struct {
	// ImplicitParentDirs indicates files can be created without parent directories.
	// When true, WriteFile("/a/b/c.txt") succeeds even if "/a" and "/a/b" don't exist.
	ImplicitParentDirs bool

	// SkipTests lists specific test names to skip (for edge cases).
	// Format: "TestGroup/SubTest" (e.g., "WriteFS/WriteInNonExistentDir").
	SkipTests []string
}

// POSIXTestConfig returns configuration for POSIX-like filesystems (local, memory).
func POSIXTestConfig() FSTestConfig {
	return FSTestConfig{
		ImplicitParentDirs: false,
	}
}

func (c FSTestConfig) skipped(name string) bool {
	return slices.Contains(c.SkipTests, name)
}

// run executes fn as the subtest group/name unless configured to skip it.
func (c FSTestConfig) run(t *testing.T, group, name string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if c.skipped(group) || c.skipped(group+"/"+name) {
			t.Skip("Skipped by provider configuration")
		}
		fn(t)
	})
}

// TestSuite runs all conformance tests against a filesystem.
// The newFS function should return a fresh, empty filesystem for each test.
// Uses POSIXTestConfig() by default.
func TestSuite(t *testing.T, newFS func() core.FS) {
	TestSuiteWithConfig(t, newFS, POSIXTestConfig())
}

// TestSuiteWithConfig runs conformance tests with behavior configuration.
// Each group receives its own filesystem from newFS.
func TestSuiteWithConfig(t *testing.T, newFS func() core.FS, config FSTestConfig) {
	t.Run("ReadFS", func(t *testing.T) {
		if config.skipped("ReadFS") {
			t.Skip("Skipped by provider configuration")
		}
		TestReadFSWithConfig(t, newFS(), config)
	})

	t.Run("WriteFS", func(t *testing.T) {
		if config.skipped("WriteFS") {
			t.Skip("Skipped by provider configuration")
		}
		TestWriteFSWithConfig(t, newFS(), config)
	})

	t.Run("ManageFS", func(t *testing.T) {
		if config.skipped("ManageFS") {
			t.Skip("Skipped by provider configuration")
		}
		TestManageFSWithConfig(t, newFS(), config)
	})
}
