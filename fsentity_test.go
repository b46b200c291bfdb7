package fsentity

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fsentity/errors"
	"github.com/jmgilman/go/fsentity/fs/billy"
	"github.com/jmgilman/go/fsentity/internal/logging"
)

// forEachBackend runs fn against a fresh Root on the local disk and on the
// memory backend.
func forEachBackend(t *testing.T, fn func(t *testing.T, r *Root)) {
	t.Helper()

	t.Run("local", func(t *testing.T) {
		r, err := New(t.TempDir())
		require.NoError(t, err)
		fn(t, r)
	})

	t.Run("memory", func(t *testing.T) {
		backend := billy.NewMemory()
		require.NoError(t, backend.MkdirAll("/data", 0o755))
		r, err := New("/data", WithBackend(backend))
		require.NoError(t, err)
		fn(t, r)
	})
}

func requireCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, errors.GetCode(err), err.Error())
}

func TestNew(t *testing.T) {
	_, err := New("relative/root")
	requireCode(t, err, errors.CodeInvalidConfig)

	_, err = New(filepath.Join(t.TempDir(), "missing"))
	requireCode(t, err, errors.CodeInvalidConfig)

	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	_, err = New(file)
	requireCode(t, err, errors.CodeInvalidConfig)

	dir := t.TempDir()
	r, err := New(dir + "/")
	require.NoError(t, err)
	require.Equal(t, filepath.ToSlash(dir), r.Path())
	require.Equal(t, "local", r.Backend().Type().String())
	require.True(t, r.Resolver().Contains(filepath.ToSlash(dir)+"/x"))
}

func TestCreateFile(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		require.False(t, r.FileExists("notes.txt"))

		f, err := r.CreateFile("notes.txt")
		require.NoError(t, err)
		require.True(t, r.FileExists("notes.txt"))
		require.Equal(t, "notes", f.Name())
		require.Equal(t, "txt", f.Extension())
		require.Equal(t, "notes.txt", f.Filename())
		require.Equal(t, int64(0), f.Size())
		require.Equal(t, "notes.txt", f.Path())
		require.Equal(t, r.Path()+"/notes.txt", f.FullPath())

		_, err = r.CreateFile("notes.txt")
		require.ErrorIs(t, err, ErrFileAlreadyExists)
		requireCode(t, err, errors.CodeAlreadyExists)
	})
}

func TestCreateFile_OccupiedByDirectory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		_, err := r.CreateDirectory("docs")
		require.NoError(t, err)

		_, err = r.CreateFile("docs")
		require.ErrorIs(t, err, ErrFileAlreadyExists)
		require.False(t, r.FileExists("docs"))
	})
}

func TestCreateFile_MissingParent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		_, err := r.CreateFile("missing/notes.txt")
		requireCode(t, err, errors.CodeIO)
		require.ErrorIs(t, err, fs.ErrNotExist)
		require.False(t, r.DirectoryExists("missing"))
	})
}

func TestCreateFile_InvalidPaths(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		for _, rel := range []string{"../escape.txt", "a/../../escape.txt", "/etc/passwd", "", "."} {
			_, err := r.CreateFile(rel)
			requireCode(t, err, errors.CodeInvalidPath)
			require.False(t, r.FileExists(rel))
		}
	})
}

func TestCreateFileWithContents_Size(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		_, err := r.CreateDirectory("a")
		require.NoError(t, err)

		created, err := r.CreateFileWithContents("a/b.txt", []byte("X"))
		require.NoError(t, err)
		require.Equal(t, int64(1), created.Size())

		got, err := r.GetFile("a/b.txt")
		require.NoError(t, err)
		require.Equal(t, int64(len("X")), got.Size())
		require.Equal(t, "b", got.Name())
	})
}

func TestGetAndRemoveMissingFile(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		_, err := r.GetFile("ghost.txt")
		require.ErrorIs(t, err, ErrFileDoesNotExist)
		requireCode(t, err, errors.CodeNotFound)

		err = r.RemoveFile("ghost.txt")
		require.ErrorIs(t, err, ErrFileDoesNotExist)

		var pe errors.PlatformError
		require.True(t, errors.As(err, &pe))
		require.Equal(t, "ghost.txt", pe.Context()["path"])
	})
}

func TestGetFile_Directory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		_, err := r.CreateDirectory("docs")
		require.NoError(t, err)

		_, err = r.GetFile("docs")
		require.ErrorIs(t, err, ErrFileDoesNotExist)

		_, err = r.CreateFile("plain.txt")
		require.NoError(t, err)
		_, err = r.GetDirectory("plain.txt")
		require.ErrorIs(t, err, ErrDirectoryDoesNotExist)
		_, err = r.GetFile("plain.txt/inner")
		require.ErrorIs(t, err, ErrFileDoesNotExist)
	})
}

func TestRemoveFile(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		_, err := r.CreateFile("gone.txt")
		require.NoError(t, err)

		require.NoError(t, r.RemoveFile("gone.txt"))
		require.False(t, r.FileExists("gone.txt"))
	})
}

func TestWriteContentsRoundTrip(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		f, err := r.CreateFileWithContents("greeting.txt", []byte("a much longer initial body"))
		require.NoError(t, err)

		same, err := f.Write([]byte("hello"))
		require.NoError(t, err)
		require.Same(t, f, same)
		require.Equal(t, int64(5), f.Size())

		data, err := f.Contents()
		require.NoError(t, err)
		require.Equal(t, []byte("hello"), data)
	})
}

func TestFile_Directory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		_, err := r.CreateDirectory("docs")
		require.NoError(t, err)
		f, err := r.CreateFile("docs/readme.md")
		require.NoError(t, err)

		dir, err := f.Directory()
		require.NoError(t, err)
		require.Equal(t, "docs", dir.Path())
		require.Equal(t, "docs", dir.Name())

		top, err := r.CreateFile("top.txt")
		require.NoError(t, err)
		rootDir, err := top.Directory()
		require.NoError(t, err)
		require.True(t, rootDir.IsRoot())
		require.Equal(t, r.Path(), rootDir.FullPath())
	})
}

func TestFile_Delete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		f, err := r.CreateFile("temp.txt")
		require.NoError(t, err)

		require.NoError(t, f.Delete())
		require.False(t, r.FileExists("temp.txt"))
		require.False(t, f.Valid())

		_, err = f.Contents()
		require.ErrorIs(t, err, ErrInvalidEntity)
		requireCode(t, err, errors.CodeInvalidState)
		require.ErrorIs(t, f.Delete(), ErrInvalidEntity)
	})
}

func TestFile_MoveDestinationEquivalence(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		_, err := r.CreateDirectory("src")
		require.NoError(t, err)
		target, err := r.CreateDirectory("target")
		require.NoError(t, err)

		byString, err := r.CreateFileWithContents("src/one.txt", []byte("one"))
		require.NoError(t, err)
		byDir, err := r.CreateFileWithContents("src/two.txt", []byte("two"))
		require.NoError(t, err)

		movedString, err := byString.Move("target")
		require.NoError(t, err)
		movedDir, err := byDir.MoveTo(target)
		require.NoError(t, err)

		require.Equal(t, "target/one.txt", movedString.Path())
		require.Equal(t, "target/two.txt", movedDir.Path())
		require.True(t, r.FileExists("target/one.txt"))
		require.True(t, r.FileExists("target/two.txt"))
		require.False(t, r.FileExists("src/one.txt"))
		require.False(t, r.FileExists("src/two.txt"))

		data, err := movedDir.Contents()
		require.NoError(t, err)
		require.Equal(t, "two", string(data))

		require.False(t, byString.Valid())
		_, err = byString.Contents()
		require.ErrorIs(t, err, ErrInvalidEntity)
	})
}

func TestFile_MoveGuards(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		f, err := r.CreateFile("report.csv")
		require.NoError(t, err)

		_, err = f.Move("nowhere")
		require.ErrorIs(t, err, ErrDirectoryDoesNotExist)

		_, err = r.CreateDirectory("archive")
		require.NoError(t, err)
		_, err = r.CreateFileWithContents("archive/report.csv", []byte("older"))
		require.NoError(t, err)

		_, err = f.Move("archive")
		require.ErrorIs(t, err, ErrFileAlreadyExists)
		require.True(t, f.Valid())

		root, err := r.GetDirectory("")
		require.NoError(t, err)
		_, err = f.MoveTo(root)
		require.ErrorIs(t, err, ErrFileAlreadyExists)

		_, err = f.MoveTo(nil)
		requireCode(t, err, errors.CodeInvalidInput)
	})
}

func TestFile_MoveTo_DeletedDirectory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		f, err := r.CreateFile("a.txt")
		require.NoError(t, err)
		dir, err := r.CreateDirectory("vanishing")
		require.NoError(t, err)
		require.NoError(t, r.RemoveDirectory("vanishing"))

		_, err = f.MoveTo(dir)
		require.ErrorIs(t, err, ErrDirectoryDoesNotExist)
	})
}

func TestFile_Copy(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		src, err := r.CreateFileWithContents("data.json", []byte(`{"k":1}`))
		require.NoError(t, err)
		backup, err := r.CreateDirectory("backup")
		require.NoError(t, err)

		copied, err := src.Copy("backup")
		require.NoError(t, err)
		require.Equal(t, "backup/data.json", copied.Path())
		require.Equal(t, src.Size(), copied.Size())
		require.True(t, src.Valid())

		data, err := src.Contents()
		require.NoError(t, err)
		require.Equal(t, `{"k":1}`, string(data))

		_, err = src.CopyTo(backup)
		require.ErrorIs(t, err, ErrFileAlreadyExists)

		files, err := backup.Files()
		require.NoError(t, err)
		require.Len(t, files, 1)
	})
}

func TestFile_Rename(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		f, err := r.CreateFileWithContents("x.txt", []byte("payload"))
		require.NoError(t, err)
		_, err = r.CreateFileWithContents("x.txt.bak", []byte("backup"))
		require.NoError(t, err)

		renamed, err := f.Rename("y.txt")
		require.NoError(t, err)
		require.Same(t, f, renamed)

		require.True(t, r.FileExists("y.txt"))
		require.False(t, r.FileExists("x.txt"))
		require.True(t, r.FileExists("x.txt.bak"))
		require.Equal(t, "y", f.Name())
		require.Equal(t, "txt", f.Extension())
		require.Equal(t, "y.txt", f.Path())

		data, err := f.Contents()
		require.NoError(t, err)
		require.Equal(t, "payload", string(data))
	})
}

func TestFile_RenameInSubdirectory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		_, err := r.CreateDirectory("docs")
		require.NoError(t, err)
		f, err := r.CreateFile("docs/draft.md")
		require.NoError(t, err)

		_, err = f.Rename("final.txt")
		require.NoError(t, err)
		require.Equal(t, "docs/final.txt", f.Path())
		require.Equal(t, "final", f.Name())
		require.Equal(t, "txt", f.Extension())
	})
}

func TestFile_RenameGuards(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		f, err := r.CreateFile("a.txt")
		require.NoError(t, err)
		_, err = r.CreateFile("b.txt")
		require.NoError(t, err)

		_, err = f.Rename("b.txt")
		require.ErrorIs(t, err, ErrFileAlreadyExists)

		for _, name := range []string{"", ".", "..", "sub/c.txt", `sub\c.txt`} {
			_, err = f.Rename(name)
			requireCode(t, err, errors.CodeInvalidInput)
		}

		same, err := f.Rename("a.txt")
		require.NoError(t, err)
		require.Same(t, f, same)
		require.True(t, r.FileExists("a.txt"))
	})
}

func TestFile_Refresh(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		f, err := r.CreateFile("grow.log")
		require.NoError(t, err)

		require.NoError(t, r.Backend().WriteFile(f.FullPath(), []byte("appended"), 0o644))
		require.Equal(t, int64(0), f.Size())

		require.NoError(t, f.Refresh())
		require.Equal(t, int64(len("appended")), f.Size())

		require.NoError(t, r.Backend().Remove(f.FullPath()))
		require.ErrorIs(t, f.Refresh(), ErrFileDoesNotExist)
	})
}

func TestFile_ExtensionEdgeCases(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		tests := []struct {
			filename string
			name     string
			ext      string
		}{
			{"archive.tar.gz", "archive.tar", "gz"},
			{"Makefile", "Makefile", ""},
			{".env", ".env", ""},
		}
		for _, tt := range tests {
			f, err := r.CreateFile(tt.filename)
			require.NoError(t, err)
			require.Equal(t, tt.name, f.Name())
			require.Equal(t, tt.ext, f.Extension())
			require.Equal(t, tt.filename, f.Filename())
		}
	})
}

func TestZeroValueEntities(t *testing.T) {
	var f File
	_, err := f.Contents()
	require.ErrorIs(t, err, ErrInvalidEntity)

	var d Directory
	_, err = d.Files()
	require.ErrorIs(t, err, ErrInvalidEntity)
}

func TestAbsoluteVariants(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		_, err := r.CreateDirectory("docs")
		require.NoError(t, err)
		f, err := r.CreateFile("docs/a.txt")
		require.NoError(t, err)

		got, err := r.GetFileAbs(f.FullPath())
		require.NoError(t, err)
		require.Equal(t, "docs/a.txt", got.Path())
		require.True(t, r.FileExistsAbs(r.Path()+"/docs/a.txt"))
		require.True(t, r.DirectoryExistsAbs(r.Path()+"/docs"))

		// Looks like it contains the root, but is not below it.
		require.False(t, r.FileExistsAbs(r.Path()+"x/docs/a.txt"))
		_, err = r.GetFileAbs(r.Path() + "x/docs/a.txt")
		requireCode(t, err, errors.CodeInvalidPath)

		// Root-relative entry points never treat input as absolute.
		require.False(t, r.FileExists(f.FullPath()))

		dir, err := r.GetDirectoryAbs(r.Path() + "/docs")
		require.NoError(t, err)
		require.Equal(t, "docs", dir.Path())

		require.NoError(t, r.RemoveFileAbs(f.FullPath()))
		require.NoError(t, r.RemoveDirectoryAbs(r.Path()+"/docs"))
		require.False(t, r.DirectoryExists("docs"))
	})
}

func TestImport(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *Root) {
		src := fstest.MapFS{
			"site/index.html":  {Data: []byte("<h1>hi</h1>")},
			"site/css/app.css": {Data: []byte("body{}")},
		}

		require.NoError(t, r.Import(src, "site", "public"))

		f, err := r.GetFile("public/index.html")
		require.NoError(t, err)
		require.Equal(t, int64(len("<h1>hi</h1>")), f.Size())
		require.True(t, r.DirectoryExists("public/css"))

		err = r.Import(src, "site", "../outside")
		requireCode(t, err, errors.CodeInvalidPath)
	})
}

func TestImport_UsesRootModes(t *testing.T) {
	backend := billy.NewMemory()
	require.NoError(t, backend.MkdirAll("/imported", 0o755))
	r, err := New("/imported", WithBackend(backend), WithFileMode(0o600), WithDirMode(0o700))
	require.NoError(t, err)

	src := fstest.MapFS{
		"tree/docs/readme.md": {Data: []byte("# docs"), Mode: 0o644},
	}
	require.NoError(t, r.Import(src, "tree", "vendor"))

	info, err := backend.Stat("/imported/vendor/docs/readme.md")
	require.NoError(t, err)
	require.Equal(t, fs.FileMode(0o600), info.Mode().Perm())

	info, err = backend.Stat("/imported/vendor/docs")
	require.NoError(t, err)
	require.True(t, info.IsDir())
	require.Equal(t, fs.FileMode(0o700), info.Mode().Perm())
}

func TestOperationLogging(t *testing.T) {
	var buf bytes.Buffer
	backend := billy.NewMemory()
	require.NoError(t, backend.MkdirAll("/logged", 0o755))
	logger := logging.NewLogger(logging.LogConfig{Level: logging.LogLevelDebug, Output: &buf})

	r, err := New("/logged", WithBackend(backend), WithLogger(logger))
	require.NoError(t, err)

	_, err = r.CreateFile("a.txt")
	require.NoError(t, err)
	require.Contains(t, buf.String(), "operation=create_file")
	require.Contains(t, buf.String(), "backend=memory")

	buf.Reset()
	_, err = r.CreateFile("a.txt")
	require.Error(t, err)
	require.Contains(t, buf.String(), "level=WARN")
}

func TestModes(t *testing.T) {
	dir := t.TempDir()
	r, err := New(dir, WithFileMode(0o600))
	require.NoError(t, err)

	f, err := r.CreateFileWithContents("secret.txt", []byte("s"))
	require.NoError(t, err)
	info, err := os.Stat(f.FullPath())
	require.NoError(t, err)
	require.Equal(t, fs.FileMode(0o600), info.Mode().Perm())

	// osfs creates directories with a fixed mode; the memory backend keeps it.
	backend := billy.NewMemory()
	require.NoError(t, backend.MkdirAll("/modes", 0o755))
	mr, err := New("/modes", WithBackend(backend), WithDirMode(0o700))
	require.NoError(t, err)
	d, err := mr.CreateDirectory("private")
	require.NoError(t, err)
	info, err = backend.Stat(d.FullPath())
	require.NoError(t, err)
	require.True(t, info.IsDir())
	require.Equal(t, fs.FileMode(0o700), info.Mode().Perm())
}

func TestWrapIO_Classification(t *testing.T) {
	busy := wrapIO(&fs.PathError{Op: "remove", Path: "/x", Err: syscall.EBUSY}, "failed", "x")
	requireCode(t, busy, errors.CodeIO)
	require.True(t, errors.IsRetryable(busy))
	require.ErrorIs(t, busy, syscall.EBUSY)

	denied := wrapIO(&fs.PathError{Op: "open", Path: "/x", Err: fs.ErrPermission}, "failed", "x")
	require.False(t, errors.IsRetryable(denied))
	require.ErrorIs(t, denied, fs.ErrPermission)

	require.NoError(t, wrapIO(nil, "failed", "x"))
}
