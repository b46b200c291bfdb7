package core

import (
	"io/fs"
	"path"
	"strings"
)

// CopyOption configures CopyFromFS.
type CopyOption func(*copyConfig)

type copyConfig struct {
	fileMode fs.FileMode
	dirMode  fs.FileMode
}

// WithCopyFileMode writes every file with mode instead of the source file's
// permission bits.
func WithCopyFileMode(mode fs.FileMode) CopyOption {
	return func(c *copyConfig) {
		c.fileMode = mode
	}
}

// WithCopyDirMode creates directories with mode. Defaults to 0755.
func WithCopyDirMode(mode fs.FileMode) CopyOption {
	return func(c *copyConfig) {
		c.dirMode = mode
	}
}

// CopyFromFS copies every regular file below srcRoot in src into dst below
// dstRoot, creating directories as needed. Empty source directories are
// created too, so the destination mirrors the source tree.
//
// Files keep the source's permission bits (0644 when the source reports
// none) unless WithCopyFileMode is given.
//
// src is typically an embed.FS, os.DirFS or testing/fstest.MapFS. dstRoot is
// an absolute path on dst.
//
// Example:
//
//	//go:embed site
//	var site embed.FS
//
//	err := core.CopyFromFS(site, backend, "site", "/srv/www")
func CopyFromFS(src fs.FS, dst FS, srcRoot, dstRoot string, opts ...CopyOption) error {
	cfg := copyConfig{dirMode: 0755}
	for _, opt := range opts {
		opt(&cfg)
	}
	if srcRoot == "" {
		srcRoot = "."
	}

	return fs.WalkDir(src, srcRoot, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel := filePath
		if srcRoot != "." {
			rel = strings.TrimPrefix(strings.TrimPrefix(filePath, srcRoot), "/")
		}
		target := path.Join(dstRoot, rel)

		if d.IsDir() {
			return dst.MkdirAll(target, cfg.dirMode)
		}
		if !d.Type().IsRegular() {
			return nil
		}

		data, err := fs.ReadFile(src, filePath)
		if err != nil {
			return err
		}

		perm := cfg.fileMode
		if perm == 0 {
			info, err := d.Info()
			if err != nil {
				return err
			}
			if perm = info.Mode().Perm(); perm == 0 {
				perm = 0644
			}
		}
		return dst.WriteFile(target, data, perm)
	})
}
