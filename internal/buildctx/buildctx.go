// Package buildctx creates the build context tarball sent to the Docker Engine.
package buildctx

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/moby/go-archive"
	"github.com/moby/patternmatcher/ignorefile"

	"github.com/jarthianur/theia-builder/internal/fileutil"
	"github.com/jarthianur/theia-builder/internal/lock"
)

// IgnoreFile is the exclusion file read from the context root.
const IgnoreFile = ".dockerignore"

// Excludes returns the exclusion patterns for dir: the patterns of its
// .dockerignore, the tool's lock directory, and extra.
func Excludes(dir string, extra ...string) ([]string, error) {
	var patterns []string

	f, err := os.Open(filepath.Join(dir, IgnoreFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("open %s: %w", IgnoreFile, err)
	default:
		defer f.Close()
		patterns, err = ignorefile.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", IgnoreFile, err)
		}
	}

	patterns = append(patterns, lock.Dir)
	return append(patterns, extra...), nil
}

// Tar returns an uncompressed tar stream of dir honouring Excludes.
// The caller must close the returned reader.
func Tar(dir string, extra ...string) (io.ReadCloser, error) {
	if !fileutil.IsDir(dir) {
		return nil, fmt.Errorf("build context %s is not a directory", dir)
	}

	excludes, err := Excludes(dir, extra...)
	if err != nil {
		return nil, err
	}

	rc, err := archive.TarWithOptions(dir, &archive.TarOptions{
		ExcludePatterns: excludes,
	})
	if err != nil {
		return nil, fmt.Errorf("create build context: %w", err)
	}
	return rc, nil
}
