// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

const executableBits = 0o111

// Atomic writes a file by staging the content in a temp file next to the
// destination and renaming it into place on Commit.
type Atomic struct {
	// File is the staging file; callers write output here.
	File *os.File

	tmpName string
	outPath string
	srcInfo os.FileInfo
}

// NewAtomic stats the source file and creates a staging file in the
// destination directory. Callers must defer CleanupOnError.
func NewAtomic(src, dst string) (*Atomic, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("getting file info for %q: %w", src, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &Atomic{
		File:    tmp,
		tmpName: tmp.Name(),
		outPath: dst,
		srcInfo: info,
	}, nil
}

// IsExec reports whether the source file has any execute bit set.
func (a *Atomic) IsExec() bool {
	return a.srcInfo.Mode()&executableBits != 0
}

// CleanupOnError closes the staging file and removes it if the write failed.
func (a *Atomic) CleanupOnError(errp *error) {
	a.File.Close() //nolint:gosec // best-effort cleanup

	if *errp != nil {
		os.Remove(a.tmpName) //nolint:gosec // best-effort cleanup
	}
}

// Commit sets permissions on the staged file, closes it and renames it to the
// destination. With preserveTimestamps the source modification time is kept.
// Returns the size of the final file.
func (a *Atomic) Commit(perm os.FileMode, preserveTimestamps bool) (int64, error) {
	if err := os.Chmod(a.tmpName, perm); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err := a.File.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(a.tmpName, a.outPath); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	if preserveTimestamps {
		modTime := a.srcInfo.ModTime()
		if err := os.Chtimes(a.outPath, modTime, modTime); err != nil {
			return 0, fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	info, err := os.Stat(a.outPath)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", a.outPath, err)
	}

	return info.Size(), nil
}
