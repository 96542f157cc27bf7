package docs

import (
	"path/filepath"
	"strings"
)

// FileFilter decides which mirror files belong in the index. Only the
// per-page content files count; everything else in the mirror (assets,
// build metadata, dotfiles) is skipped.
type FileFilter struct {
	maxFileSize int64
}

// NewFileFilter creates a filter with the given size cap.
func NewFileFilter(maxFileSize int64) *FileFilter {
	return &FileFilter{maxFileSize: maxFileSize}
}

// ShouldIndex reports whether the mirror-relative path is an indexable
// content file.
func (f *FileFilter) ShouldIndex(relPath string, size int64) bool {
	relPath = filepath.ToSlash(relPath)

	if filepath.Base(relPath) != ContentFilename {
		return false
	}
	if size > f.maxFileSize {
		return false
	}
	for _, seg := range strings.Split(relPath, "/") {
		if strings.HasPrefix(seg, ".") {
			return false
		}
	}
	return true
}

// MaxFileSize returns the size cap.
func (f *FileFilter) MaxFileSize() int64 {
	return f.maxFileSize
}

// IsBinary checks if the content appears to be binary by looking for null
// bytes in the first 512 bytes, the same heuristic git uses.
func IsBinary(content []byte) bool {
	checkLen := min(len(content), 512)

	for i := range checkLen {
		if content[i] == 0 {
			return true
		}
	}
	return false
}
