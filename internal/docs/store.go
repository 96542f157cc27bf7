// Package docs serves pages from a locally mirrored documentation corpus
// and maintains an optional full-text index over it.
package docs

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sha1n/mcp-scout-server/internal/domain"
)

// ContentFilename is the per-page content file inside the mirror. The
// mirror lays out one directory per page, mirroring the site's URL
// structure minus the documentation namespace segment.
const ContentFilename = "index.md"

// Store reads pages from the mirror directory.
type Store struct {
	baseDir string
}

// NewStore creates a store rooted at the mirror directory.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// BaseDir returns the mirror root.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// ContentPath maps a site URL path to the mirror-relative content file.
// The path is lower-cased, the literal "docs" namespace segment is
// removed, and the content filename is appended:
//
//	/en-US/docs/Web/API/Element/mouseover_event
//	-> en-us/web/api/element/mouseover_event/index.md
func ContentPath(urlPath string) string {
	lowered := strings.ToLower(path.Clean("/" + urlPath))

	segments := strings.Split(strings.Trim(lowered, "/"), "/")
	kept := make([]string, 0, len(segments))
	removed := false
	for _, seg := range segments {
		if !removed && seg == "docs" {
			removed = true
			continue
		}
		if seg != "" {
			kept = append(kept, seg)
		}
	}

	return path.Join(append(kept, ContentFilename)...)
}

// Read loads and renders the page addressed by a site URL path. A missing
// file is domain.ErrNotFound carrying the attempted path.
func (s *Store) Read(urlPath string) (string, error) {
	rel := ContentPath(urlPath)
	full := filepath.Join(s.baseDir, filepath.FromSlash(rel))

	content, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrNotFound, full)
		}
		return "", fmt.Errorf("reading %s: %w", full, err)
	}

	return RenderMacros(string(content)), nil
}
