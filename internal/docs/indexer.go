package docs

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/sha1n/mcp-scout-server/internal/domain"
)

const (
	// IndexDirname is the bleve index directory under the index dir.
	IndexDirname = "docs.bleve"

	// MaxBatchSize is the maximum number of documents per batch
	MaxBatchSize = 100

	// MaxBatchBytes is the maximum bytes per batch (10MB)
	MaxBatchBytes = 10 * 1024 * 1024
)

// Indexer manages the bleve index over the documentation mirror.
type Indexer struct {
	indexDir string
	filter   *FileFilter
}

// NewIndexer creates an indexer writing under indexDir.
func NewIndexer(indexDir string, filter *FileFilter) *Indexer {
	return &Indexer{
		indexDir: indexDir,
		filter:   filter,
	}
}

// Path returns the index directory path.
func (i *Indexer) Path() string {
	return filepath.Join(i.indexDir, IndexDirname)
}

// Exists checks whether an index is present on disk.
func (i *Indexer) Exists() bool {
	_, err := os.Stat(i.Path())
	return err == nil
}

// CreateIndexMapping creates the bleve index mapping for doc pages.
func CreateIndexMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	// Content field - analyzed for full-text search
	contentField := bleve.NewTextFieldMapping()
	contentField.Analyzer = standard.Name
	contentField.Store = true
	contentField.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt(domain.DocFieldContent, contentField)

	// Title and headings - analyzed, stored, boosted at query time
	titleField := bleve.NewTextFieldMapping()
	titleField.Analyzer = standard.Name
	titleField.Store = true
	docMapping.AddFieldMappingsAt(domain.DocFieldTitle, titleField)

	headingsField := bleve.NewTextFieldMapping()
	headingsField.Analyzer = standard.Name
	headingsField.Store = true
	docMapping.AddFieldMappingsAt(domain.DocFieldHeadings, headingsField)

	// Slug - keyword (not analyzed), stored for retrieval
	slugField := bleve.NewTextFieldMapping()
	slugField.Analyzer = keyword.Name
	slugField.Store = true
	docMapping.AddFieldMappingsAt(domain.DocFieldSlug, slugField)

	// ID - stored but not indexed (we use the document ID)
	idField := bleve.NewTextFieldMapping()
	idField.Index = false
	idField.Store = true
	docMapping.AddFieldMappingsAt(domain.DocFieldID, idField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = standard.Name

	return indexMapping
}

// OpenForWrite opens or creates the index for writing.
func (i *Indexer) OpenForWrite() (bleve.Index, error) {
	index, err := bleve.Open(i.Path())
	if err == nil {
		return index, nil
	}

	index, err = bleve.New(i.Path(), CreateIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	return index, nil
}

// OpenForRead opens the existing index for reading.
func (i *Indexer) OpenForRead() (bleve.Index, error) {
	index, err := bleve.Open(i.Path())
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	return index, nil
}

// DeleteIndex removes the index from disk.
func (i *Indexer) DeleteIndex() error {
	return os.RemoveAll(i.Path())
}

// FullIndex walks the mirror and indexes every content page.
// Returns the number of pages indexed.
func (i *Indexer) FullIndex(mirrorDir string) (count int, err error) {
	index, err := i.OpenForWrite()
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := index.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	batch := index.NewBatch()
	batchSize := 0
	batchBytes := 0
	totalIndexed := 0

	err = filepath.WalkDir(mirrorDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip entries with errors
		}

		relPath, err := filepath.Rel(mirrorDir, p)
		if err != nil {
			return nil
		}

		if d.IsDir() {
			if base := filepath.Base(relPath); strings.HasPrefix(base, ".") && relPath != "." {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if !i.filter.ShouldIndex(relPath, info.Size()) {
			return nil
		}

		content, err := os.ReadFile(p)
		if err != nil {
			return nil
		}
		if IsBinary(content) {
			return nil
		}

		doc := newDocPage(relPath, string(content))

		if err := batch.Index(doc.ID, doc); err != nil {
			return nil // Skip on indexing error
		}
		batchSize++
		batchBytes += len(content)

		if batchSize >= MaxBatchSize || batchBytes >= MaxBatchBytes {
			if err := index.Batch(batch); err != nil {
				return fmt.Errorf("batch index failed: %w", err)
			}
			totalIndexed += batchSize
			batch = index.NewBatch()
			batchSize = 0
			batchBytes = 0
		}

		return nil
	})

	if err != nil {
		return totalIndexed, err
	}

	if batchSize > 0 {
		if err := index.Batch(batch); err != nil {
			return totalIndexed, fmt.Errorf("final batch index failed: %w", err)
		}
		totalIndexed += batchSize
	}

	return totalIndexed, nil
}

// newDocPage builds the indexed document for one content file.
func newDocPage(relPath, content string) domain.DocPage {
	pageDir := path.Dir(filepath.ToSlash(relPath))
	rendered := RenderMacros(content)

	return domain.DocPage{
		ID:       pageDir,
		Slug:     pageSlug(pageDir),
		Title:    ExtractTitle(content),
		Headings: strings.Join(ExtractHeadings(content), "\n"),
		Content:  rendered,
	}
}

// pageSlug reconstructs the site URL path for a mirror page directory by
// re-inserting the documentation namespace segment after the locale.
//
//	en-us/web/api/element/mouseover_event
//	-> /en-us/docs/web/api/element/mouseover_event
func pageSlug(pageDir string) string {
	locale, rest, found := strings.Cut(pageDir, "/")
	if !found {
		return "/" + pageDir
	}
	return "/" + locale + "/docs/" + rest
}
