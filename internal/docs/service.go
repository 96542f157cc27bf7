package docs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/sha1n/mcp-scout-server/internal/config"
)

// LockFilename is the name of the sync lock file
const LockFilename = "sync.lock"

// Service coordinates mirror sync, indexing, and search over the local
// documentation corpus.
type Service struct {
	settings *config.DocsSettings
	git      *GitClient
	indexer  *Indexer
	state    *IndexState
	lock     *FileLock
	index    bleve.Index
	ready    bool
	mu       sync.RWMutex
}

// NewService creates the docs index service.
func NewService(settings *config.DocsSettings) (*Service, error) {
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}

	if err := os.MkdirAll(settings.IndexDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	state, err := LoadIndexState(filepath.Join(settings.IndexDir, StateFilename))
	if err != nil {
		return nil, fmt.Errorf("failed to load index state: %w", err)
	}

	filter := NewFileFilter(settings.MaxFileSize)

	return &Service{
		settings: settings,
		git:      NewGitClient(),
		indexer:  NewIndexer(settings.IndexDir, filter),
		state:    state,
		lock:     NewFileLock(filepath.Join(settings.IndexDir, LockFilename)),
	}, nil
}

// Initialize prepares the service with leader/follower sync logic: the
// first instance to grab the lock syncs and indexes, the rest wait and
// then open the result read-only.
func (s *Service) Initialize(ctx context.Context) error {
	acquired, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if acquired {
		slog.Info("Acquired sync leader lock, syncing docs mirror")
		if err := s.sync(ctx); err != nil {
			slog.Error("Docs mirror sync failed", "error", err)
			s.state.Error = err.Error()
			// Continue to open any existing index anyway
		}
		if err := s.saveState(); err != nil {
			slog.Error("Failed to save index state", "error", err)
		}
		if err := s.lock.Unlock(); err != nil {
			slog.Error("Failed to unlock", "error", err)
		}
	} else {
		slog.Info("Another instance is syncing the docs mirror, waiting")
		if err := s.lock.Lock(s.settings.SyncTimeout); err != nil {
			slog.Warn("Timeout waiting for sync, using existing index", "error", err)
		} else {
			if err := s.lock.Unlock(); err != nil {
				slog.Error("Failed to unlock", "error", err)
			}
		}
	}

	return s.openIndex()
}

// sync brings the mirror up to date and reindexes it when its content
// moved. A mirror without a git remote is indexed only when no index
// exists yet.
func (s *Service) sync(ctx context.Context) error {
	mirrorDir := s.settings.MirrorDir

	if s.settings.SyncURL != "" {
		if s.git.IsGitRepository(ctx, mirrorDir) {
			slog.Info("Fetching docs mirror updates")
			if err := s.git.Fetch(ctx, mirrorDir); err != nil {
				return err
			}
			if err := s.git.Reset(ctx, mirrorDir); err != nil {
				return err
			}
		} else {
			slog.Info("Cloning docs mirror", "url", s.settings.SyncURL)
			if err := s.git.Clone(ctx, s.settings.SyncURL, mirrorDir); err != nil {
				return err
			}
		}
	}

	var currentCommit string
	if s.git.IsGitRepository(ctx, mirrorDir) {
		commit, err := s.git.HeadCommit(ctx, mirrorDir)
		if err != nil {
			return err
		}
		currentCommit = commit
	}

	needsReindex := !s.indexer.Exists() ||
		(currentCommit != "" && currentCommit != s.state.LastCommit)
	if !needsReindex {
		slog.Info("Docs index already up to date")
		return nil
	}

	// Rebuild from scratch so pages removed from the mirror drop out.
	if s.indexer.Exists() {
		if err := s.indexer.DeleteIndex(); err != nil {
			return fmt.Errorf("failed to delete stale index: %w", err)
		}
	}

	slog.Info("Indexing docs mirror", "dir", mirrorDir)
	count, err := s.indexer.FullIndex(mirrorDir)
	if err != nil {
		return fmt.Errorf("full index failed: %w", err)
	}

	s.state.LastCommit = currentCommit
	s.state.LastSync = time.Now()
	s.state.PageCount = count
	s.state.Error = ""
	slog.Info("Docs index complete", "page_count", count)
	return nil
}

// openIndex opens the index read-only, if one exists.
func (s *Service) openIndex() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.indexer.Exists() {
		slog.Warn("No docs index available")
		s.ready = false
		return nil
	}

	index, err := s.indexer.OpenForRead()
	if err != nil {
		return fmt.Errorf("failed to open docs index: %w", err)
	}

	s.index = index
	s.ready = true
	slog.Info("Docs index ready", "page_count", s.state.PageCount)
	return nil
}

// saveState saves the index state to disk.
func (s *Service) saveState() error {
	return s.state.Save(filepath.Join(s.settings.IndexDir, StateFilename))
}

// IsReady returns true if the index is open for search.
func (s *Service) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Index returns the open index for searching.
func (s *Service) Index() (bleve.Index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ready || s.index == nil {
		return nil, fmt.Errorf("docs index not ready")
	}
	return s.index, nil
}

// GetSettings returns the service settings.
func (s *Service) GetSettings() *config.DocsSettings {
	return s.settings
}

// SetGitClient allows injecting a custom git client for testing.
func (s *Service) SetGitClient(client *GitClient) {
	s.git = client
}

// Close releases the open index.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index != nil {
		if err := s.index.Close(); err != nil {
			return fmt.Errorf("failed to close index: %w", err)
		}
		s.index = nil
	}

	s.ready = false
	return nil
}
