package docs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// StateVersion is the current schema version
	StateVersion = 1

	// StateFilename is the index state filename under the index dir
	StateFilename = "state.json"
)

// IndexState records what the index was built from, so startup can skip
// reindexing an unchanged mirror. It is read and written only during
// single-threaded initialization.
type IndexState struct {
	Version    int       `json:"version"`
	LastSync   time.Time `json:"last_sync"`
	LastCommit string    `json:"last_commit"`
	PageCount  int       `json:"page_count"`
	Error      string    `json:"error,omitempty"`
}

// NewIndexState creates an empty state.
func NewIndexState() *IndexState {
	return &IndexState{Version: StateVersion}
}

// LoadIndexState reads the state from disk, or returns a fresh one if the
// file does not exist.
func LoadIndexState(path string) (*IndexState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewIndexState(), nil
		}
		return nil, fmt.Errorf("failed to read index state: %w", err)
	}

	var state IndexState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse index state: %w", err)
	}
	return &state, nil
}

// Save writes the state to disk atomically.
// Uses write-to-temp + rename pattern to prevent corruption.
func (s *IndexState) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal index state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write state temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename state file: %w", err)
	}

	return nil
}
