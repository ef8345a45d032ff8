// Package history keeps a rolling, persisted record of past analyses.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/cropsight/cropsight/internal/utils"
	"github.com/cropsight/cropsight/pkg/types"
)

// DefaultCapacity bounds the rolling history length
const DefaultCapacity = 10

// Store is an append-only rolling history of prediction results backed by
// a JSON file. Entries are held newest first; the oldest entry is evicted
// once the capacity is exceeded.
type Store struct {
	path     string
	capacity int
	log      *logrus.Entry

	mu      sync.Mutex
	entries []types.HistoryEntry
}

// NewStore opens (or creates) a history store at path. Existing data is
// loaded eagerly; corrupt or unparsable data is logged and discarded so a
// bad file can never take the caller down.
func NewStore(path string, capacity int, logger *logrus.Entry) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = logrus.StandardLogger().WithField("component", "history")
	}

	s := &Store{path: path, capacity: capacity, log: logger}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.WithError(err).Warn("failed to read history file, starting empty")
		}
		return
	}

	var entries []types.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.WithError(err).Warn("history file is corrupt, discarding stored history")
		return
	}

	if len(entries) > s.capacity {
		entries = entries[:s.capacity]
	}
	s.entries = entries
}

// Append records one entry at the head of the history, evicting the oldest
// entry if the store is full, and persists the new state.
func (s *Store) Append(entry types.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]types.HistoryEntry{entry}, s.entries...)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[:s.capacity]
	}

	return s.persist()
}

// persist writes the history atomically so a crash mid-write cannot leave
// a truncated file behind. Caller holds s.mu.
func (s *Store) persist() error {
	if err := utils.EnsureDir(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}

// Entries returns the history newest first. The returned slice is a copy;
// stored entries are never mutated.
func (s *Store) Entries() []types.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the current history length
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Capacity returns the maximum history length
func (s *Store) Capacity() int {
	return s.capacity
}
