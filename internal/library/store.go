package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// FileStore persists the local library cache as a single JSON blob.
//
// Discipline: every save replaces the whole blob, and server-origin
// entries are pruned first so a stale custom copy can never be replayed
// after the server becomes reachable again.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultStorePath places the cache under the user's home directory.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "library.json"
	}
	return filepath.Join(home, ".booklibrary", "library.json")
}

// Load reads the cached entries. A missing file is an empty library;
// a corrupt file is logged and treated as empty rather than blocking
// the whole library view.
func (s *FileStore) Load() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLocked()
}

func (s *FileStore) loadLocked() []Entry {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("[Library] Cache read failed")
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("[Library] Cache is corrupt, starting empty")
		return nil
	}
	return entries
}

// Save replaces the stored blob with the given entries, minus any
// server-origin ones.
func (s *FileStore) Save(entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveLocked(entries)
}

func (s *FileStore) saveLocked(entries []Entry) error {
	local := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Origin == OriginServer {
			continue
		}
		local = append(local, e)
	}

	data, err := json.MarshalIndent(local, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal library cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	// Write-then-rename so a crash mid-write cannot corrupt the blob.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write library cache: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace library cache: %w", err)
	}
	return nil
}

// Mutate loads, transforms and saves under one lock, so concurrent
// callers in the same process cannot interleave read-modify-write.
func (s *FileStore) Mutate(fn func(entries []Entry) ([]Entry, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := fn(s.loadLocked())
	if err != nil {
		return err
	}
	return s.saveLocked(entries)
}
