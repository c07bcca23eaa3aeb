// Package fs provides file-based persistence: one JSON record per tool
// keyed by slug (the resume keystore) and one aggregated CSV per category.
package fs

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/toolindex/toolindex"
)

// Ensure Store implements toolindex.RecordStore at compile time.
var _ toolindex.RecordStore = (*Store)(nil)

// Store persists tool records under toolsDir and category CSV exports under
// dataDir. The seen-set is built from a directory scan at construction and
// extended as workers save records; all methods are safe for concurrent use.
type Store struct {
	toolsDir string
	dataDir  string

	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewStore creates both output directories if needed and indexes the
// already-persisted slugs.
func NewStore(toolsDir, dataDir string) (*Store, error) {
	if err := os.MkdirAll(toolsDir, 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(toolsDir)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		seen[strings.TrimSuffix(name, ".json")] = struct{}{}
	}

	return &Store{
		toolsDir: toolsDir,
		dataDir:  dataDir,
		seen:     seen,
	}, nil
}

func (s *Store) recordPath(slug string) string {
	return filepath.Join(s.toolsDir, slug+".json")
}

// Load retrieves a persisted record by slug.
func (s *Store) Load(slug string) (*toolindex.ToolRecord, error) {
	raw, err := os.ReadFile(s.recordPath(slug))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, toolindex.Errorf(toolindex.ENOTFOUND, "no record for slug %q", slug)
		}
		return nil, err
	}

	var record toolindex.ToolRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, toolindex.Errorf(toolindex.EINTERNAL, "corrupt record for slug %q: %v", slug, err)
	}
	return &record, nil
}

// Save persists a record under its slug. An already-persisted slug is a
// no-op: the existing record is immutable truth for resume purposes.
func (s *Store) Save(record *toolindex.ToolRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[record.Slug]; ok {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(record); err != nil {
		return err
	}

	if err := os.WriteFile(s.recordPath(record.Slug), buf.Bytes(), 0644); err != nil {
		return err
	}

	s.seen[record.Slug] = struct{}{}
	return nil
}

// Seen reports whether a record for slug has been persisted.
func (s *Store) Seen(slug string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.seen[slug]
	return ok
}
