package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bigendian/newswire/app/feed"
)

const storeFile = "items.json"

// Store persists the deduplicated item collection as a single JSON file
// under the cache root. Every save is a wholesale rewrite.
type Store struct {
	path string
}

func New(cacheDir string) *Store {
	return &Store{path: filepath.Join(cacheDir, storeFile)}
}

// Path returns the location of the durable store file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted collection. A missing store yields an empty
// collection; an unreadable or undecodable store is an error and is never
// silently treated as empty.
func (s *Store) Load() ([]feed.Item, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read item store: %w", err)
	}

	var items []feed.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("item store %s is corrupt: %w", s.path, err)
	}

	return items, nil
}

// Merge concatenates fresh items onto the existing collection and
// deduplicates by identity. The first occurrence of an identity wins, so a
// stored item keeps its derived fields when a duplicate arrives with
// different ones. The result is ordered oldest first with undated items
// leading; ties keep insertion order.
func Merge(existing, fresh []feed.Item) []feed.Item {
	combined := make([]feed.Item, 0, len(existing)+len(fresh))
	combined = append(combined, existing...)
	combined = append(combined, fresh...)

	seen := make(map[feed.Identity]struct{}, len(combined))
	merged := make([]feed.Item, 0, len(combined))
	for _, item := range combined {
		id := item.Identity()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, item)
	}

	feed.SortOldestFirst(merged)
	return merged
}

// Save rewrites the store wholesale, staging to a temporary file and
// renaming it into place so a failed write never clobbers the previous
// store contents.
func (s *Store) Save(items []feed.Item) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode item store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".items-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary store file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write item store: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write item store: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace item store: %w", err)
	}

	return nil
}
