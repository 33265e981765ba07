// Package catalog implements the thread-safe catalog cache (spec.md §4.3):
// a mapping from library name to the set of known CatalogEntry records for
// that name, read concurrently by resolver workers and mutated only during
// the controlled population phase before resolution starts.
package catalog

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/trailib/supergemlock/internal/core/domain"
)

// shardCount is the number of internal locks the cache stripes across.
// Striping by a fast, non-cryptographic hash of the library name (rather
// than one global mutex) keeps concurrent reads from different resolver
// workers from contending on names that happen to be unrelated — the same
// tradeoff internal/adapters/fs/hasher.go makes when it reaches for xxhash
// instead of a cryptographic hash for file content fingerprinting.
const shardCount = 16

// Cache is the thread-safe catalog cache described in spec.md §4.3.
type Cache struct {
	shards [shardCount]shard
}

type shard struct {
	mu      sync.RWMutex
	entries map[string][]domain.CatalogEntry
}

// New returns an empty Cache.
func New() *Cache {
	c := &Cache{}
	for i := range c.shards {
		c.shards[i].entries = make(map[string][]domain.CatalogEntry)
	}
	return c
}

func (c *Cache) shardFor(name string) *shard {
	h := xxhash.Sum64String(name)
	return &c.shards[h%shardCount]
}

// VersionsFor returns a read-only view of the catalog entries known for
// name. It never blocks other readers of the same or different shards; it
// may briefly contend with a writer populating the same shard.
func (c *Cache) VersionsFor(name string) []domain.CatalogEntry {
	s := c.shardFor(name)
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.entries[name]
	if entries == nil {
		return nil
	}
	// Return a copy so the caller can't mutate the cache's backing array.
	out := make([]domain.CatalogEntry, len(entries))
	copy(out, entries)
	return out
}

// Add appends entry to the available set for its name. Duplicates by
// (name, version) are permitted by this version of the cache — the
// resolver deduplicates via its own "already resolved" check (spec.md
// §4.3).
func (c *Cache) Add(entry domain.CatalogEntry) {
	s := c.shardFor(entry.Name)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Name] = append(s.entries[entry.Name], entry)
}

// Populate adds every entry in entries to the cache. It is meant to be
// called once, before resolver workers start (spec.md §5: "writers only
// before resolver start").
func (c *Cache) Populate(entries []domain.CatalogEntry) {
	for _, e := range entries {
		c.Add(e)
	}
}
