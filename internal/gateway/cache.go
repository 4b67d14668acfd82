package gateway

import (
	"context"
	"sync"
	"time"

	"revtracker/internal/domain"
	"revtracker/internal/usecase"
)

type cacheEntry struct {
	records   []domain.Record
	fetchedAt time.Time
}

// CachedStore wraps another RecordStore with a per-table read cache.
// Reads within the TTL are served from memory; every write delegates to
// the inner store and drops the cached copy of the touched table, so the
// next read observes the write. Staleness from other writers is bounded
// by the TTL only.
type CachedStore struct {
	inner usecase.RecordStore
	ttl   time.Duration
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCachedStore wraps inner with a TTL read cache. A non-positive TTL
// disables caching entirely.
func NewCachedStore(inner usecase.RecordStore, ttl time.Duration) *CachedStore {
	return &CachedStore{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (s *CachedStore) ReadTable(ctx context.Context, table string) ([]domain.Record, error) {
	if s.ttl <= 0 {
		return s.inner.ReadTable(ctx, table)
	}

	s.mu.Lock()
	entry, ok := s.entries[table]
	s.mu.Unlock()
	if ok && s.now().Sub(entry.fetchedAt) < s.ttl {
		return entry.records, nil
	}

	records, err := s.inner.ReadTable(ctx, table)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.entries[table] = cacheEntry{records: records, fetchedAt: s.now()}
	s.mu.Unlock()
	return records, nil
}

func (s *CachedStore) BatchUpdate(ctx context.Context, table string, updates []usecase.RangeUpdate) error {
	if err := s.inner.BatchUpdate(ctx, table, updates); err != nil {
		return err
	}
	s.Invalidate(table)
	return nil
}

func (s *CachedStore) ReplaceTable(ctx context.Context, table string, header []string, rows [][]string) error {
	if err := s.inner.ReplaceTable(ctx, table, header, rows); err != nil {
		return err
	}
	s.Invalidate(table)
	return nil
}

func (s *CachedStore) AppendRow(ctx context.Context, table string, values []string) error {
	if err := s.inner.AppendRow(ctx, table, values); err != nil {
		return err
	}
	s.Invalidate(table)
	return nil
}

// Invalidate drops the cached copy of one table.
func (s *CachedStore) Invalidate(table string) {
	s.mu.Lock()
	delete(s.entries, table)
	s.mu.Unlock()
}
