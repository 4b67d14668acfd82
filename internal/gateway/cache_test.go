package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"revtracker/internal/domain"
	"revtracker/internal/usecase"
)

// countingStore records how often each method was hit.
type countingStore struct {
	reads    int
	updates  int
	replaces int
	appends  int
	records  []domain.Record
}

func (s *countingStore) ReadTable(ctx context.Context, table string) ([]domain.Record, error) {
	s.reads++
	return s.records, nil
}

func (s *countingStore) BatchUpdate(ctx context.Context, table string, updates []usecase.RangeUpdate) error {
	s.updates++
	return nil
}

func (s *countingStore) ReplaceTable(ctx context.Context, table string, header []string, rows [][]string) error {
	s.replaces++
	return nil
}

func (s *countingStore) AppendRow(ctx context.Context, table string, values []string) error {
	s.appends++
	return nil
}

func TestCachedStore_ServesRepeatReadsFromMemory(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{records: []domain.Record{{"Month": "Apr-2024"}}}
	store := NewCachedStore(inner, time.Minute)

	for i := 0; i < 3; i++ {
		records, err := store.ReadTable(ctx, "Master Data")
		assert.NoError(t, err)
		assert.Len(t, records, 1)
	}

	assert.Equal(t, 1, inner.reads)
}

func TestCachedStore_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{}
	store := NewCachedStore(inner, time.Minute)

	clock := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	_, _ = store.ReadTable(ctx, "Master Data")
	clock = clock.Add(59 * time.Second)
	_, _ = store.ReadTable(ctx, "Master Data")
	assert.Equal(t, 1, inner.reads)

	clock = clock.Add(2 * time.Second)
	_, _ = store.ReadTable(ctx, "Master Data")
	assert.Equal(t, 2, inner.reads)
}

func TestCachedStore_WritesInvalidateTheirTable(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{}
	store := NewCachedStore(inner, time.Minute)

	_, _ = store.ReadTable(ctx, "Master Data")
	_, _ = store.ReadTable(ctx, "Partner List")
	assert.Equal(t, 2, inner.reads)

	assert.NoError(t, store.BatchUpdate(ctx, "Master Data", []usecase.RangeUpdate{{}}))
	assert.Equal(t, 1, inner.updates)

	// Master Data refetches, Partner List is still cached.
	_, _ = store.ReadTable(ctx, "Master Data")
	_, _ = store.ReadTable(ctx, "Partner List")
	assert.Equal(t, 3, inner.reads)
}

func TestCachedStore_ZeroTTLDisablesCaching(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{}
	store := NewCachedStore(inner, 0)

	_, _ = store.ReadTable(ctx, "Master Data")
	_, _ = store.ReadTable(ctx, "Master Data")
	assert.Equal(t, 2, inner.reads)
}
