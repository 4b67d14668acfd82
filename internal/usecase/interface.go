package usecase

import (
	"context"

	"revtracker/internal/domain"
)

// Known store tables.
const (
	TableMaster   = "Master Data"
	TablePartners = "Partner List"
)

// RangeUpdate addresses one contiguous horizontal cell range of a table:
// a data row (0-based, header excluded), the header name of the first
// column to write, and one value per column from there. Updates in a batch
// must be independent of each other; the store may apply them in any order.
type RangeUpdate struct {
	Row         int
	StartColumn string
	Values      []string
}

// RecordStore is the tabular persistence boundary. Values are written
// USER_ENTERED style: the store parses numeric and date strings itself.
// The store offers no transactions and no locking; concurrent writers are
// last-writer-wins.
//
//go:generate mockgen -destination=mocks/mock_store.go -source=interface.go RecordStore
type RecordStore interface {
	// ReadTable returns all data rows of a table, keyed by its header row.
	ReadTable(ctx context.Context, table string) ([]domain.Record, error)
	// BatchUpdate applies a set of independent range writes in one call.
	BatchUpdate(ctx context.Context, table string, updates []RangeUpdate) error
	// ReplaceTable rewrites a table wholesale: header plus all rows.
	ReplaceTable(ctx context.Context, table string, header []string, rows [][]string) error
	// AppendRow adds one row after the last data row.
	AppendRow(ctx context.Context, table string, values []string) error
}
