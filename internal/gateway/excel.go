package gateway

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"

	"revtracker/internal/domain"
	"revtracker/internal/usecase"
)

// resetPlaceholderSheet keeps a workbook non-empty while its only sheet
// is rebuilt. The name is unlikely to collide with a real table.
const resetPlaceholderSheet = "__reset__"

// ExcelStore implements the RecordStore interface against a local .xlsx
// workbook, one sheet per table. Every operation opens, mutates and saves
// the file; a mutex keeps operations on one store serialized. Reading a
// sheet that does not exist yet yields an empty table, and writes create
// their sheet on demand, so a fresh workbook bootstraps itself.
type ExcelStore struct {
	mu   sync.Mutex
	path string
}

// NewExcelStore creates a store over the workbook at path. The file itself
// is created lazily on the first write.
func NewExcelStore(path string) *ExcelStore {
	return &ExcelStore{path: path}
}

func (s *ExcelStore) ReadTable(ctx context.Context, table string) ([]domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(table); err != nil || idx < 0 {
		return nil, nil
	}
	rows, err := f.GetRows(table)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", table, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	records := make([]domain.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(domain.Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *ExcelStore) BatchUpdate(ctx context.Context, table string, updates []usecase.RangeUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(table)
	if err != nil || len(rows) == 0 {
		return fmt.Errorf("sheet %s has no header row", table)
	}
	header := rows[0]

	for _, u := range updates {
		col, err := columnIndex(header, u.StartColumn)
		if err != nil {
			return fmt.Errorf("failed to locate column in %s: %w", table, err)
		}
		for i, value := range u.Values {
			// +2 skips the header row and converts to 1-based.
			cell, err := excelize.CoordinatesToCellName(col+i+1, u.Row+2)
			if err != nil {
				return fmt.Errorf("failed to address cell in %s: %w", table, err)
			}
			if err := f.SetCellStr(table, cell, value); err != nil {
				return fmt.Errorf("failed to write cell in %s: %w", table, err)
			}
		}
	}
	return s.save(f)
}

func (s *ExcelStore) ReplaceTable(ctx context.Context, table string, header []string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	// Recreate the sheet so stale rows below the new extent disappear.
	// A workbook must keep at least one sheet, so when the target is the
	// only one a placeholder bridges the delete and is dropped again.
	placeholder := false
	if idx, err := f.GetSheetIndex(table); err == nil && idx >= 0 {
		if len(f.GetSheetList()) == 1 {
			if _, err := f.NewSheet(resetPlaceholderSheet); err != nil {
				return fmt.Errorf("failed to reset sheet %s: %w", table, err)
			}
			placeholder = true
		}
		if err := f.DeleteSheet(table); err != nil {
			return fmt.Errorf("failed to reset sheet %s: %w", table, err)
		}
	}
	if _, err := f.NewSheet(table); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", table, err)
	}
	if placeholder {
		if err := f.DeleteSheet(resetPlaceholderSheet); err != nil {
			return fmt.Errorf("failed to reset sheet %s: %w", table, err)
		}
	}

	if err := writeRow(f, table, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := writeRow(f, table, i+2, row); err != nil {
			return err
		}
	}
	return s.save(f)
}

func (s *ExcelStore) AppendRow(ctx context.Context, table string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(table); err != nil || idx < 0 {
		if _, err := f.NewSheet(table); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", table, err)
		}
	}
	rows, err := f.GetRows(table)
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", table, err)
	}
	if err := writeRow(f, table, len(rows)+1, values); err != nil {
		return err
	}
	return s.save(f)
}

func (s *ExcelStore) open() (*excelize.File, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return excelize.NewFile(), nil
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", s.path, err)
	}
	return f, nil
}

func (s *ExcelStore) save(f *excelize.File) error {
	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", s.path, err)
	}
	return nil
}

func writeRow(f *excelize.File, table string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to address row in %s: %w", table, err)
	}
	if err := f.SetSheetRow(table, cell, &values); err != nil {
		return fmt.Errorf("failed to write row in %s: %w", table, err)
	}
	return nil
}
