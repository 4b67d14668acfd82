package gateway

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"revtracker/internal/domain"
	"revtracker/internal/usecase"
)

const valueInputUserEntered = "USER_ENTERED"

// SheetsStore implements the RecordStore interface against one Google
// spreadsheet, one worksheet per table. All writes go through the Sheets
// API with USER_ENTERED input so numeric and date strings are parsed by
// the sheet itself.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string

	mu      sync.Mutex
	headers map[string][]string
}

// NewSheetsStore creates a store for the given spreadsheet. With an empty
// credentials file it falls back to application default credentials.
func NewSheetsStore(ctx context.Context, spreadsheetID, credentialsFile string) (*SheetsStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &SheetsStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		headers:       make(map[string][]string),
	}, nil
}

// ReadTable fetches the whole worksheet and keys every data row by the
// header row. Rows shorter than the header read as blank in the missing
// columns. The header is remembered for locating write ranges later.
func (s *SheetsStore) ReadTable(ctx context.Context, table string) ([]domain.Record, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, quoteSheet(table)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", table, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}

	header := make([]string, 0, len(resp.Values[0]))
	for _, cell := range resp.Values[0] {
		header = append(header, fmt.Sprint(cell))
	}
	s.mu.Lock()
	s.headers[table] = header
	s.mu.Unlock()

	records := make([]domain.Record, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		rec := make(domain.Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = fmt.Sprint(row[i])
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// BatchUpdate applies all range writes in one Sheets batch call. Update
// ranges are located by header name, so the table must have been read at
// least once on this store.
func (s *SheetsStore) BatchUpdate(ctx context.Context, table string, updates []usecase.RangeUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	header, err := s.header(ctx, table)
	if err != nil {
		return err
	}

	data := make([]*sheets.ValueRange, 0, len(updates))
	for _, u := range updates {
		col, err := columnIndex(header, u.StartColumn)
		if err != nil {
			return fmt.Errorf("failed to locate column in %s: %w", table, err)
		}
		// +2 skips the header row and converts to 1-based.
		data = append(data, &sheets.ValueRange{
			Range:  fmt.Sprintf("%s!%s%d", quoteSheet(table), columnLetter(col), u.Row+2),
			Values: [][]interface{}{toInterfaces(u.Values)},
		})
	}

	_, err = s.svc.Spreadsheets.Values.
		BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateValuesRequest{
			ValueInputOption: valueInputUserEntered,
			Data:             data,
		}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update sheet %s: %w", table, err)
	}
	return nil
}

// ReplaceTable clears the worksheet and writes header plus rows from A1.
func (s *SheetsStore) ReplaceTable(ctx context.Context, table string, header []string, rows [][]string) error {
	_, err := s.svc.Spreadsheets.Values.
		Clear(s.spreadsheetID, quoteSheet(table), &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear sheet %s: %w", table, err)
	}

	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, toInterfaces(header))
	for _, row := range rows {
		values = append(values, toInterfaces(row))
	}

	_, err = s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, quoteSheet(table)+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption(valueInputUserEntered).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write sheet %s: %w", table, err)
	}

	s.mu.Lock()
	s.headers[table] = append([]string(nil), header...)
	s.mu.Unlock()
	return nil
}

// AppendRow adds one row after the last data row of the worksheet.
func (s *SheetsStore) AppendRow(ctx context.Context, table string, values []string) error {
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, quoteSheet(table)+"!A1", &sheets.ValueRange{
			Values: [][]interface{}{toInterfaces(values)},
		}).
		ValueInputOption(valueInputUserEntered).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append to sheet %s: %w", table, err)
	}
	return nil
}

func (s *SheetsStore) header(ctx context.Context, table string) ([]string, error) {
	s.mu.Lock()
	header, ok := s.headers[table]
	s.mu.Unlock()
	if ok {
		return header, nil
	}

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, quoteSheet(table)+"!1:1").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of sheet %s: %w", table, err)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("sheet %s has no header row", table)
	}
	header = make([]string, 0, len(resp.Values[0]))
	for _, cell := range resp.Values[0] {
		header = append(header, fmt.Sprint(cell))
	}

	s.mu.Lock()
	s.headers[table] = header
	s.mu.Unlock()
	return header, nil
}

func quoteSheet(table string) string {
	return "'" + table + "'"
}

func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if h == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no column named %q", name)
}

// columnLetter converts a 0-based column index to A1 notation.
func columnLetter(index int) string {
	letter := ""
	for index >= 0 {
		letter = string(rune('A'+index%26)) + letter
		index = index/26 - 1
	}
	return letter
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
