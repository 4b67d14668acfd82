package usecase

import (
	"revtracker/internal/domain"
)

// Filter narrows master and ledger views to a financial year, a quarter
// within it, or a single month. A set quarter overrides the month, and is
// only meaningful together with a financial year; the zero Filter matches
// everything.
type Filter struct {
	FY      string       `json:"fy,omitempty"`
	Quarter string       `json:"quarter,omitempty"`
	Month   domain.Month `json:"month,omitempty"`
}

// IsZero reports whether the filter constrains anything.
func (f Filter) IsZero() bool {
	return f.FY == "" && f.Quarter == "" && f.Month.IsZero()
}

// Contains reports whether the month falls inside the filter window.
// Unparseable FY or quarter labels fail open so a bad selection shows
// everything rather than nothing. A month that failed to parse cannot be
// placed in any window, so it matches only the unconstrained filter; the
// "all" view still counts such rows.
func (f Filter) Contains(m domain.Month) bool {
	if m.IsZero() {
		return f.IsZero()
	}

	if f.FY != "" {
		start, end, err := domain.FYRange(f.FY)
		if err == nil && (m.Time().Before(start) || m.Time().After(end)) {
			return false
		}

		if f.Quarter != "" {
			qStart, qEnd, err := domain.QuarterRange(f.FY, f.Quarter)
			if err == nil && (m.Time().Before(qStart) || m.Time().After(qEnd)) {
				return false
			}
			return true
		}
	}

	if !f.Month.IsZero() && !m.Equal(f.Month) {
		return false
	}
	return true
}

// filterRows keeps the master rows whose month the filter contains,
// preserving order.
func filterRows(rows []domain.MasterRow, f Filter) []domain.MasterRow {
	var kept []domain.MasterRow
	for _, row := range rows {
		if f.Contains(row.Month) {
			kept = append(kept, row)
		}
	}
	return kept
}
