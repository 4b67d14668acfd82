package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one row of a store table, keyed by header name. The store has
// no schema of its own, so all type coercion happens in the accessors and
// fails soft: a missing column or an unparseable cell reads as zero/blank,
// never as an error.
type Record map[string]string

// Str returns the trimmed cell value, blank when the column is absent.
func (r Record) Str(column string) string {
	return strings.TrimSpace(r[column])
}

// Decimal coerces a cell to a decimal amount. Currency formatting such as
// "$1,234.50" is tolerated; anything unparseable reads as zero.
func (r Record) Decimal(column string) decimal.Decimal {
	s := r.Str(column)
	if s == "" {
		return decimal.Zero
	}
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Date coerces a cell to a day-level date, zero time when blank or invalid.
func (r Record) Date(column string) time.Time {
	t, _ := ParseDate(r.Str(column))
	return t
}

// Month coerces a cell to a calendar month, zero Month when blank or invalid.
func (r Record) Month(column string) Month {
	m, _ := ParseMonth(r.Str(column))
	return m
}
