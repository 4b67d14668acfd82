package domain

import "time"

// Display formats used across the tracker. Sheets hold months as "Jan-2006"
// and day-level dates as DD/MM/YYYY; saves write dates back as ISO so the
// store parses them unambiguously.
const (
	MonthLayout   = "Jan-2006"
	DateLayout    = "02/01/2006"
	DateISOLayout = "2006-01-02"
)

// Month is a calendar month, normalized to the first day at UTC midnight.
type Month struct {
	t time.Time
}

// MonthOf truncates t to month granularity.
func MonthOf(t time.Time) Month {
	if t.IsZero() {
		return Month{}
	}
	return Month{t: time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)}
}

// ParseMonth accepts the formats the sheets are known to contain. It never
// errors: an unrecognized value yields the zero Month and ok=false.
func ParseMonth(s string) (Month, bool) {
	if s == "" {
		return Month{}, false
	}
	for _, layout := range []string{MonthLayout, DateISOLayout, DateLayout, "2006-01", "January 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return MonthOf(t), true
		}
	}
	return Month{}, false
}

func (m Month) IsZero() bool { return m.t.IsZero() }

// Time returns the first day of the month.
func (m Month) Time() time.Time { return m.t }

// LastDay returns the last calendar day of the month.
func (m Month) LastDay() time.Time {
	return m.t.AddDate(0, 1, -1)
}

func (m Month) Before(other Month) bool { return m.t.Before(other.t) }
func (m Month) Equal(other Month) bool  { return m.t.Equal(other.t) }

func (m Month) String() string {
	if m.IsZero() {
		return ""
	}
	return m.t.Format(MonthLayout)
}

func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func (m *Month) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, _ := ParseMonth(s)
	*m = parsed
	return nil
}

// ParseDate reads a day-level date, day first. Returns ok=false instead of
// an error so callers can treat bad cells as blank.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{DateLayout, DateISOLayout, "2/1/2006", "02-01-2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a date for display, blank when unset.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatDateISO renders a date for persistence, blank when unset.
func FormatDateISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateISOLayout)
}
