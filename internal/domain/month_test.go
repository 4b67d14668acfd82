package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"sheet month format", "Apr-2024", "Apr-2024", true},
		{"iso date collapses to its month", "2024-04-15", "Apr-2024", true},
		{"day first date", "15/04/2024", "Apr-2024", true},
		{"iso year month", "2024-04", "Apr-2024", true},
		{"long month name", "April 2024", "Apr-2024", true},
		{"empty cell", "", "", false},
		{"garbage", "soonish", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMonth(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestMonth_LastDay(t *testing.T) {
	tests := []struct {
		month string
		want  string
	}{
		{"Apr-2024", "2024-04-30"},
		{"Feb-2024", "2024-02-29"}, // leap year
		{"Feb-2025", "2025-02-28"},
		{"Dec-2024", "2024-12-31"},
	}

	for _, tt := range tests {
		m, ok := ParseMonth(tt.month)
		assert.True(t, ok)
		assert.Equal(t, tt.want, m.LastDay().Format(DateISOLayout))
	}
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("01/05/2024")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), got)

	got, ok = ParseDate("2024-05-01")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), got)

	_, ok = ParseDate("yesterday")
	assert.False(t, ok)

	_, ok = ParseDate("")
	assert.False(t, ok)
}

func TestMonth_JSONRoundTrip(t *testing.T) {
	m, _ := ParseMonth("Apr-2024")

	data, err := m.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"Apr-2024"`, string(data))

	var back Month
	assert.NoError(t, back.UnmarshalJSON(data))
	assert.True(t, m.Equal(back))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", FormatDate(time.Time{}))
	assert.Equal(t, "", FormatDateISO(time.Time{}))

	d := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "01/05/2024", FormatDate(d))
	assert.Equal(t, "2024-05-01", FormatDateISO(d))
}
