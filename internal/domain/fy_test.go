package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFYOf(t *testing.T) {
	assert.Equal(t, 2024, FYOf(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2024, FYOf(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2023, FYOf(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)))
}

func TestQuarterOf(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.April, "Q1"},
		{time.June, "Q1"},
		{time.July, "Q2"},
		{time.October, "Q3"},
		{time.December, "Q3"},
		{time.January, "Q4"},
		{time.March, "Q4"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, QuarterOf(time.Date(2024, tt.month, 15, 0, 0, 0, 0, time.UTC)))
	}
}

func TestFinancialYears(t *testing.T) {
	// Mid-FY: current plus two back, the next year not yet offered.
	got := FinancialYears(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{"2022-23", "2023-24", "2024-25"}, got)

	// Right after April 1 the new FY becomes current.
	got = FinancialYears(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{"2023-24", "2024-25", "2025-26"}, got)
}

func TestFYRange(t *testing.T) {
	start, end, err := FYRange("2024-25")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), end)

	_, _, err = FYRange("whenever")
	assert.Error(t, err)
}

func TestQuarterRange(t *testing.T) {
	tests := []struct {
		quarter   string
		wantStart string
		wantEnd   string
	}{
		{"Q1", "2024-04-01", "2024-06-30"},
		{"Q2", "2024-07-01", "2024-09-30"},
		{"Q3", "2024-10-01", "2024-12-31"},
		{"Q4", "2025-01-01", "2025-03-31"}, // following calendar year
	}

	for _, tt := range tests {
		t.Run(tt.quarter, func(t *testing.T) {
			start, end, err := QuarterRange("2024-25", tt.quarter)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStart, start.Format(DateISOLayout))
			assert.Equal(t, tt.wantEnd, end.Format(DateISOLayout))
		})
	}

	_, _, err := QuarterRange("2024-25", "Q5")
	assert.Error(t, err)
}

func TestFYLabel(t *testing.T) {
	assert.Equal(t, "2024-25", FYLabel(2024))
	assert.Equal(t, "2099-00", FYLabel(2099))
}
