package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// The financial year runs April 1 through March 31. An FY label names its
// starting calendar year, e.g. "2024-25" covers Apr 2024 - Mar 2025.

// FYLabel builds the label for the financial year starting in startYear.
func FYLabel(startYear int) string {
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

// FYStartYear extracts the starting calendar year from an FY label.
func FYStartYear(label string) (int, error) {
	parts := strings.SplitN(label, "-", 2)
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid financial year %q: %w", label, err)
	}
	return year, nil
}

// FYOf returns the starting year of the financial year containing t.
func FYOf(t time.Time) int {
	if t.Month() >= time.April {
		return t.Year()
	}
	return t.Year() - 1
}

// QuarterOf maps a date to its FY quarter (Q1 Apr-Jun ... Q4 Jan-Mar).
func QuarterOf(t time.Time) string {
	switch {
	case t.Month() >= time.April && t.Month() <= time.June:
		return "Q1"
	case t.Month() >= time.July && t.Month() <= time.September:
		return "Q2"
	case t.Month() >= time.October:
		return "Q3"
	default:
		return "Q4"
	}
}

// FinancialYears lists the FY labels the tracker offers for filtering: the
// current FY, the two before it, and the next one once April 1 has passed.
func FinancialYears(today time.Time) []string {
	current := FYOf(today)

	var years []string
	for i := 0; i < 3; i++ {
		years = append(years, FYLabel(current-2+i))
	}
	if !today.Before(time.Date(current+1, time.April, 1, 0, 0, 0, 0, time.UTC)) {
		years = append(years, FYLabel(current+1))
	}
	sort.Strings(years)
	return years
}

// FYRange returns the first and last day of the labelled financial year.
func FYRange(label string) (time.Time, time.Time, error) {
	year, err := FYStartYear(label)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.March, 31, 0, 0, 0, 0, time.UTC)
	return start, end, nil
}

// QuarterRange returns the first and last day of a quarter within the
// labelled financial year. Q4 falls in the following calendar year.
func QuarterRange(label, quarter string) (time.Time, time.Time, error) {
	year, err := FYStartYear(label)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	var startMonth, endMonth time.Month
	switch quarter {
	case "Q1":
		startMonth, endMonth = time.April, time.June
	case "Q2":
		startMonth, endMonth = time.July, time.September
	case "Q3":
		startMonth, endMonth = time.October, time.December
	case "Q4":
		startMonth, endMonth = time.January, time.March
		year++
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("invalid quarter %q", quarter)
	}

	start := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, endMonth, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
	return start, end, nil
}
