package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"revtracker/internal/domain"
	"revtracker/internal/usecase"
)

func masterRow(year int, month time.Month, partner string, dsp, ssp, cdsp, cssp int64) domain.MasterRow {
	return domain.MasterRow{
		Month:        monthOf(year, month),
		PartnerName:  partner,
		DSPBilled:    decimal.NewFromInt(dsp),
		SSPBilled:    decimal.NewFromInt(ssp),
		CollectedDSP: decimal.NewFromInt(cdsp),
		CollectedSSP: decimal.NewFromInt(cssp),
	}
}

func TestComputeKPIs(t *testing.T) {
	tests := []struct {
		name              string
		rows              []domain.MasterRow
		wantNetBilled     string
		wantNetCollected  string
		wantIVT           string
		wantIVTPercent    string
		wantProfitPercent string
	}{
		{
			name: "totals and ratios over a mixed book",
			rows: []domain.MasterRow{
				masterRow(2024, time.April, "acme", 1000, 400, 800, 300),
				masterRow(2024, time.May, "bravo", 500, 600, 200, 250),
			},
			wantNetBilled:     "500", // 1500 - 1000
			wantNetCollected:  "450", // 1000 - 550
			wantIVT:           "50",  // 500 - 450
			wantIVTPercent:    "3.3", // 50 / 1500 * 100
			wantProfitPercent: "45.0",
		},
		{
			name:              "empty book is all zeros",
			rows:              nil,
			wantNetBilled:     "0",
			wantNetCollected:  "0",
			wantIVT:           "0",
			wantIVTPercent:    "0.0",
			wantProfitPercent: "0.0",
		},
		{
			name: "zero denominators read as zero percent",
			rows: []domain.MasterRow{
				masterRow(2024, time.April, "acme", 0, 100, 0, 50),
			},
			wantNetBilled:     "-100",
			wantNetCollected:  "-50",
			wantIVT:           "-50",
			wantIVTPercent:    "0.0",
			wantProfitPercent: "0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usecase.ComputeKPIs(tt.rows)

			assert.Equal(t, tt.wantNetBilled, got.TotalNetBilled.String())
			assert.Equal(t, tt.wantNetCollected, got.TotalNetCollected.String())
			assert.Equal(t, tt.wantIVT, got.IVT.String())
			assert.Equal(t, tt.wantIVTPercent, got.IVTPercent.StringFixed(1))
			assert.Equal(t, tt.wantProfitPercent, got.ProfitPercent.StringFixed(1))
		})
	}
}

func TestTopPartnersByNet(t *testing.T) {
	rows := []domain.MasterRow{
		masterRow(2024, time.April, "bravo", 300, 0, 0, 0),
		masterRow(2024, time.April, "acme", 100, 0, 0, 0),
		masterRow(2024, time.May, "acme", 250, 0, 0, 0),
		masterRow(2024, time.April, "charlie", 350, 0, 0, 0),
		masterRow(2024, time.April, "delta", 350, 700, 0, 0), // net -350
	}

	got := usecase.TopPartnersByNet(rows, 3)

	assert.Len(t, got, 3)
	assert.Equal(t, "acme", got[0].PartnerName) // 100 + 250 summed across months
	assert.Equal(t, "charlie", got[1].PartnerName)
	assert.Equal(t, "bravo", got[2].PartnerName)
}

func TestTopPartnersByNet_TiesAreAlphabetical(t *testing.T) {
	rows := []domain.MasterRow{
		masterRow(2024, time.April, "zulu", 100, 0, 0, 0),
		masterRow(2024, time.April, "alpha", 100, 0, 0, 0),
	}

	got := usecase.TopPartnersByNet(rows, 0)

	assert.Equal(t, "alpha", got[0].PartnerName)
	assert.Equal(t, "zulu", got[1].PartnerName)
}

func TestMonthlyRevenueTrend(t *testing.T) {
	rows := []domain.MasterRow{
		masterRow(2024, time.May, "acme", 300, 400, 0, 0), // net -100
		masterRow(2024, time.April, "acme", 1000, 400, 0, 0),
		masterRow(2024, time.April, "bravo", 200, 200, 0, 0),
		{PartnerName: "ghost", DSPBilled: decimal.NewFromInt(999)}, // no month
	}

	got := usecase.MonthlyRevenueTrend(rows)

	assert.Len(t, got, 2)
	assert.Equal(t, "Apr-2024", got[0].Month.String())
	assert.True(t, got[0].NetBilled.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, "May-2024", got[1].Month.String())
	assert.True(t, got[1].NetBilled.Equal(decimal.NewFromInt(-100)))
}

func TestQuarterlyRevenueTrend(t *testing.T) {
	rows := []domain.MasterRow{
		masterRow(2024, time.April, "acme", 1000, 400, 0, 0),
		masterRow(2024, time.May, "acme", 300, 400, 0, 0),
		masterRow(2025, time.January, "acme", 50, 0, 0, 0), // Q4 of FY 2024-25
		masterRow(2025, time.April, "acme", 80, 0, 0, 0),   // next FY
	}

	got := usecase.QuarterlyRevenueTrend(rows)

	assert.Equal(t, []string{"2024-25", "2024-25", "2025-26"}, []string{got[0].FY, got[1].FY, got[2].FY})
	assert.Equal(t, "Q1", got[0].Quarter)
	assert.True(t, got[0].NetBilled.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "Q4", got[1].Quarter)
	assert.True(t, got[1].NetBilled.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "Q1", got[2].Quarter)
	assert.True(t, got[2].NetBilled.Equal(decimal.NewFromInt(80)))
}

func TestOnboardingTrend(t *testing.T) {
	partners := []domain.Partner{
		{ShortName: "acme", Country: "India (IN)", AgreementDate: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)},
		{ShortName: "bravo", Country: "India (IN)", AgreementDate: time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC)},
		{ShortName: "charlie", Country: "Singapore (SG)", AgreementDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{ShortName: "ghost"}, // no date, no country
	}

	got := usecase.OnboardingTrend(partners)

	assert.Equal(t, 4, got.TotalPartners)
	assert.Equal(t, map[string]int{"India (IN)": 2, "Singapore (SG)": 1, "Unknown": 1}, got.ByCountry)
	assert.Equal(t, []domain.MonthCount{
		{Month: monthOf(2024, time.February), Count: 2},
		{Month: monthOf(2024, time.May), Count: 1},
	}, got.ByMonth)
}
