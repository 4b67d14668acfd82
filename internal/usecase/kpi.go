package usecase

import (
	"sort"

	"github.com/shopspring/decimal"

	"revtracker/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ComputeKPIs aggregates the dashboard metrics over a master slice. It is
// side-effect-free; an empty slice yields an all-zero report, and the two
// ratio metrics read as zero whenever their denominator is zero.
func ComputeKPIs(rows []domain.MasterRow) domain.KPIReport {
	var report domain.KPIReport
	for _, row := range rows {
		report.TotalDSPBilled = report.TotalDSPBilled.Add(row.DSPBilled)
		report.TotalSSPBilled = report.TotalSSPBilled.Add(row.SSPBilled)
		report.TotalCollectedDSP = report.TotalCollectedDSP.Add(row.CollectedDSP)
		report.TotalCollectedSSP = report.TotalCollectedSSP.Add(row.CollectedSSP)
	}
	report.TotalNetBilled = report.TotalDSPBilled.Sub(report.TotalSSPBilled)
	report.TotalNetCollected = report.TotalCollectedDSP.Sub(report.TotalCollectedSSP)

	report.IVT = report.TotalNetBilled.Sub(report.TotalNetCollected)
	if !report.TotalDSPBilled.IsZero() {
		report.IVTPercent = report.IVT.Div(report.TotalDSPBilled).Mul(hundred)
	}
	if !report.TotalCollectedDSP.IsZero() {
		report.ProfitPercent = report.TotalNetCollected.Div(report.TotalCollectedDSP).Mul(hundred)
	}
	return report
}

// TopPartnersByNet ranks partners by summed net billed, highest first,
// truncated to n entries. Ties keep a stable alphabetical order.
func TopPartnersByNet(rows []domain.MasterRow, n int) []domain.PartnerNet {
	totals := make(map[string]decimal.Decimal)
	for _, row := range rows {
		totals[row.PartnerName] = totals[row.PartnerName].Add(row.NetBilled())
	}

	ranked := make([]domain.PartnerNet, 0, len(totals))
	for name, net := range totals {
		ranked = append(ranked, domain.PartnerNet{PartnerName: name, NetBilled: net})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].NetBilled.Equal(ranked[j].NetBilled) {
			return ranked[i].NetBilled.GreaterThan(ranked[j].NetBilled)
		}
		return ranked[i].PartnerName < ranked[j].PartnerName
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// MonthlyRevenueTrend sums net billed by month, in month order. Rows with
// no usable month cannot be bucketed and are left out of the trend.
func MonthlyRevenueTrend(rows []domain.MasterRow) []domain.MonthNet {
	totals := make(map[domain.Month]decimal.Decimal)
	for _, row := range rows {
		if row.Month.IsZero() {
			continue
		}
		totals[row.Month] = totals[row.Month].Add(row.NetBilled())
	}

	trend := make([]domain.MonthNet, 0, len(totals))
	for month, net := range totals {
		trend = append(trend, domain.MonthNet{Month: month, NetBilled: net})
	}
	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Month.Before(trend[j].Month)
	})
	return trend
}

// QuarterlyRevenueTrend regroups net billed into financial-year quarters,
// ordered by FY then quarter. A Q4 month belongs to the FY that started
// the previous April.
func QuarterlyRevenueTrend(rows []domain.MasterRow) []domain.QuarterNet {
	totals := make(map[string]*domain.QuarterNet)
	for _, row := range rows {
		if row.Month.IsZero() {
			continue
		}
		t := row.Month.Time()
		fy := domain.FYLabel(domain.FYOf(t))
		quarter := domain.QuarterOf(t)
		key := fy + "|" + quarter
		bucket, ok := totals[key]
		if !ok {
			bucket = &domain.QuarterNet{FY: fy, Quarter: quarter}
			totals[key] = bucket
		}
		bucket.NetBilled = bucket.NetBilled.Add(row.NetBilled())
	}

	trend := make([]domain.QuarterNet, 0, len(totals))
	for _, bucket := range totals {
		trend = append(trend, *bucket)
	}
	sort.Slice(trend, func(i, j int) bool {
		if trend[i].FY != trend[j].FY {
			return trend[i].FY < trend[j].FY
		}
		return trend[i].Quarter < trend[j].Quarter
	})
	return trend
}

// OnboardingTrend counts partners by agreement month and country. Partners
// with no parseable agreement date are counted in the totals but not in
// the monthly buckets.
func OnboardingTrend(partners []domain.Partner) domain.OnboardingStats {
	stats := domain.OnboardingStats{
		TotalPartners: len(partners),
		ByCountry:     make(map[string]int),
	}

	byMonth := make(map[domain.Month]int)
	for _, p := range partners {
		country := p.Country
		if country == "" {
			country = "Unknown"
		}
		stats.ByCountry[country]++

		if !p.AgreementDate.IsZero() {
			byMonth[domain.MonthOf(p.AgreementDate)]++
		}
	}

	for month, count := range byMonth {
		stats.ByMonth = append(stats.ByMonth, domain.MonthCount{Month: month, Count: count})
	}
	sort.Slice(stats.ByMonth, func(i, j int) bool {
		return stats.ByMonth[i].Month.Before(stats.ByMonth[j].Month)
	})
	return stats
}
