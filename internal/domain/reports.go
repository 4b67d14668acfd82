package domain

import "github.com/shopspring/decimal"

// KPIReport aggregates the financial metrics shown on the dashboard.
type KPIReport struct {
	TotalDSPBilled    decimal.Decimal `json:"total_dsp_billed"`
	TotalSSPBilled    decimal.Decimal `json:"total_ssp_billed"`
	TotalNetBilled    decimal.Decimal `json:"total_net_billed"`
	TotalCollectedDSP decimal.Decimal `json:"total_collected_dsp"`
	TotalCollectedSSP decimal.Decimal `json:"total_collected_ssp"`
	TotalNetCollected decimal.Decimal `json:"total_net_collected"`
	IVT               decimal.Decimal `json:"ivt"`
	IVTPercent        decimal.Decimal `json:"ivt_percent"`
	ProfitPercent     decimal.Decimal `json:"collection_profit_percent"`
}

// PartnerNet is one entry of the top-partners ranking.
type PartnerNet struct {
	PartnerName string          `json:"partner_name"`
	NetBilled   decimal.Decimal `json:"net_billed"`
}

// MonthNet is one point of the monthly revenue trend.
type MonthNet struct {
	Month     Month           `json:"month"`
	NetBilled decimal.Decimal `json:"net_billed"`
}

// QuarterNet is one bucket of the revenue trend regrouped by
// financial-year quarter.
type QuarterNet struct {
	FY        string          `json:"fy"`
	Quarter   string          `json:"quarter"`
	NetBilled decimal.Decimal `json:"net_billed"`
}

// MonthCount is one bucket of the onboarding trend.
type MonthCount struct {
	Month Month `json:"month"`
	Count int   `json:"count"`
}

// OnboardingStats summarizes the partner directory.
type OnboardingStats struct {
	TotalPartners int            `json:"total_partners"`
	ByMonth       []MonthCount   `json:"by_month"`
	ByCountry     map[string]int `json:"by_country"`
}

// DashboardReport is the full dashboard payload for one filter selection.
type DashboardReport struct {
	KPIs           KPIReport       `json:"kpis"`
	TopPartners    []PartnerNet    `json:"top_partners"`
	RevenueTrend   []MonthNet      `json:"revenue_trend"`
	QuarterlyTrend []QuarterNet    `json:"quarterly_trend"`
	Onboarding     OnboardingStats `json:"onboarding"`
	RowCount       int             `json:"row_count"`
}

// SummaryLine is one month of a partner's net offset summary.
type SummaryLine struct {
	Month  Month           `json:"month"`
	AsDSP  decimal.Decimal `json:"as_dsp"`
	AsSSP  decimal.Decimal `json:"as_ssp"`
	Offset decimal.Decimal `json:"offset"`
}

// PartnerSummary is the month-wise offset view for one partner. Months
// whose ledger row already shows settlement activity are excluded; Degraded
// reports that a ledger could not be read, in which case nothing was
// excluded and the figures may include months that would normally be
// hidden.
type PartnerSummary struct {
	PartnerName string          `json:"partner_name"`
	Lines       []SummaryLine   `json:"lines"`
	TotalDSP    decimal.Decimal `json:"total_dsp"`
	TotalSSP    decimal.Decimal `json:"total_ssp"`
	TotalOffset decimal.Decimal `json:"total_offset"`
	Degraded    bool            `json:"degraded,omitempty"`
}

// SyncResult reports a ledger synchronization pass.
type SyncResult struct {
	ReceivablesCreated int `json:"receivables_created"`
	PayablesCreated    int `json:"payables_created"`
}

// SaveResult reports a batched edit save.
type SaveResult struct {
	Written int `json:"written"`
	Skipped int `json:"skipped"`
}
