package domain

import "github.com/shopspring/decimal"

// Category classifies a partner-month by the sign of its net collected
// amount: money owed to us (DSP) or owed by us (SSP).
type Category string

const (
	CategoryDSP Category = "DSP"
	CategorySSP Category = "SSP"
)

// Master Data sheet columns.
const (
	ColMonth        = "Month"
	ColPartnerName  = "Partner Name"
	ColDSPBilled    = "DSP $ (BC)"
	ColSSPBilled    = "SSP $ (BC)"
	ColNetBilled    = "Net $ (BC)"
	ColCollectedDSP = "C DSP $"
	ColCollectedSSP = "C SSP $"
	ColNetCollected = "C Net $"
	ColCategory     = "Category (DSP/SSP)"
	ColEntityFlag   = "I/F"
	ColCurrencyTag  = "USD/INR"
	ColNetTerm      = "NET Term"
)

// MasterRow is one partner's financial activity for one calendar month.
// Billed amounts come from the sheet as-is; the collected pair is editable.
// Everything under "Derived" is recomputed on every load and never stored
// independently of its inputs.
type MasterRow struct {
	Month        Month           `json:"month"`
	PartnerName  string          `json:"partner_name"`
	DSPBilled    decimal.Decimal `json:"dsp_billed"`
	SSPBilled    decimal.Decimal `json:"ssp_billed"`
	CollectedDSP decimal.Decimal `json:"collected_dsp"`
	CollectedSSP decimal.Decimal `json:"collected_ssp"`

	// Derived from the partner join, blank when the partner is unknown.
	EntityFlag   EntityType `json:"entity_flag,omitempty"`
	CurrencyTag  string     `json:"currency_tag,omitempty"`
	GSTIN        string     `json:"gstin,omitempty"`
	PaymentTerms string     `json:"payment_terms,omitempty"`
}

// NetBilled is the billed margin: DSP billed minus SSP billed.
func (r MasterRow) NetBilled() decimal.Decimal {
	return r.DSPBilled.Sub(r.SSPBilled)
}

// NetCollected is the net cash position: collected DSP minus collected SSP.
func (r MasterRow) NetCollected() decimal.Decimal {
	return r.CollectedDSP.Sub(r.CollectedSSP)
}

// Category is a pure function of NetCollected's sign; exactly zero counts
// as DSP.
func (r MasterRow) Category() Category {
	if r.NetCollected().IsNegative() {
		return CategorySSP
	}
	return CategoryDSP
}

// MasterFromRecord maps a Master Data row. Bad or missing numeric cells
// coerce to zero through the Record accessors.
func MasterFromRecord(rec Record) MasterRow {
	return MasterRow{
		Month:        rec.Month(ColMonth),
		PartnerName:  rec.Str(ColPartnerName),
		DSPBilled:    rec.Decimal(ColDSPBilled),
		SSPBilled:    rec.Decimal(ColSSPBilled),
		CollectedDSP: rec.Decimal(ColCollectedDSP),
		CollectedSSP: rec.Decimal(ColCollectedSSP),
	}
}
