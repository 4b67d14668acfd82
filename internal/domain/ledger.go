package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerKind selects between the two obligation tables.
type LedgerKind string

const (
	LedgerReceivable LedgerKind = "receivable" // DSP, customers owe us
	LedgerPayable    LedgerKind = "payable"    // SSP, we owe vendors
)

// SettlementChannel enumerates how money moved.
var SettlementChannels = []string{"Bank Remittance", "PayPal", "Payoneer", "Other"}

// ledgerSchema captures the per-kind column names; the two sheets share a
// layout but label the partner, amount and settlement columns differently.
type ledgerSchema struct {
	Table         string
	NameCol       string
	AmountCol     string
	SettledDate   string
	SettledAmount string
	ChannelCol    string
}

var ledgerSchemas = map[LedgerKind]ledgerSchema{
	LedgerReceivable: {
		Table:         "DSP (Customers)",
		NameCol:       "DSP Name",
		AmountCol:     "Receivable $",
		SettledDate:   "Received Date",
		SettledAmount: "Received Amount $",
		ChannelCol:    "Received In",
	},
	LedgerPayable: {
		Table:         "SSP (Vendors)",
		NameCol:       "SSP Name",
		AmountCol:     "Payable $",
		SettledDate:   "Payment Date",
		SettledAmount: "Paid Amount $",
		ChannelCol:    "Paid From",
	},
}

// LedgerTable names the sheet backing a ledger kind.
func LedgerTable(kind LedgerKind) string { return ledgerSchemas[kind].Table }

// LedgerHeader is the sheet header for a ledger kind, in column order.
func LedgerHeader(kind LedgerKind) []string {
	s := ledgerSchemas[kind]
	return []string{
		ColMonth, s.NameCol, s.AmountCol, ColCurrencyTag, "Due Date",
		s.SettledDate, s.SettledAmount, s.ChannelCol, "Shortage", "Reason",
	}
}

// LedgerEditStartColumn is where the editable range begins; everything from
// the settled date through the reason is written on an edit save, the
// frozen columns before it never are.
func LedgerEditStartColumn(kind LedgerKind) string {
	return ledgerSchemas[kind].SettledDate
}

// RowStatus classifies a ledger row for highlighting.
type RowStatus string

const (
	StatusOpen    RowStatus = "open"
	StatusOverdue RowStatus = "overdue"
	StatusSettled RowStatus = "settled"
	StatusPartial RowStatus = "partial"
)

// LedgerRow is one persisted receivable/payable obligation. Amount,
// CurrencyTag and DueDate are frozen at creation from master data; only
// the settlement fields evolve afterwards.
type LedgerRow struct {
	Month       Month           `json:"month"`
	PartnerName string          `json:"partner_name"`
	Amount      decimal.Decimal `json:"amount"`
	CurrencyTag string          `json:"currency_tag,omitempty"`
	DueDate     time.Time       `json:"due_date,omitempty"` // zero = unknown

	SettledDate   time.Time       `json:"settled_date,omitempty"`
	SettledAmount decimal.Decimal `json:"settled_amount"`
	Channel       string          `json:"channel,omitempty"`
	Reason        string          `json:"reason,omitempty"`
}

// Key identifies the row for upserts: one obligation per partner-month.
func (r LedgerRow) Key() string {
	return r.Month.String() + "|" + r.PartnerName
}

// LedgerKey builds the upsert key without a row.
func LedgerKey(month Month, partner string) string {
	return month.String() + "|" + partner
}

// Shortage is always derived, never stored: the open remainder of the
// obligation.
func (r LedgerRow) Shortage() decimal.Decimal {
	return r.Amount.Sub(r.SettledAmount)
}

// Status classifies the row as of today. A row with no due date is never
// overdue; the caller cannot know when it fell due.
func (r LedgerRow) Status(today time.Time) RowStatus {
	switch {
	case r.SettledAmount.Equal(r.Amount) && !r.Amount.IsZero():
		return StatusSettled
	case !r.SettledAmount.IsZero():
		return StatusPartial
	case !r.DueDate.IsZero() && today.After(r.DueDate):
		return StatusOverdue
	default:
		return StatusOpen
	}
}

// DueDate computes when an obligation for the given month falls due: the
// last calendar day of the month plus the term's day count plus one.
// Fails soft: an unusable month yields the zero time, an unusable term
// counts as zero days.
func DueDate(month Month, terms string) time.Time {
	if month.IsZero() {
		return time.Time{}
	}
	return month.LastDay().AddDate(0, 0, TermDays(terms)+1)
}

// LedgerFromRecord maps a persisted ledger row of the given kind.
func LedgerFromRecord(kind LedgerKind, rec Record) LedgerRow {
	s := ledgerSchemas[kind]
	return LedgerRow{
		Month:         rec.Month(ColMonth),
		PartnerName:   rec.Str(s.NameCol),
		Amount:        rec.Decimal(s.AmountCol),
		CurrencyTag:   rec.Str(ColCurrencyTag),
		DueDate:       rec.Date("Due Date"),
		SettledDate:   rec.Date(s.SettledDate),
		SettledAmount: rec.Decimal(s.SettledAmount),
		Channel:       rec.Str(s.ChannelCol),
		Reason:        rec.Str("Reason"),
	}
}

// Values renders the row as a sheet row matching LedgerHeader. The shortage
// column is recomputed here, it carries no state of its own.
func (r LedgerRow) Values(kind LedgerKind) []string {
	return []string{
		r.Month.String(),
		r.PartnerName,
		r.Amount.StringFixed(2),
		r.CurrencyTag,
		FormatDate(r.DueDate),
		FormatDateISO(r.SettledDate),
		r.SettledAmount.StringFixed(2),
		r.Channel,
		r.Shortage().StringFixed(2),
		r.Reason,
	}
}

// EditValues renders only the editable range, starting at the settled-date
// column; used for the partial write-back on edit saves.
func (r LedgerRow) EditValues() []string {
	return []string{
		FormatDateISO(r.SettledDate),
		r.SettledAmount.StringFixed(2),
		r.Channel,
		r.Shortage().StringFixed(2),
		r.Reason,
	}
}
