package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"revtracker/internal/domain"
)

// Tracker orchestrates the revenue-tracking pipeline: master ingestion with
// the partner join, KPI aggregation, ledger synchronization and partial
// edit write-back. It depends only on the RecordStore interface; every
// user-triggered operation is one synchronous pass over the store.
type Tracker struct {
	store    RecordStore
	log      *logrus.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewTracker creates a new instance of the usecase.
func NewTracker(store RecordStore, log *logrus.Logger) *Tracker {
	return &Tracker{
		store:    store,
		log:      log,
		validate: validator.New(),
		now:      time.Now,
	}
}

// FinancialYears lists the FY labels available for filtering as of now.
func (t *Tracker) FinancialYears() []string {
	return domain.FinancialYears(t.now())
}

// LoadMaster reads Master Data, applies the partner join and the filter,
// and returns the rows sorted by month. The join is recomputed on every
// load; none of its output is ever written back to the master table.
// A partner-directory failure degrades to an unjoined view instead of
// failing the load.
func (t *Tracker) LoadMaster(ctx context.Context, filter Filter) ([]domain.MasterRow, error) {
	records, err := t.store.ReadTable(ctx, TableMaster)
	if err != nil {
		return nil, fmt.Errorf("could not read master data: %w", err)
	}

	rows := make([]domain.MasterRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, domain.MasterFromRecord(rec))
	}

	partners, err := t.loadPartnerIndex(ctx)
	if err != nil {
		t.log.WithFields(logrus.Fields{
			"module": "usecase",
			"table":  TablePartners,
		}).Warn(fmt.Sprintf("partner join skipped: %v", err))
	} else {
		ApplyPartnerJoin(rows, partners)
	}

	rows = filterRows(rows, filter)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Month.Before(rows[j].Month)
	})
	return rows, nil
}

// ApplyPartnerJoin copies the country-derived fields and payment terms onto
// each master row whose partner is known. Unmatched rows keep blank derived
// fields and are still shown.
func ApplyPartnerJoin(rows []domain.MasterRow, partners map[string]domain.Partner) {
	for i := range rows {
		partner, ok := partners[rows[i].PartnerName]
		if !ok {
			continue
		}
		rows[i].EntityFlag = domain.EntityTypeFor(partner.Country)
		rows[i].CurrencyTag = domain.CurrencyFor(partner.Country)
		rows[i].GSTIN = partner.GSTIN
		rows[i].PaymentTerms = partner.PaymentTerms
	}
}

// loadPartnerIndex reads the directory into a short-name lookup. Short-name
// uniqueness is assumed but not enforced anywhere; on a duplicate the first
// row wins and a warning is logged.
func (t *Tracker) loadPartnerIndex(ctx context.Context) (map[string]domain.Partner, error) {
	partners, err := t.ListPartners(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]domain.Partner, len(partners))
	for _, p := range partners {
		if p.ShortName == "" {
			continue
		}
		if _, exists := index[p.ShortName]; exists {
			t.log.WithFields(logrus.Fields{
				"module":     "usecase",
				"short_name": p.ShortName,
			}).Warn("duplicate partner short name, first match wins")
			continue
		}
		index[p.ShortName] = p
	}
	return index, nil
}

// ListPartners returns the partner directory in sheet order.
func (t *Tracker) ListPartners(ctx context.Context) ([]domain.Partner, error) {
	records, err := t.store.ReadTable(ctx, TablePartners)
	if err != nil {
		return nil, fmt.Errorf("could not read partner list: %w", err)
	}

	partners := make([]domain.Partner, 0, len(records))
	for _, rec := range records {
		p := domain.PartnerFromRecord(rec)
		if p.ShortName == "" && p.LegalName == "" {
			continue
		}
		partners = append(partners, p)
	}
	return partners, nil
}

// Dashboard loads the filtered master view and computes every dashboard
// section from that one snapshot. Sections degrade independently: a
// partner-directory failure blanks the onboarding stats but the KPIs and
// rankings still come back.
func (t *Tracker) Dashboard(ctx context.Context, filter Filter) (*domain.DashboardReport, error) {
	rows, err := t.LoadMaster(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := domain.DashboardReport{
		KPIs:           ComputeKPIs(rows),
		TopPartners:    TopPartnersByNet(rows, 10),
		RevenueTrend:   MonthlyRevenueTrend(rows),
		QuarterlyTrend: QuarterlyRevenueTrend(rows),
		RowCount:       len(rows),
	}

	partners, err := t.ListPartners(ctx)
	if err != nil {
		t.log.WithFields(logrus.Fields{
			"module": "usecase",
			"table":  TablePartners,
		}).Warn(fmt.Sprintf("onboarding stats skipped: %v", err))
	} else {
		report.Onboarding = OnboardingTrend(partners)
	}
	return &report, nil
}

// LoadLedger reads one ledger table, filtered.
func (t *Tracker) LoadLedger(ctx context.Context, kind domain.LedgerKind, filter Filter) ([]domain.LedgerRow, error) {
	table := domain.LedgerTable(kind)
	records, err := t.store.ReadTable(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", table, err)
	}

	var rows []domain.LedgerRow
	for _, rec := range records {
		row := domain.LedgerFromRecord(kind, rec)
		if filter.Contains(row.Month) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// SyncLedgers materializes missing ledger rows from the current master
// snapshot: every partner-month with a nonzero net collected amount gets a
// receivable (positive) or payable (negative) row with the gross amount,
// currency tag and due date frozen at creation and the settlement fields
// zeroed. Rows already present are never touched, so a second run over an
// unchanged snapshot writes nothing.
func (t *Tracker) SyncLedgers(ctx context.Context) (*domain.SyncResult, error) {
	master, err := t.LoadMaster(ctx, Filter{})
	if err != nil {
		return nil, err
	}

	var result domain.SyncResult

	created, err := t.syncLedger(ctx, domain.LedgerReceivable, master)
	if err != nil {
		return nil, err
	}
	result.ReceivablesCreated = created

	created, err = t.syncLedger(ctx, domain.LedgerPayable, master)
	if err != nil {
		return nil, err
	}
	result.PayablesCreated = created

	return &result, nil
}

func (t *Tracker) syncLedger(ctx context.Context, kind domain.LedgerKind, master []domain.MasterRow) (int, error) {
	table := domain.LedgerTable(kind)
	records, err := t.store.ReadTable(ctx, table)
	if err != nil {
		return 0, fmt.Errorf("could not read %s: %w", table, err)
	}

	existing := make([]domain.LedgerRow, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		row := domain.LedgerFromRecord(kind, rec)
		existing = append(existing, row)
		seen[row.Key()] = true
	}

	var created []domain.LedgerRow
	for _, row := range master {
		// An obligation without a usable month cannot be keyed or dated.
		if row.Month.IsZero() {
			continue
		}
		net := row.NetCollected()
		if net.IsZero() {
			continue
		}
		if kind == domain.LedgerReceivable && net.IsNegative() {
			continue
		}
		if kind == domain.LedgerPayable && !net.IsNegative() {
			continue
		}
		if seen[domain.LedgerKey(row.Month, row.PartnerName)] {
			continue
		}
		created = append(created, domain.LedgerRow{
			Month:       row.Month,
			PartnerName: row.PartnerName,
			Amount:      net.Abs(),
			CurrencyTag: row.CurrencyTag,
			DueDate:     domain.DueDate(row.Month, row.PaymentTerms),
		})
		seen[domain.LedgerKey(row.Month, row.PartnerName)] = true
	}

	if len(created) == 0 {
		return 0, nil
	}

	values := make([][]string, 0, len(existing)+len(created))
	for _, row := range existing {
		values = append(values, row.Values(kind))
	}
	for _, row := range created {
		values = append(values, row.Values(kind))
	}
	if err := t.store.ReplaceTable(ctx, table, domain.LedgerHeader(kind), values); err != nil {
		return 0, fmt.Errorf("could not write %s: %w", table, err)
	}
	return len(created), nil
}

// LedgerEdit is one user edit to the settlement fields of a ledger row,
// addressed by its upsert key.
type LedgerEdit struct {
	Month         domain.Month    `json:"month"`
	PartnerName   string          `json:"partner_name"`
	SettledDate   time.Time       `json:"settled_date,omitempty"`
	SettledAmount decimal.Decimal `json:"settled_amount"`
	Channel       string          `json:"channel,omitempty"`
	Reason        string          `json:"reason,omitempty"`
}

// SaveLedgerEdits writes a batch of settlement edits back to one ledger
// table. Each edit is located by (month, partner); an edit whose row no
// longer exists is logged and skipped, never synthesized, and never takes
// the rest of the batch down with it. Matched rows get a single range
// write covering only the editable columns, with the shortage recomputed
// from the just-written amount. The whole batch goes to the store in one
// call.
func (t *Tracker) SaveLedgerEdits(ctx context.Context, kind domain.LedgerKind, edits []LedgerEdit) (*domain.SaveResult, error) {
	table := domain.LedgerTable(kind)
	records, err := t.store.ReadTable(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", table, err)
	}

	index := make(map[string]int, len(records))
	rows := make([]domain.LedgerRow, len(records))
	for i, rec := range records {
		rows[i] = domain.LedgerFromRecord(kind, rec)
		if _, dup := index[rows[i].Key()]; !dup {
			index[rows[i].Key()] = i
		}
	}

	batchID := uuid.NewString()
	var result domain.SaveResult
	var updates []RangeUpdate

	for _, edit := range edits {
		key := domain.LedgerKey(edit.Month, edit.PartnerName)
		i, ok := index[key]
		if !ok {
			t.log.WithFields(logrus.Fields{
				"module":  "usecase",
				"table":   table,
				"batch":   batchID,
				"month":   edit.Month.String(),
				"partner": edit.PartnerName,
			}).Warn("row not found, edit skipped")
			result.Skipped++
			continue
		}
		if edit.Channel != "" && !validChannel(edit.Channel) {
			t.log.WithFields(logrus.Fields{
				"module":  "usecase",
				"table":   table,
				"batch":   batchID,
				"channel": edit.Channel,
			}).Warn("unknown settlement channel, edit skipped")
			result.Skipped++
			continue
		}

		row := rows[i]
		row.SettledDate = edit.SettledDate
		row.SettledAmount = edit.SettledAmount
		row.Channel = edit.Channel
		row.Reason = edit.Reason

		updates = append(updates, RangeUpdate{
			Row:         i,
			StartColumn: domain.LedgerEditStartColumn(kind),
			Values:      row.EditValues(),
		})
		result.Written++
	}

	if len(updates) > 0 {
		if err := t.store.BatchUpdate(ctx, table, updates); err != nil {
			return nil, fmt.Errorf("could not save %s edits: %w", table, err)
		}
	}
	return &result, nil
}

func validChannel(channel string) bool {
	for _, c := range domain.SettlementChannels {
		if c == channel {
			return true
		}
	}
	return false
}

// MasterEdit is one user edit to the collected pair of a master row.
type MasterEdit struct {
	Month        domain.Month    `json:"month"`
	PartnerName  string          `json:"partner_name"`
	CollectedDSP decimal.Decimal `json:"collected_dsp"`
	CollectedSSP decimal.Decimal `json:"collected_ssp"`
}

// SaveMasterEdits writes collected-amount edits back to Master Data. Like
// ledger saves this is keyed (month, partner), batched into one store
// call, and skips rows that vanished; the stored net column is recomputed
// from the written pair.
func (t *Tracker) SaveMasterEdits(ctx context.Context, edits []MasterEdit) (*domain.SaveResult, error) {
	records, err := t.store.ReadTable(ctx, TableMaster)
	if err != nil {
		return nil, fmt.Errorf("could not read master data: %w", err)
	}

	index := make(map[string]int, len(records))
	for i, rec := range records {
		row := domain.MasterFromRecord(rec)
		key := domain.LedgerKey(row.Month, row.PartnerName)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	batchID := uuid.NewString()
	var result domain.SaveResult
	var updates []RangeUpdate

	for _, edit := range edits {
		i, ok := index[domain.LedgerKey(edit.Month, edit.PartnerName)]
		if !ok {
			t.log.WithFields(logrus.Fields{
				"module":  "usecase",
				"table":   TableMaster,
				"batch":   batchID,
				"month":   edit.Month.String(),
				"partner": edit.PartnerName,
			}).Warn("row not found, edit skipped")
			result.Skipped++
			continue
		}

		net := edit.CollectedDSP.Sub(edit.CollectedSSP)
		updates = append(updates, RangeUpdate{
			Row:         i,
			StartColumn: domain.ColCollectedDSP,
			Values: []string{
				edit.CollectedDSP.StringFixed(2),
				edit.CollectedSSP.StringFixed(2),
				net.StringFixed(2),
			},
		})
		result.Written++
	}

	if len(updates) > 0 {
		if err := t.store.BatchUpdate(ctx, TableMaster, updates); err != nil {
			return nil, fmt.Errorf("could not save master edits: %w", err)
		}
	}
	return &result, nil
}
