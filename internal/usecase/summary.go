package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"revtracker/internal/domain"
)

// ExcludedMonths returns the months a partner should be hidden for in the
// monthly summary, keyed by month string. A month is excluded once any
// settlement activity exists against its ledger row: fully reconciled
// (settled equals the target on a nonzero row) or partially settled
// (nonzero settled that misses the target). A row with nothing settled is
// always shown, whatever its target. A ledger read failure degrades to an
// empty set so the summary can still render; degraded reports that.
func (t *Tracker) ExcludedMonths(ctx context.Context, partner string) (excluded map[string]bool, degraded bool) {
	excluded = make(map[string]bool)
	for _, kind := range []domain.LedgerKind{domain.LedgerReceivable, domain.LedgerPayable} {
		table := domain.LedgerTable(kind)
		records, err := t.store.ReadTable(ctx, table)
		if err != nil {
			t.log.WithFields(logrus.Fields{
				"module": "usecase",
				"table":  table,
			}).Warn(fmt.Sprintf("exclusion check degraded: %v", err))
			degraded = true
			continue
		}
		for _, rec := range records {
			row := domain.LedgerFromRecord(kind, rec)
			if row.PartnerName != partner {
				continue
			}
			reconciled := !row.Amount.IsZero() && row.SettledAmount.Equal(row.Amount)
			partial := !row.SettledAmount.IsZero() && !row.SettledAmount.Equal(row.Amount)
			if reconciled || partial {
				excluded[row.Month.String()] = true
			}
		}
	}
	return excluded, degraded
}

// PartnerSummary builds the month-wise offset view for one partner:
// collected DSP and SSP amounts grouped by month, months with settlement
// activity dropped, the rest summed into DSP, SSP and offset totals.
func (t *Tracker) PartnerSummary(ctx context.Context, partner string, filter Filter) (*domain.PartnerSummary, error) {
	rows, err := t.LoadMaster(ctx, filter)
	if err != nil {
		return nil, err
	}

	excluded, degraded := t.ExcludedMonths(ctx, partner)

	type bucket struct {
		month domain.Month
		asDSP decimal.Decimal
		asSSP decimal.Decimal
	}
	buckets := make(map[string]*bucket)
	for _, row := range rows {
		if row.PartnerName != partner {
			continue
		}
		key := row.Month.String()
		if excluded[key] {
			continue
		}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{month: row.Month}
			buckets[key] = b
		}
		b.asDSP = b.asDSP.Add(row.CollectedDSP)
		b.asSSP = b.asSSP.Add(row.CollectedSSP)
	}

	summary := domain.PartnerSummary{
		PartnerName: partner,
		Degraded:    degraded,
	}
	for _, b := range buckets {
		summary.Lines = append(summary.Lines, domain.SummaryLine{
			Month:  b.month,
			AsDSP:  b.asDSP,
			AsSSP:  b.asSSP,
			Offset: b.asDSP.Sub(b.asSSP),
		})
	}
	sort.Slice(summary.Lines, func(i, j int) bool {
		return summary.Lines[i].Month.Before(summary.Lines[j].Month)
	})
	for _, line := range summary.Lines {
		summary.TotalDSP = summary.TotalDSP.Add(line.AsDSP)
		summary.TotalSSP = summary.TotalSSP.Add(line.AsSSP)
	}
	summary.TotalOffset = summary.TotalDSP.Sub(summary.TotalSSP)
	return &summary, nil
}
