package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"revtracker/internal/domain"
)

// NewPartner is the onboarding input. GSTIN is only meaningful for Indian
// entities and is validated in OnboardPartner since the rule crosses two
// fields.
type NewPartner struct {
	AgreementDate time.Time `json:"agreement_date" validate:"required"`
	LegalName     string    `json:"legal_name" validate:"required,max=50"`
	ShortName     string    `json:"short_name" validate:"required,max=20"`
	Address       string    `json:"address" validate:"omitempty,max=200"`
	Country       string    `json:"country" validate:"required"`
	GSTIN         string    `json:"gstin" validate:"omitempty,len=15"`
	PaymentTerms  string    `json:"payment_terms" validate:"required,oneof='Net 30' 'Net 45' 'Net 60' 'Net 90'"`
	ContactName   string    `json:"contact_name" validate:"omitempty,max=50"`
	ContactEmail  string    `json:"contact_email" validate:"omitempty,email"`
	FinanceEmail  string    `json:"finance_email" validate:"omitempty,email"`
}

// OnboardPartner validates the input, derives the entity type and currency
// from the country, and appends the partner to the directory. Short names
// are not checked for uniqueness here; a duplicate only draws a warning,
// matching the first-match-wins join.
func (t *Tracker) OnboardPartner(ctx context.Context, input NewPartner) (*domain.Partner, error) {
	if err := t.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid partner: %w", err)
	}
	if !validCountry(input.Country) {
		return nil, fmt.Errorf("invalid partner: unknown country %q", input.Country)
	}
	if input.GSTIN != "" && input.Country != domain.CountryIndia {
		return nil, fmt.Errorf("invalid partner: GSTIN is only valid for %s", domain.CountryIndia)
	}

	existing, err := t.ListPartners(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if p.ShortName == input.ShortName {
			t.log.WithFields(logrus.Fields{
				"module":     "usecase",
				"short_name": input.ShortName,
			}).Warn("short name already in use, master rows will join to the first entry")
			break
		}
	}

	partner := domain.Partner{
		AgreementDate: input.AgreementDate,
		LegalName:     input.LegalName,
		ShortName:     input.ShortName,
		Address:       input.Address,
		Country:       input.Country,
		EntityType:    domain.EntityTypeFor(input.Country),
		GSTIN:         input.GSTIN,
		PaymentTerms:  input.PaymentTerms,
		ContactPerson: input.ContactName,
		Email1:        input.ContactEmail,
		FinanceEmail:  input.FinanceEmail,
	}
	if err := t.store.AppendRow(ctx, TablePartners, partner.Values()); err != nil {
		return nil, fmt.Errorf("could not append partner: %w", err)
	}
	return &partner, nil
}

func validCountry(country string) bool {
	for _, c := range domain.Countries {
		if c == country {
			return true
		}
	}
	return false
}
