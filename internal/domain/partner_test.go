package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermDays(t *testing.T) {
	tests := []struct {
		terms string
		want  int
	}{
		{"Net 30", 30},
		{"Net 45", 45},
		{"Net 90", 90},
		{"net45", 45},
		{"", 0},
		{"on receipt", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TermDays(tt.terms), "terms %q", tt.terms)
	}
}

func TestEntityAndCurrencyForCountry(t *testing.T) {
	assert.Equal(t, EntityIndian, EntityTypeFor("India (IN)"))
	assert.Equal(t, "INR", CurrencyFor("India (IN)"))

	assert.Equal(t, EntityForeign, EntityTypeFor("Singapore (SG)"))
	assert.Equal(t, "USD", CurrencyFor("Singapore (SG)"))
	assert.Equal(t, EntityForeign, EntityTypeFor(""))
}

func TestPartnerFromRecord_DerivesEntityType(t *testing.T) {
	rec := Record{
		"Agreement Start Date":         "2024-02-10",
		"Legal Entity Name":            "Acme Media Private Limited",
		"Short Name using in Bidscube": "acme",
		"Country":                      "India (IN)",
		"Payment Terms":                "Net 45",
	}

	p := PartnerFromRecord(rec)

	assert.Equal(t, "acme", p.ShortName)
	assert.Equal(t, EntityIndian, p.EntityType)
	assert.Equal(t, "2024-02-10", FormatDateISO(p.AgreementDate))
}

func TestPartner_ValuesMatchesHeader(t *testing.T) {
	p := Partner{ShortName: "acme", Country: "India (IN)"}
	assert.Len(t, p.Values(), len(PartnerHeader()))
}

func TestRecord_Decimal(t *testing.T) {
	rec := Record{
		"plain":    "1234.5",
		"currency": "$1,234.50",
		"spaced":   " 1 234 ",
		"bad":      "a lot",
	}

	assert.Equal(t, "1234.5", rec.Decimal("plain").String())
	assert.Equal(t, "1234.5", rec.Decimal("currency").String())
	assert.Equal(t, "1234", rec.Decimal("spaced").String())
	assert.True(t, rec.Decimal("bad").IsZero())
	assert.True(t, rec.Decimal("missing").IsZero())
}
