package domain

import (
	"regexp"
	"time"
)

// Partner List sheet columns.
const (
	ColAgreementDate  = "Agreement Start Date"
	ColLegalName      = "Legal Entity Name"
	ColShortName      = "Short Name using in Bidscube"
	ColAddress        = "Registered Address"
	ColCountry        = "Country"
	ColEntityType     = "Foreign / Indian Entity"
	ColGSTIN          = "GSTIN"
	ColPaymentTerms   = "Payment Terms"
	ColContactPerson  = "Contact Person"
	ColDesignation    = "Designation"
	ColContactNo      = "Contact No."
	ColEmail1         = "Email 1"
	ColEmail2         = "Email 2"
	ColEmail3         = "Email 3"
	ColFinanceContact = "Finance Contact"
	ColFinanceEmail   = "Finance Email"
)

const CountryIndia = "India (IN)"

// Countries the onboarding form offers.
var Countries = []string{
	CountryIndia, "United States (US)", "United Kingdom (UK)",
	"Singapore (SG)", "UAE (AE)", "Germany (DE)",
	"Australia (AU)", "Canada (CA)",
}

// PaymentTermsOptions are the supported settlement terms.
var PaymentTermsOptions = []string{"Net 30", "Net 45", "Net 60", "Net 90"}

type EntityType string

const (
	EntityIndian  EntityType = "Indian"
	EntityForeign EntityType = "Foreign"
)

// EntityTypeFor derives the entity flag from the partner's country.
func EntityTypeFor(country string) EntityType {
	if country == CountryIndia {
		return EntityIndian
	}
	return EntityForeign
}

// CurrencyFor tags Indian partners INR, everyone else USD. Cosmetic only,
// there is no conversion anywhere.
func CurrencyFor(country string) string {
	if country == CountryIndia {
		return "INR"
	}
	return "USD"
}

var termDaysPattern = regexp.MustCompile(`\d+`)

// TermDays extracts the day count from a payment term such as "Net 30".
// Unparseable or absent terms read as 0 days; this never errors.
func TermDays(terms string) int {
	match := termDaysPattern.FindString(terms)
	if match == "" {
		return 0
	}
	days := 0
	for _, c := range match {
		days = days*10 + int(c-'0')
	}
	return days
}

// Partner is one onboarded partner from the directory. Rows are append-only:
// there is no update or delete path.
type Partner struct {
	AgreementDate  time.Time  `json:"agreement_date"`
	LegalName      string     `json:"legal_name"`
	ShortName      string     `json:"short_name"`
	Address        string     `json:"address,omitempty"`
	Country        string     `json:"country"`
	EntityType     EntityType `json:"entity_type"`
	GSTIN          string     `json:"gstin,omitempty"`
	PaymentTerms   string     `json:"payment_terms"`
	ContactPerson  string     `json:"contact_person,omitempty"`
	Designation    string     `json:"designation,omitempty"`
	ContactNo      string     `json:"contact_no,omitempty"`
	Email1         string     `json:"email1,omitempty"`
	Email2         string     `json:"email2,omitempty"`
	Email3         string     `json:"email3,omitempty"`
	FinanceContact string     `json:"finance_contact,omitempty"`
	FinanceEmail   string     `json:"finance_email,omitempty"`
}

// PartnerHeader is the Partner List sheet header, in column order.
func PartnerHeader() []string {
	return []string{
		ColAgreementDate, ColLegalName, ColShortName, ColAddress, ColCountry,
		ColEntityType, ColGSTIN, ColPaymentTerms, ColContactPerson,
		ColDesignation, ColContactNo, ColEmail1, ColEmail2, ColEmail3,
		ColFinanceContact, ColFinanceEmail,
	}
}

// PartnerFromRecord maps a directory row; unknown cells stay blank.
func PartnerFromRecord(rec Record) Partner {
	p := Partner{
		AgreementDate:  rec.Date(ColAgreementDate),
		LegalName:      rec.Str(ColLegalName),
		ShortName:      rec.Str(ColShortName),
		Address:        rec.Str(ColAddress),
		Country:        rec.Str(ColCountry),
		EntityType:     EntityType(rec.Str(ColEntityType)),
		GSTIN:          rec.Str(ColGSTIN),
		PaymentTerms:   rec.Str(ColPaymentTerms),
		ContactPerson:  rec.Str(ColContactPerson),
		Designation:    rec.Str(ColDesignation),
		ContactNo:      rec.Str(ColContactNo),
		Email1:         rec.Str(ColEmail1),
		Email2:         rec.Str(ColEmail2),
		Email3:         rec.Str(ColEmail3),
		FinanceContact: rec.Str(ColFinanceContact),
		FinanceEmail:   rec.Str(ColFinanceEmail),
	}
	if p.EntityType == "" && p.Country != "" {
		p.EntityType = EntityTypeFor(p.Country)
	}
	return p
}

// Values renders the partner as a sheet row matching PartnerHeader.
func (p Partner) Values() []string {
	return []string{
		FormatDateISO(p.AgreementDate), p.LegalName, p.ShortName, p.Address,
		p.Country, string(p.EntityType), p.GSTIN, p.PaymentTerms,
		p.ContactPerson, p.Designation, p.ContactNo, p.Email1, p.Email2,
		p.Email3, p.FinanceContact, p.FinanceEmail,
	}
}
