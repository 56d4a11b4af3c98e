package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateRow is one post/season row of the foreign allowances rate table.
// Amounts are whole USD as published.
type RateRow struct {
	CountryName    string
	PostName       string
	SeasonBegin    string
	SeasonEnd      string
	MaxLodgingRate int
	MIERate        int
	MaxPerDiemRate int
	FootnoteIDs    []int
	EffectiveDate  time.Time
}

// DomesticRate is the GSA rate for a city/state/month. A zero value means the
// source had no data and the standard fallback cap applies.
type DomesticRate struct {
	MIETotal    decimal.Decimal
	LodgingRate decimal.Decimal
}

// IsZero reports whether the source returned no usable rate.
func (r DomesticRate) IsZero() bool {
	return r.MIETotal.IsZero() && r.LodgingRate.IsZero()
}

// ResolvedRate is the daily rate a policy resolution produces for one stay:
// USD meal and lodging components plus their local-currency mirrors.
type ResolvedRate struct {
	MIEUSD        decimal.Decimal
	LodgingUSD    decimal.Decimal
	LocalCurrency CurrencyCode
	MIELocal      decimal.Decimal
	LodgingLocal  decimal.Decimal
}

// PolicyKind selects the rate-determination rule for a country. Adding a
// country to a policy is a data change in countryPolicies, not a code change.
type PolicyKind int

const (
	// PolicyDefault is the generic international daily rate with no
	// country-specific data.
	PolicyDefault PolicyKind = iota
	// PolicyDomestic uses the GSA city/state lookup with the $80 M&IE cap.
	PolicyDomestic
	// PolicyFlatRate is a fixed USD amount covering meals, incidentals and
	// lodging combined; exempt from meal deduction.
	PolicyFlatRate
	// PolicyFixedLocal is a fixed local-currency amount converted to USD;
	// exempt from meal deduction.
	PolicyFixedLocal
	// PolicyTieredCity is a per-city tiered local-currency amount converted
	// to USD.
	PolicyTieredCity
	// PolicyCIS is the former-Soviet-bloc baseline with a flat meal
	// deduction amount.
	PolicyCIS
	// PolicyDSSR takes the allowances row's M&IE and lodging directly.
	PolicyDSSR
)

// countryPolicies is the policy dispatch table. Countries not listed fall
// through to PolicyDefault.
var countryPolicies = map[CountryCode]PolicyKind{
	CountryUnitedStates: PolicyDomestic,

	CountryEthiopia:    PolicyFlatRate,
	CountryCameroon:    PolicyFixedLocal,
	CountryPhilippines: PolicyTieredCity,

	// Former Soviet republics on the flat-deduction schedule.
	"ARMENIA":      PolicyCIS,
	"AZERBAIJAN":   PolicyCIS,
	"BELARUS":      PolicyCIS,
	"ESTONIA":      PolicyCIS,
	"GEORGIA":      PolicyCIS,
	"KAZAKHSTAN":   PolicyCIS,
	"KYRGYZSTAN":   PolicyCIS,
	"LATVIA":       PolicyCIS,
	"LITHUANIA":    PolicyCIS,
	"MOLDOVA":      PolicyCIS,
	"RUSSIA":       PolicyCIS,
	"TAJIKISTAN":   PolicyCIS,
	"TURKMENISTAN": PolicyCIS,
	"UKRAINE":      PolicyCIS,
	"UZBEKISTAN":   PolicyCIS,

	// Countries paid straight from the allowances table.
	"KENYA":    PolicyDSSR,
	"TANZANIA": PolicyDSSR,
	"NIGERIA":  PolicyDSSR,
	"MALAYSIA": PolicyDSSR,
	"VIETNAM":  PolicyDSSR,
}

// PolicyFor returns the rate-determination policy for a country.
func PolicyFor(code CountryCode) PolicyKind {
	if p, ok := countryPolicies[code]; ok {
		return p
	}
	return PolicyDefault
}

// Daily-rate policy constants, whole USD unless noted.
var (
	// DomesticMIECap caps the GSA M&IE rate.
	DomesticMIECap = decimal.NewFromInt(80)
	// GenericIntlDaily is the between-country international default.
	GenericIntlDaily = decimal.NewFromInt(80)
	// SameCountryDaily applies when every stay in a request shares one
	// foreign country.
	SameCountryDaily = decimal.NewFromInt(40)
	// CISDaily is the former-Soviet-bloc baseline.
	CISDaily = decimal.NewFromInt(40)
	// CISMealDeduction is subtracted (not scaled) when meals are provided;
	// the sum of the group's three per-meal deduction amounts.
	CISMealDeduction = decimal.NewFromInt(35)
	// EthiopiaFlatDaily covers meals, incidentals and lodging combined.
	EthiopiaFlatDaily = decimal.NewFromInt(25)
	// CameroonDailyXAF is the fixed local-currency daily amount.
	CameroonDailyXAF = decimal.NewFromInt(40000)

	// MealRetentionRatio is what remains of M&IE after the standard 80%
	// meal deduction.
	MealRetentionRatio = decimal.NewFromFloat(0.20)
	// TravelDayRatio applies to M&IE on flagged first/last travel days.
	TravelDayRatio = decimal.NewFromFloat(0.75)
)

// Philippine daily tiers in PHP, selected by normalized city name.
var (
	PhilippinesTierCapital   = decimal.NewFromInt(2200)
	PhilippinesTierSecondary = decimal.NewFromInt(1800)
	PhilippinesTierProvince  = decimal.NewFromInt(1500)
)

// philippinesCapitalCities are the capital-region cities on the top tier,
// keyed by normalized name.
var philippinesCapitalCities = map[string]struct{}{
	"manila":      {},
	"quezon city": {},
	"makati":      {},
	"pasig":       {},
	"taguig":      {},
	"pasay":       {},
	"mandaluyong": {},
	"paranaque":   {},
	"caloocan":    {},
}

// philippinesSecondaryCities are the two named middle-tier cities.
var philippinesSecondaryCities = map[string]struct{}{
	"cebu":  {},
	"davao": {},
}

// PhilippinesTierPHP returns the daily PHP amount for a normalized city name.
func PhilippinesTierPHP(normalizedCity string) decimal.Decimal {
	if _, ok := philippinesCapitalCities[normalizedCity]; ok {
		return PhilippinesTierCapital
	}
	if _, ok := philippinesSecondaryCities[normalizedCity]; ok {
		return PhilippinesTierSecondary
	}
	return PhilippinesTierProvince
}
