package domain

import (
	"fmt"
	"strings"

	"github.com/Velocity-Explorations/concierge/internal/apperrors"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.AmericanEnglish)

// LocationKind tags a location as domestic (US) or foreign.
type LocationKind int

const (
	LocationDomestic LocationKind = iota
	LocationForeign
)

// Location identifies where a stay takes place. A domestic location always
// carries a state and the US country code; a foreign location never carries a
// state.
type Location struct {
	Kind    LocationKind
	Country CountryCode
	State   string // two-letter code, domestic only
	City    string
}

// NewDomesticLocation builds a validated US location.
func NewDomesticLocation(city, state string) (Location, error) {
	if !IsUSState(state) {
		return Location{}, fmt.Errorf("%w: unknown state code %q", apperrors.ErrValidation, state)
	}
	return Location{
		Kind:    LocationDomestic,
		Country: CountryUnitedStates,
		State:   strings.ToUpper(state),
		City:    city,
	}, nil
}

// NewForeignLocation builds a validated non-US location.
func NewForeignLocation(country, city string) (Location, error) {
	code, ok := ParseCountry(country)
	if !ok {
		return Location{}, fmt.Errorf("%w: unknown country %q", apperrors.ErrValidation, country)
	}
	if code == CountryUnitedStates {
		return Location{}, fmt.Errorf("%w: United States stays must use a domestic location", apperrors.ErrValidation)
	}
	return Location{
		Kind:    LocationForeign,
		Country: code,
		City:    city,
	}, nil
}

// String renders the location for response payloads and logs.
func (l Location) String() string {
	if l.Kind == LocationDomestic {
		if l.City == "" {
			return l.State + ", United States"
		}
		return l.City + ", " + l.State + ", United States"
	}
	name := titleCaser.String(strings.ToLower(strings.ReplaceAll(string(l.Country), "_", " ")))
	if l.City == "" {
		return name
	}
	return l.City + ", " + name
}

// Stay is one leg of a travel request: a location, a day count and the
// per-diem adjustment flags. Request-scoped and immutable.
type Stay struct {
	Location       Location
	Days           int
	FirstTravelDay bool
	LastTravelDay  bool
	DeductMeals    bool
}

// Validate rejects stays that must never reach an external source.
func (s Stay) Validate() error {
	if s.Days < 1 {
		return fmt.Errorf("%w: day count must be at least 1, got %d", apperrors.ErrValidation, s.Days)
	}
	return nil
}

// StayCost is the computed cost line for a single stay. Derived, never
// mutated after creation.
type StayCost struct {
	Location       Location
	MealCostUSD    decimal.Decimal
	LodgingCostUSD decimal.Decimal
	TotalCostUSD   decimal.Decimal
	Local          CurrencyAmount
}
