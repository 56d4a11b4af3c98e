package dto

import (
	"fmt"

	"github.com/Velocity-Explorations/concierge/internal/apperrors"
	"github.com/Velocity-Explorations/concierge/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LocationRequest identifies where a stay takes place. Domestic stays carry a
// two-letter state code; foreign stays carry a country name instead.
type LocationRequest struct {
	Country string `json:"country,omitempty"`
	State   string `json:"state,omitempty"`
	City    string `json:"city,omitempty"`
}

// StayRequest is one leg of a travel request.
type StayRequest struct {
	Location       LocationRequest `json:"location" binding:"required"`
	Days           int             `json:"days" binding:"required,min=1"`
	FirstTravelDay bool            `json:"firstTravelDay"`
	LastTravelDay  bool            `json:"lastTravelDay"`
	DeductMeals    bool            `json:"deductMeals"`
}

// PerDiemRequest is the body of POST /estimates/per-diem.
type PerDiemRequest struct {
	Stays []StayRequest `json:"stays" binding:"required,min=1,dive"`
}

// ToDomain converts a StayRequest into a validated domain stay. A request with
// a state and no country (or the United States) is domestic; anything else
// must name a known foreign country.
func (r StayRequest) ToDomain() (domain.Stay, error) {
	var loc domain.Location
	var err error
	switch {
	case r.Location.State != "":
		if r.Location.Country != "" {
			if code, ok := domain.ParseCountry(r.Location.Country); !ok || code != domain.CountryUnitedStates {
				return domain.Stay{}, fmt.Errorf("%w: state %q given for non-US country %q",
					apperrors.ErrValidation, r.Location.State, r.Location.Country)
			}
		}
		loc, err = domain.NewDomesticLocation(r.Location.City, r.Location.State)
	case r.Location.Country != "":
		loc, err = domain.NewForeignLocation(r.Location.Country, r.Location.City)
	default:
		return domain.Stay{}, fmt.Errorf("%w: location needs a country or a US state", apperrors.ErrValidation)
	}
	if err != nil {
		return domain.Stay{}, err
	}

	return domain.Stay{
		Location:       loc,
		Days:           r.Days,
		FirstTravelDay: r.FirstTravelDay,
		LastTravelDay:  r.LastTravelDay,
		DeductMeals:    r.DeductMeals,
	}, nil
}

// ToStays converts the whole request, failing on the first invalid stay.
func (r PerDiemRequest) ToStays() ([]domain.Stay, error) {
	stays := make([]domain.Stay, 0, len(r.Stays))
	for i, sr := range r.Stays {
		stay, err := sr.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("stay %d: %w", i, err)
		}
		stays = append(stays, stay)
	}
	return stays, nil
}

// StayCostResponse is one priced cost line.
type StayCostResponse struct {
	Location      string          `json:"location"`
	MealCost      decimal.Decimal `json:"mealCost"`
	LodgingCost   decimal.Decimal `json:"lodgingCost"`
	TotalCost     decimal.Decimal `json:"totalCost"`
	LocalCurrency string          `json:"localCurrency"`
	LocalAmount   decimal.Decimal `json:"localAmount"`
}

// PerDiemResponse is the body returned by POST /estimates/per-diem.
type PerDiemResponse struct {
	Costs      []StayCostResponse `json:"costs"`
	GrandTotal decimal.Decimal    `json:"grandTotal"`
}

// ToPerDiemResponse maps computed stay costs onto the response payload.
func ToPerDiemResponse(costs []domain.StayCost) PerDiemResponse {
	resp := PerDiemResponse{Costs: make([]StayCostResponse, len(costs))}
	for i, cost := range costs {
		resp.Costs[i] = StayCostResponse{
			Location:      cost.Location.String(),
			MealCost:      cost.MealCostUSD,
			LodgingCost:   cost.LodgingCostUSD,
			TotalCost:     cost.TotalCostUSD,
			LocalCurrency: string(cost.Local.Currency),
			LocalAmount:   cost.Local.Amount,
		}
		resp.GrandTotal = resp.GrandTotal.Add(cost.TotalCostUSD)
	}
	return resp
}
