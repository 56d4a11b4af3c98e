package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Velocity-Explorations/concierge/internal/apperrors"
	"github.com/Velocity-Explorations/concierge/internal/core/domain"
	"github.com/Velocity-Explorations/concierge/internal/core/ports"
	"github.com/Velocity-Explorations/concierge/internal/normalize"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// otherPostName is the synthetic country-wide fallback post in the foreign
// rate table.
const otherPostName = "other"

// PerDiemService resolves daily meal-and-lodging rates per stay and
// aggregates them into cost lines. Stays are independent units of work: one
// stay's source failure degrades that stay only.
type PerDiemService struct {
	domestic      ports.DomesticRateSource
	foreign       ports.ForeignRateSource
	currency      *CurrencyService
	sourceTimeout time.Duration
	logger        *slog.Logger
	now           func() time.Time
}

// NewPerDiemService creates a PerDiemService.
func NewPerDiemService(
	domestic ports.DomesticRateSource,
	foreign ports.ForeignRateSource,
	currency *CurrencyService,
	sourceTimeout time.Duration,
	logger *slog.Logger,
) *PerDiemService {
	return &PerDiemService{
		domestic:      domestic,
		foreign:       foreign,
		currency:      currency,
		sourceTimeout: sourceTimeout,
		logger:        logger,
		now:           time.Now,
	}
}

// GetPerDiemEstimate resolves and prices every stay in the request. All
// validation happens before any external call; stays are then resolved
// concurrently. Only ErrValidation and ErrUnsupportedPolicy fail the request
// as a whole.
func (s *PerDiemService) GetPerDiemEstimate(ctx context.Context, stays []domain.Stay) ([]domain.StayCost, error) {
	if len(stays) == 0 {
		return nil, fmt.Errorf("%w: request contains no stays", apperrors.ErrValidation)
	}
	for i, stay := range stays {
		if err := stay.Validate(); err != nil {
			return nil, fmt.Errorf("stay %d: %w", i, err)
		}
	}

	sameCountry := singleForeignCountry(stays)

	costs := make([]domain.StayCost, len(stays))
	g, gctx := errgroup.WithContext(ctx)
	for i, stay := range stays {
		i, stay := i, stay
		g.Go(func() error {
			rate, err := s.resolveRate(gctx, stay.Location, stay.DeductMeals, sameCountry)
			if err != nil {
				return fmt.Errorf("resolving rate for %s: %w", stay.Location, err)
			}
			costs[i] = AggregateStayCost(stay, rate)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return costs, nil
}

// singleForeignCountry reports whether a multi-stay itinerary is entirely
// foreign within one country, the degenerate case treated as domestic travel
// within that country. A lone foreign stay is ordinary travel and keeps its
// country's own policy.
func singleForeignCountry(stays []domain.Stay) bool {
	if len(stays) < 2 {
		return false
	}
	country := domain.CountryCode("")
	for _, stay := range stays {
		if stay.Location.Kind != domain.LocationForeign {
			return false
		}
		if country == "" {
			country = stay.Location.Country
		} else if country != stay.Location.Country {
			return false
		}
	}
	return country != ""
}

// resolveRate selects and applies the rate-determination policy for one
// location. Exactly one branch applies; the foreign rate table is fetched at
// most once and reused for the rate, the cap check and the lodging fallback.
func (s *PerDiemService) resolveRate(ctx context.Context, loc domain.Location, deductMeals, sameCountry bool) (domain.ResolvedRate, error) {
	policy := domain.PolicyFor(loc.Country)

	if policy == domain.PolicyDomestic {
		return s.resolveDomestic(ctx, loc, deductMeals)
	}

	// One table fetch serves the rate lookup, the cap validation and the
	// lodging fallback. Flat-rate countries skip the fetch entirely.
	var row *domain.RateRow
	if policy != domain.PolicyFlatRate {
		row = s.fetchRateRow(ctx, loc)
	}

	currency := domain.CurrencyFor(loc.Country)
	var mieUSD, lodgingUSD decimal.Decimal
	capExempt := false

	switch policy {
	case domain.PolicyFlatRate:
		// Flat daily amount covering meals, incidentals and lodging;
		// lodging reported separately as zero. Never deducted.
		mieUSD = domain.EthiopiaFlatDaily
		capExempt = true

	case domain.PolicyFixedLocal:
		// Fixed local-currency amount, never deducted.
		usd, err := s.currency.Convert(ctx, domain.CameroonDailyXAF, currency, domain.CurrencyUSD)
		if err != nil {
			s.logger.Warn("fixed local-currency conversion failed, using international default",
				slog.String("country", string(loc.Country)), slog.String("error", err.Error()))
			usd = domain.GenericIntlDaily
		}
		mieUSD = usd
		capExempt = true

	case domain.PolicyTieredCity:
		local := domain.PhilippinesTierPHP(normalize.Text(loc.City))
		if deductMeals {
			// This country's double-payment policy deducts in local
			// currency before conversion.
			local = local.Mul(domain.MealRetentionRatio)
		}
		usd, err := s.currency.Convert(ctx, local, currency, domain.CurrencyUSD)
		if err != nil {
			s.logger.Warn("tiered local-currency conversion failed, using international default",
				slog.String("country", string(loc.Country)), slog.String("error", err.Error()))
			usd = domain.GenericIntlDaily
			if deductMeals {
				usd = usd.Mul(domain.MealRetentionRatio)
			}
		}
		mieUSD = usd
		capExempt = true

	case domain.PolicyCIS, domain.PolicyDSSR, domain.PolicyDefault:
		if sameCountry {
			// Travel entirely within one foreign country pays the reduced
			// domestic-equivalent rate.
			mieUSD = domain.SameCountryDaily
			if deductMeals {
				mieUSD = mieUSD.Mul(domain.MealRetentionRatio)
			}
			break
		}
		switch policy {
		case domain.PolicyCIS:
			mieUSD = domain.CISDaily
			if deductMeals {
				mieUSD = decimal.Max(mieUSD.Sub(domain.CISMealDeduction), decimal.Zero)
			}
		case domain.PolicyDSSR:
			if row == nil {
				// Not in the table after the Other fallback: use the
				// generic international default.
				mieUSD = domain.GenericIntlDaily
			} else {
				mieUSD = decimal.NewFromInt(int64(row.MIERate))
				lodgingUSD = decimal.NewFromInt(int64(row.MaxLodgingRate))
			}
			if deductMeals {
				mieUSD = mieUSD.Mul(domain.MealRetentionRatio)
			}
		default:
			mieUSD = domain.GenericIntlDaily
			if deductMeals {
				mieUSD = mieUSD.Mul(domain.MealRetentionRatio)
			}
		}

	default:
		return domain.ResolvedRate{}, fmt.Errorf("%w: country %s maps to unknown policy %d",
			apperrors.ErrUnsupportedPolicy, loc.Country, policy)
	}

	// The authoritative row is a ceiling for every DSSR-style computation.
	if !capExempt && row != nil {
		rowMIE := decimal.NewFromInt(int64(row.MIERate))
		if mieUSD.GreaterThan(rowMIE) {
			mieUSD = rowMIE
		}
	}
	if lodgingUSD.IsZero() && row != nil && policy != domain.PolicyFlatRate {
		lodgingUSD = decimal.NewFromInt(int64(row.MaxLodgingRate))
	}

	return s.withLocalMirror(ctx, loc, mieUSD, lodgingUSD, currency), nil
}

// resolveDomestic applies the GSA policy: source M&IE capped at $80, 20%
// retention on meal deduction, lodging straight from the source.
func (s *PerDiemService) resolveDomestic(ctx context.Context, loc domain.Location, deductMeals bool) (domain.ResolvedRate, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.sourceTimeout)
	defer cancel()

	now := s.now()
	fetched, err := s.domestic.FetchDomesticRate(fetchCtx, loc.City, loc.State, now.Month(), now.Year())
	if err != nil {
		// The source contract is degrade-not-fail; treat a stray error the
		// same as missing data.
		s.logger.Warn("domestic rate fetch errored, using fallback cap",
			slog.String("state", loc.State), slog.String("error", err.Error()))
		fetched = domain.DomesticRate{}
	}

	mie := fetched.MIETotal
	if mie.IsZero() || mie.GreaterThan(domain.DomesticMIECap) {
		mie = domain.DomesticMIECap
	}
	if deductMeals {
		mie = mie.Mul(domain.MealRetentionRatio)
	}

	return domain.ResolvedRate{
		MIEUSD:        mie,
		LodgingUSD:    fetched.LodgingRate,
		LocalCurrency: domain.CurrencyUSD,
		MIELocal:      mie,
		LodgingLocal:  fetched.LodgingRate,
	}, nil
}

// fetchRateRow fetches the foreign rate table once and selects the row for
// the location: exact normalized post-name match, else the "Other" fallback,
// else nil.
func (s *PerDiemService) fetchRateRow(ctx context.Context, loc domain.Location) *domain.RateRow {
	fetchCtx, cancel := context.WithTimeout(ctx, s.sourceTimeout)
	defer cancel()

	rows, err := s.foreign.FetchForeignRates(fetchCtx, loc.Country)
	if err != nil {
		s.logger.Warn("foreign rate fetch errored, treating as not found",
			slog.String("country", string(loc.Country)), slog.String("error", err.Error()))
		return nil
	}

	wanted := normalize.Text(loc.City)
	var other *domain.RateRow
	for i := range rows {
		post := normalize.Text(rows[i].PostName)
		if wanted != "" && post == wanted {
			return &rows[i]
		}
		if post == otherPostName && other == nil {
			other = &rows[i]
		}
	}
	return other
}

// withLocalMirror attaches the local-currency mirror of a resolved USD rate.
// If no rate is obtainable the mirror degrades to USD.
func (s *PerDiemService) withLocalMirror(ctx context.Context, loc domain.Location, mieUSD, lodgingUSD decimal.Decimal, currency domain.CurrencyCode) domain.ResolvedRate {
	resolved := domain.ResolvedRate{
		MIEUSD:        mieUSD,
		LodgingUSD:    lodgingUSD,
		LocalCurrency: domain.CurrencyUSD,
		MIELocal:      mieUSD,
		LodgingLocal:  lodgingUSD,
	}
	if currency == domain.CurrencyUSD {
		return resolved
	}

	rate, err := s.currency.Rate(ctx, domain.CurrencyUSD, currency)
	if err != nil {
		s.logger.Warn("local mirror conversion failed, reporting USD",
			slog.String("country", string(loc.Country)), slog.String("currency", string(currency)),
			slog.String("error", err.Error()))
		return resolved
	}

	resolved.LocalCurrency = currency
	resolved.MIELocal = mieUSD.Mul(rate)
	resolved.LodgingLocal = lodgingUSD.Mul(rate)
	return resolved
}

// AggregateStayCost prices one stay from its resolved daily rate. Pure
// function: flagged first/last travel days pay 75% M&IE (a one-day stay with
// both flags gets a single 75% day, not a compounded reduction), lodging is
// charged in full every day, and the local total scales the local M&IE by the
// same ratio the USD meal total bears to the undiscounted daily rate.
func AggregateStayCost(stay domain.Stay, rate domain.ResolvedRate) domain.StayCost {
	days := decimal.NewFromInt(int64(stay.Days))

	reducedDays := 0
	if stay.FirstTravelDay {
		reducedDays++
	}
	if stay.LastTravelDay && stay.Days > 1 {
		reducedDays++
	}
	if stay.Days == 1 && (stay.FirstTravelDay || stay.LastTravelDay) {
		reducedDays = 1
	}

	fullDays := decimal.NewFromInt(int64(stay.Days - reducedDays))
	reduced := decimal.NewFromInt(int64(reducedDays))

	mealUSD := rate.MIEUSD.Mul(fullDays).Add(rate.MIEUSD.Mul(domain.TravelDayRatio).Mul(reduced))
	lodgingUSD := rate.LodgingUSD.Mul(days)
	totalUSD := mealUSD.Add(lodgingUSD)

	// Effective paid-day ratio, e.g. 3 full days + 1 travel day = 3.75.
	mealRatio := fullDays.Add(domain.TravelDayRatio.Mul(reduced))
	localAmount := rate.MIELocal.Mul(mealRatio).Add(rate.LodgingLocal.Mul(days)).Round(2)

	return domain.StayCost{
		Location:       stay.Location,
		MealCostUSD:    mealUSD.Round(2),
		LodgingCostUSD: lodgingUSD.Round(2),
		TotalCostUSD:   totalUSD.Round(2),
		Local:          domain.CurrencyAmount{Amount: localAmount, Currency: rate.LocalCurrency},
	}
}
