package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/Velocity-Explorations/concierge/internal/apperrors"
	"github.com/Velocity-Explorations/concierge/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	agencyMarkup   = decimal.NewFromFloat(1.35)
	rushPremium    = decimal.NewFromFloat(1.35)
	volumeDiscount = decimal.NewFromFloat(0.15)
)

// volumeDiscountThreshold is the quantity from which the discount applies.
const volumeDiscountThreshold = 5000

// uomCanonical maps the unit-of-measure spellings seen in vendor data to
// canonical units. Entries mapping to "" are ignored when loading history.
var uomCanonical = map[string]string{
	"target word":      "Word",
	"source word":      "Word",
	"word":             "Word",
	"source wrd":       "Word",
	"target wrd":       "Word",
	"english word":     "Word",
	"slides":           "Page",
	"page":             "Page",
	"drawing":          "Page",
	"rush rate":        "Rush Rate (Word)",
	"rush rate (word)": "Rush Rate (Word)",
	"overtime hour":    "Overtime Hour",
	"hour":             "Hour",
	"minute":           "Hour",
	"day":              "Day",
	"8-hr day":         "Day",
	"8-hr. day":        "Day",
	"10-hr. day":       "Day",
	"4-hr half day":    "Half Day",
	"half day":         "Half Day",
	"flat rate":        "",
	"each":             "",
	"project":          "",
	"package":          "",
	"minimum fee":      "",
	"null":             "",
}

// CanonicalUOM normalizes a raw unit-of-measure string; ok is false for
// units that cannot be priced per-unit.
func CanonicalUOM(raw string) (string, bool) {
	u, found := uomCanonical[strings.ToLower(strings.TrimSpace(raw))]
	if !found || u == "" {
		return "", false
	}
	return u, true
}

// historicalRate accumulates vendor observations for one (src, target, uom)
// key so the average can absorb new loads over time.
type historicalRate struct {
	sum   decimal.Decimal
	count int64
}

func (h historicalRate) average() decimal.Decimal {
	return h.sum.Div(decimal.NewFromInt(h.count)).Round(3)
}

// TranslationService prices translation and interpretation jobs from vendor
// history when available and industry tier bands otherwise.
type TranslationService struct {
	mu     sync.RWMutex
	rates  map[string]historicalRate
	logger *slog.Logger
}

// NewTranslationService creates a TranslationService with an empty history.
func NewTranslationService(logger *slog.Logger) *TranslationService {
	return &TranslationService{
		rates:  make(map[string]historicalRate),
		logger: logger,
	}
}

// HistoricalLoadResult summarizes one CSV ingestion.
type HistoricalLoadResult struct {
	Loaded  int
	Skipped int
	Log     string
}

// LoadHistoricalRates ingests a vendor-rate CSV into the in-process history.
// Expected columns (case-insensitive): Source, Target, UOM, Vendor Rate,
// Translation Direction. Rows marked "To / From" count for both directions.
// Bad rows are skipped and reported, never fatal.
func (s *TranslationService) LoadHistoricalRates(r io.Reader) (HistoricalLoadResult, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return HistoricalLoadResult{}, fmt.Errorf("%w: reading csv header: %v", apperrors.ErrValidation, err)
	}

	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	field := func(row []string, names ...string) string {
		for _, name := range names {
			if i, ok := col[name]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}

	var result HistoricalLoadResult
	var log strings.Builder
	line := 1

	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		line++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			fmt.Fprintf(&log, "row %d: %v\n", line, err)
			continue
		}

		src := strings.ToUpper(field(row, "src", "source", "source language"))
		target := strings.ToUpper(field(row, "target", "target language"))
		if _, ok := domain.TierForLanguage(src); !ok {
			result.Skipped++
			fmt.Fprintf(&log, "row %d: unknown source language %q\n", line, src)
			continue
		}
		if _, ok := domain.TierForLanguage(target); !ok {
			result.Skipped++
			fmt.Fprintf(&log, "row %d: unknown target language %q\n", line, target)
			continue
		}

		uom, ok := CanonicalUOM(field(row, "uom", "unit of measure"))
		if !ok {
			result.Skipped++
			fmt.Fprintf(&log, "row %d: unpriceable unit of measure %q\n", line, field(row, "uom", "unit of measure"))
			continue
		}

		rate, err := decimal.NewFromString(field(row, "vendor rate", "rate"))
		if err != nil || rate.LessThanOrEqual(decimal.Zero) {
			result.Skipped++
			fmt.Fprintf(&log, "row %d: unusable vendor rate %q\n", line, field(row, "vendor rate", "rate"))
			continue
		}

		s.accumulate(src, target, uom, rate)
		if field(row, "translation direction") == "To / From" {
			// Bi-directional rows price the reverse pair too.
			s.accumulate(target, src, uom, rate)
		}
		result.Loaded++
	}

	fmt.Fprintf(&log, "loaded %d rows, skipped %d\n", result.Loaded, result.Skipped)
	result.Log = log.String()
	s.logger.Info("historical translation rates loaded",
		slog.Int("loaded", result.Loaded), slog.Int("skipped", result.Skipped))
	return result, nil
}

func (s *TranslationService) accumulate(src, target, uom string, rate decimal.Decimal) {
	key := historyKey(src, target, uom)
	h := s.rates[key]
	h.sum = h.sum.Add(rate)
	h.count++
	s.rates[key] = h
}

func (s *TranslationService) historicalAverage(src, target, uom string) (decimal.Decimal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.rates[historyKey(src, target, uom)]
	if !ok || h.count == 0 {
		return decimal.Zero, false
	}
	return h.average(), true
}

func historyKey(src, target, uom string) string {
	return src + "_" + target + "_" + uom
}

// EstimateTranslations prices each job independently. Unknown languages,
// identical language pairs and non-positive quantities are validation errors.
func (s *TranslationService) EstimateTranslations(jobs []domain.TranslationJob) ([]domain.TranslationEstimate, error) {
	estimates := make([]domain.TranslationEstimate, 0, len(jobs))
	for i, job := range jobs {
		estimate, err := s.estimateJob(job)
		if err != nil {
			return nil, fmt.Errorf("job %d: %w", i, err)
		}
		estimates = append(estimates, estimate)
	}
	return estimates, nil
}

func (s *TranslationService) estimateJob(job domain.TranslationJob) (domain.TranslationEstimate, error) {
	if job.Source == job.Target {
		return domain.TranslationEstimate{}, fmt.Errorf("%w: source and target languages cannot be the same", apperrors.ErrValidation)
	}
	if job.Quantity < 1 {
		return domain.TranslationEstimate{}, fmt.Errorf("%w: quantity must be at least 1", apperrors.ErrValidation)
	}
	srcTier, ok := domain.TierForLanguage(job.Source)
	if !ok {
		return domain.TranslationEstimate{}, fmt.Errorf("%w: unknown language %q", apperrors.ErrValidation, job.Source)
	}
	targetTier, ok := domain.TierForLanguage(job.Target)
	if !ok {
		return domain.TranslationEstimate{}, fmt.Errorf("%w: unknown language %q", apperrors.ErrValidation, job.Target)
	}

	// The harder language of the pair sets the band.
	tier := srcTier
	if targetTier > tier {
		tier = targetTier
	}

	switch job.Type {
	case "Translation":
		return s.estimateTranslation(job, tier), nil
	case "Interpretation", "Consecutive Interpretation", "Simultaneous Interpretation":
		return s.estimateInterpretation(job, tier), nil
	default:
		return domain.TranslationEstimate{}, fmt.Errorf("%w: unknown job type %q", apperrors.ErrValidation, job.Type)
	}
}

func (s *TranslationService) estimateTranslation(job domain.TranslationJob, tier domain.LanguageTier) domain.TranslationEstimate {
	var parts []string

	baseRate, fromHistory := s.historicalAverage(job.Source, job.Target, job.UnitOfMeasure)
	if fromHistory {
		parts = append(parts, fmt.Sprintf("Historical data: $%s per %s", baseRate.StringFixed(3), strings.ToLower(job.UnitOfMeasure)))
	} else {
		baseRate = domain.TranslationRates[tier].Mid()
		parts = append(parts, fmt.Sprintf("Industry rate: $%s per word (tier %d language)", baseRate.StringFixed(3), tier))
	}

	rate, parts := applyMarketAdjustments(baseRate, job, parts)

	subtotal := rate.Mul(decimal.NewFromInt(int64(job.Quantity)))
	total := subtotal
	if job.VolumeDiscount && job.Quantity >= volumeDiscountThreshold {
		total = subtotal.Mul(decimal.NewFromInt(1).Sub(volumeDiscount))
		parts = append(parts, fmt.Sprintf("Volume discount (-15%%): $%s -> $%s", subtotal.StringFixed(2), total.StringFixed(2)))
	}

	explanation := strings.Join(parts, " | ") + fmt.Sprintf(" x %d = $%s", job.Quantity, total.StringFixed(2))
	return domain.TranslationEstimate{Total: total.Round(2), Explanation: explanation}
}

func (s *TranslationService) estimateInterpretation(job domain.TranslationJob, tier domain.LanguageTier) domain.TranslationEstimate {
	rates := domain.ConsecutiveInterpretationRates
	label := "consecutive interpretation"
	if job.Type == "Simultaneous Interpretation" {
		rates = domain.SimultaneousInterpretationRates
		label = "simultaneous interpretation"
	}
	baseRate := rates[tier].Mid()

	parts := []string{fmt.Sprintf("Industry rate: $%s/hour (tier %d %s)", baseRate.StringFixed(0), tier, label)}
	rate, parts := applyMarketAdjustments(baseRate, job, parts)

	quantity := decimal.NewFromInt(int64(job.Quantity))
	var total decimal.Decimal
	switch strings.ToLower(job.UnitOfMeasure) {
	case "day", "half day":
		hours := decimal.NewFromInt(8)
		if strings.ToLower(job.UnitOfMeasure) == "half day" {
			hours = decimal.NewFromInt(4)
		}
		total = rate.Mul(hours).Mul(quantity)
		parts = append(parts, fmt.Sprintf("x %s hours x %d %s(s) = $%s",
			hours.String(), job.Quantity, strings.ToLower(job.UnitOfMeasure), total.StringFixed(2)))
	default:
		total = rate.Mul(quantity)
		parts = append(parts, fmt.Sprintf("x %d hours = $%s", job.Quantity, total.StringFixed(2)))
	}

	return domain.TranslationEstimate{Total: total.Round(2), Explanation: strings.Join(parts, " | ")}
}

// applyMarketAdjustments layers the provider-country multiplier, agency
// markup and rush premium onto a base rate.
func applyMarketAdjustments(rate decimal.Decimal, job domain.TranslationJob, parts []string) (decimal.Decimal, []string) {
	country := job.Country
	if country == "" {
		country = "US"
	}
	mult := domain.TranslationCountryMultiplier(strings.ToUpper(country))
	rate = rate.Mul(mult)
	if !mult.Equal(decimal.NewFromInt(1)) {
		parts = append(parts, fmt.Sprintf("Country adjustment (%s): x%s", country, mult.StringFixed(2)))
	}

	if job.ProviderType == "agency" {
		rate = rate.Mul(agencyMarkup)
		parts = append(parts, fmt.Sprintf("Agency markup: x%s", agencyMarkup.StringFixed(2)))
	}
	if job.Urgency == "rush" {
		rate = rate.Mul(rushPremium)
		parts = append(parts, fmt.Sprintf("Rush premium: x%s", rushPremium.StringFixed(2)))
	}
	return rate, parts
}
