package domain

import "github.com/shopspring/decimal"

// LanguageTier is the industry demand band a language falls in; higher tiers
// command higher rates.
type LanguageTier int

const (
	TierCommon LanguageTier = iota + 1
	TierMidDemand
	TierAsianMiddleEastern
	TierRare
)

// TierRange is the published freelancer rate band for a tier and service.
type TierRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Mid returns the midpoint of the band, the rate used when no historical
// data exists for a language pair.
func (r TierRange) Mid() decimal.Decimal {
	return r.Min.Add(r.Max).Div(decimal.NewFromInt(2))
}

func tierRange(min, max float64) TierRange {
	return TierRange{Min: decimal.NewFromFloat(min), Max: decimal.NewFromFloat(max)}
}

// Per-word translation and per-hour interpretation bands by tier.
var (
	TranslationRates = map[LanguageTier]TierRange{
		TierCommon:             tierRange(0.10, 0.15),
		TierMidDemand:          tierRange(0.15, 0.20),
		TierAsianMiddleEastern: tierRange(0.20, 0.30),
		TierRare:               tierRange(0.25, 0.40),
	}
	ConsecutiveInterpretationRates = map[LanguageTier]TierRange{
		TierCommon:             tierRange(50, 120),
		TierMidDemand:          tierRange(70, 150),
		TierAsianMiddleEastern: tierRange(90, 180),
		TierRare:               tierRange(110, 200),
	}
	SimultaneousInterpretationRates = map[LanguageTier]TierRange{
		TierCommon:             tierRange(70, 150),
		TierMidDemand:          tierRange(90, 180),
		TierAsianMiddleEastern: tierRange(110, 220),
		TierRare:               tierRange(130, 250),
	}
)

// languageTiers classifies supported languages. Unlisted languages are
// rejected rather than guessed.
var languageTiers = map[string]LanguageTier{
	"ENGLISH":    TierCommon,
	"SPANISH":    TierCommon,
	"FRENCH":     TierCommon,
	"PORTUGUESE": TierCommon,
	"ITALIAN":    TierCommon,
	"GERMAN":     TierCommon,

	"DUTCH":      TierMidDemand,
	"POLISH":     TierMidDemand,
	"RUSSIAN":    TierMidDemand,
	"TURKISH":    TierMidDemand,
	"SWEDISH":    TierMidDemand,
	"UKRAINIAN":  TierMidDemand,
	"ROMANIAN":   TierMidDemand,
	"CZECH":      TierMidDemand,
	"SLOVAK":     TierMidDemand,
	"HUNGARIAN":  TierMidDemand,
	"DANISH":     TierMidDemand,
	"NORWEGIAN":  TierMidDemand,
	"FINNISH":    TierMidDemand,
	"GREEK":      TierMidDemand,
	"SERBIAN":    TierMidDemand,
	"CROATIAN":   TierMidDemand,
	"BOSNIAN":    TierMidDemand,
	"BULGARIAN":  TierMidDemand,
	"SLOVENIAN":  TierMidDemand,
	"ALBANIAN":   TierMidDemand,
	"LITHUANIAN": TierMidDemand,
	"LATVIAN":    TierMidDemand,
	"ESTONIAN":   TierMidDemand,

	"CHINESE":    TierAsianMiddleEastern,
	"JAPANESE":   TierAsianMiddleEastern,
	"KOREAN":     TierAsianMiddleEastern,
	"ARABIC":     TierAsianMiddleEastern,
	"HINDI":      TierAsianMiddleEastern,
	"HEBREW":     TierAsianMiddleEastern,
	"PERSIAN":    TierAsianMiddleEastern,
	"THAI":       TierAsianMiddleEastern,
	"MALAY":      TierAsianMiddleEastern,
	"INDONESIAN": TierAsianMiddleEastern,
	"GEORGIAN":   TierAsianMiddleEastern,
	"ARMENIAN":   TierAsianMiddleEastern,

	"VIETNAMESE":  TierRare,
	"BENGALI":     TierRare,
	"TAMIL":       TierRare,
	"URDU":        TierRare,
	"TAGALOG":     TierRare,
	"AZERBAIJANI": TierRare,
	"MONGOLIAN":   TierRare,
	"LAO":         TierRare,
	"KHMER":       TierRare,
	"AMHARIC":     TierRare,
	"TIGRINYA":    TierRare,
	"SOMALI":      TierRare,
	"ZULU":        TierRare,
	"XHOSA":       TierRare,
	"AFRIKAANS":   TierRare,
	"SWAHILI":     TierRare,
	"KINYARWANDA": TierRare,
	"HAUSA":       TierRare,
	"YORUBA":      TierRare,
	"IGBO":        TierRare,
	"ICELANDIC":   TierRare,
	"UZBEK":       TierRare,
	"TAJIK":       TierRare,
	"TURKMEN":     TierRare,
	"KYRGYZ":      TierRare,
	"KAZAKH":      TierRare,
	"PASHTO":      TierRare,
	"DARI":        TierRare,
	"NEPALI":      TierRare,
	"SINHALA":     TierRare,
	"MACEDONIAN":  TierRare,
	"BELARUSIAN":  TierRare,
	"SAMOAN":      TierRare,
	"FIJIAN":      TierRare,
	"TONGAN":      TierRare,
}

// TierForLanguage returns the demand tier for a language name.
func TierForLanguage(name string) (LanguageTier, bool) {
	t, ok := languageTiers[name]
	return t, ok
}

// translationCountryMultipliers adjust rates relative to the US baseline.
var translationCountryMultipliers = map[string]decimal.Decimal{
	"US":          decimal.NewFromFloat(1.0),
	"CHINA":       decimal.NewFromFloat(0.6),
	"JAPAN":       decimal.NewFromFloat(0.9),
	"GERMANY":     decimal.NewFromFloat(0.8),
	"FRANCE":      decimal.NewFromFloat(0.8),
	"UK":          decimal.NewFromFloat(0.7),
	"CANADA":      decimal.NewFromFloat(0.85),
	"SPAIN":       decimal.NewFromFloat(0.7),
	"ITALY":       decimal.NewFromFloat(0.7),
	"NETHERLANDS": decimal.NewFromFloat(0.8),
	"SWEDEN":      decimal.NewFromFloat(0.9),
	"SWITZERLAND": decimal.NewFromFloat(1.1),
	"BRAZIL":      decimal.NewFromFloat(0.65),
	"INDIA":       decimal.NewFromFloat(0.45),
	"SOUTH_KOREA": decimal.NewFromFloat(0.8),
	"AUSTRALIA":   decimal.NewFromFloat(0.85),
	"RUSSIA":      decimal.NewFromFloat(0.65),
	"MEXICO":      decimal.NewFromFloat(0.65),
	"ARGENTINA":   decimal.NewFromFloat(0.55),
	"TURKEY":      decimal.NewFromFloat(0.65),
	"POLAND":      decimal.NewFromFloat(0.7),
}

var translationDefaultMultiplier = decimal.NewFromFloat(0.8)

// TranslationCountryMultiplier returns the rate multiplier for a provider
// country relative to the US baseline.
func TranslationCountryMultiplier(country string) decimal.Decimal {
	if m, ok := translationCountryMultipliers[country]; ok {
		return m
	}
	return translationDefaultMultiplier
}

// TranslationJob is one unit of translation or interpretation work to price.
type TranslationJob struct {
	Type           string // Translation, Interpretation, Consecutive Interpretation, Simultaneous Interpretation
	UnitOfMeasure  string // Word, Page, Hour, Day, Half Day, ...
	Quantity       int
	Source         string
	Target         string
	Country        string // provider country, defaults to US
	ProviderType   string // freelancer or agency
	Urgency        string // standard or rush
	VolumeDiscount bool
}

// TranslationEstimate is a priced job with the arithmetic spelled out.
type TranslationEstimate struct {
	Total       decimal.Decimal
	Explanation string
}
