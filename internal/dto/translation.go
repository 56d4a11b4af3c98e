package dto

import (
	"strings"

	"github.com/Velocity-Explorations/concierge/internal/core/domain"
	"github.com/Velocity-Explorations/concierge/internal/core/services"
	"github.com/shopspring/decimal"
)

// TranslationJobRequest is one unit of translation or interpretation work to
// price.
type TranslationJobRequest struct {
	Type           string `json:"type" binding:"required,oneof=Translation Interpretation 'Consecutive Interpretation' 'Simultaneous Interpretation'"`
	UOM            string `json:"uom" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required,min=1"`
	Source         string `json:"source" binding:"required"`
	Target         string `json:"target" binding:"required"`
	Country        string `json:"country,omitempty"`
	ProviderType   string `json:"providerType,omitempty" binding:"omitempty,oneof=freelancer agency"`
	Urgency        string `json:"urgency,omitempty" binding:"omitempty,oneof=standard rush"`
	VolumeDiscount bool   `json:"volumeDiscount"`
}

// TranslationRequest is the body of POST /estimates/translations.
type TranslationRequest struct {
	Jobs []TranslationJobRequest `json:"jobs" binding:"required,min=1,dive"`
}

// ToJobs converts the request into domain jobs. Languages are matched
// case-insensitively.
func (r TranslationRequest) ToJobs() []domain.TranslationJob {
	jobs := make([]domain.TranslationJob, len(r.Jobs))
	for i, jr := range r.Jobs {
		jobs[i] = domain.TranslationJob{
			Type:           jr.Type,
			UnitOfMeasure:  jr.UOM,
			Quantity:       jr.Quantity,
			Source:         strings.ToUpper(strings.TrimSpace(jr.Source)),
			Target:         strings.ToUpper(strings.TrimSpace(jr.Target)),
			Country:        jr.Country,
			ProviderType:   jr.ProviderType,
			Urgency:        jr.Urgency,
			VolumeDiscount: jr.VolumeDiscount,
		}
	}
	return jobs
}

// TranslationEstimateResponse is one priced job.
type TranslationEstimateResponse struct {
	Total       decimal.Decimal `json:"total"`
	Explanation string          `json:"explanation"`
}

// TranslationResponse is the body returned by POST /estimates/translations.
type TranslationResponse struct {
	Estimates  []TranslationEstimateResponse `json:"estimates"`
	GrandTotal decimal.Decimal               `json:"grandTotal"`
}

// ToTranslationResponse maps computed estimates onto the response payload.
func ToTranslationResponse(estimates []domain.TranslationEstimate) TranslationResponse {
	resp := TranslationResponse{Estimates: make([]TranslationEstimateResponse, len(estimates))}
	for i, est := range estimates {
		resp.Estimates[i] = TranslationEstimateResponse{
			Total:       est.Total,
			Explanation: est.Explanation,
		}
		resp.GrandTotal = resp.GrandTotal.Add(est.Total)
	}
	return resp
}

// HistoricalLoadResponse summarizes one historical-rate CSV ingestion.
type HistoricalLoadResponse struct {
	Loaded  int    `json:"loaded"`
	Skipped int    `json:"skipped"`
	Log     string `json:"log"`
}

// ToHistoricalLoadResponse maps a load result onto the response payload.
func ToHistoricalLoadResponse(result services.HistoricalLoadResult) HistoricalLoadResponse {
	return HistoricalLoadResponse{
		Loaded:  result.Loaded,
		Skipped: result.Skipped,
		Log:     result.Log,
	}
}
