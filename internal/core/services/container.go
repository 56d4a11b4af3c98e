package services

// Container bundles the constructed services for route registration.
type Container struct {
	PerDiem     *PerDiemService
	Currency    *CurrencyService
	Translation *TranslationService
}
