package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found,
// e.g. a foreign post missing from the allowances rate table.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrSourceUnavailable indicates that an external rate source could not be
// reached or returned an unusable response.
var ErrSourceUnavailable = errors.New("rate source unavailable")

// ErrUnsupportedPolicy indicates a location whose per-diem policy is not
// implemented. Surfaced loudly rather than silently defaulted.
var ErrUnsupportedPolicy = errors.New("unsupported per diem policy")
