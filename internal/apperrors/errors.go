package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrSourceUnavailable indicates the upstream rate source could not be reached
// (network failure, 5xx, or timeout after exhausting retries).
var ErrSourceUnavailable = errors.New("rate source unavailable")

// ErrSourceRejected indicates the upstream rate source rejected the request
// outright (bad auth key, bad data code, daily quota exceeded). Never retried.
var ErrSourceRejected = errors.New("rate source rejected request")
