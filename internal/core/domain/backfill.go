package domain

// BackfillResult reports what one backfill invocation actually covered.
// Capped is true when the requested range exceeded the per-run business-day
// cap and only a leading slice was collected.
type BackfillResult struct {
	RequestedDays int  `json:"requestedDays"` // business days the range needed
	CollectedDays int  `json:"collectedDays"` // business days collected this run
	FailedDays    int  `json:"failedDays"`
	Capped        bool `json:"capped"`
	Skipped       bool `json:"skipped"` // target depth already satisfied
}
