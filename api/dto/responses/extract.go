// ABOUTME: Response DTOs for snapshot extraction and browser event endpoints
// ABOUTME: Mirrors the envelope the side panel consumes

package responses

import "revoice-app-api/core/domain"

// ExtractResponse is the envelope returned for every snapshot extraction.
// Success false with a populated Error means extraction ran and found
// nothing usable; transport-level failures use HTTP status codes instead.
type ExtractResponse struct {
	Success bool `json:"success"`

	// Data is present only when Success is true
	Data *domain.ExtractedContent `json:"data,omitempty"`

	// Error is the user-facing failure message
	Error string `json:"error,omitempty"`

	// Disposition classifies the accepted result: new, duplicate, or stale
	Disposition string `json:"disposition,omitempty"`

	// RetryAfterMs asks the capture script to re-snapshot once after this
	// many milliseconds. Only set for stale results.
	RetryAfterMs int64 `json:"retryAfterMs,omitempty"`
}

// DecisionResponse tells the capture script whether and when to snapshot
type DecisionResponse struct {
	// Extract requests a snapshot
	Extract bool `json:"extract"`

	// DelayMs to wait before capturing
	DelayMs int64 `json:"delayMs,omitempty"`

	// Debounce marks a trailing-debounce decision: a newer one for the
	// same tab replaces the pending timer instead of stacking
	Debounce bool `json:"debounce,omitempty"`

	// Reason is a short label for logs and debugging
	Reason string `json:"reason,omitempty"`
}

// ForgetResponse acknowledges dropped session state
type ForgetResponse struct {
	Forgotten bool `json:"forgotten"`
}
