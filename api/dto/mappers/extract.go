// ABOUTME: Mappers between core session types and API response DTOs
// ABOUTME: Converts durations to the millisecond fields the extension expects

package mappers

import (
	"revoice-app-api/api/dto/responses"
	"revoice-app-api/core/domain"
	"revoice-app-api/core/session"
)

// ToDecisionResponse converts a scheduling decision to its wire form
func ToDecisionResponse(decision session.Decision) responses.DecisionResponse {
	return responses.DecisionResponse{
		Extract:  decision.Extract,
		DelayMs:  decision.Delay.Milliseconds(),
		Debounce: decision.Debounce,
		Reason:   decision.Reason,
	}
}

// ToExtractResponse builds the extraction envelope from an accepted result
// and its session outcome
func ToExtractResponse(content *domain.ExtractedContent, outcome session.Outcome) responses.ExtractResponse {
	resp := responses.ExtractResponse{
		Disposition: string(outcome.Disposition),
	}

	if outcome.RetryAfter > 0 {
		resp.RetryAfterMs = outcome.RetryAfter.Milliseconds()
	}

	// Duplicate and stale results are dropped; the side panel keeps
	// whatever it is already showing.
	if outcome.Disposition == session.DispositionNew {
		resp.Success = true
		resp.Data = content
	}

	return resp
}

// ToErrorResponse builds the extraction envelope for a failed extraction
func ToErrorResponse(err error) responses.ExtractResponse {
	return responses.ExtractResponse{
		Success: false,
		Error:   err.Error(),
	}
}
