// ABOUTME: Reader handler for the Huma API
// ABOUTME: Provides URL-mode extraction when no DOM snapshot is available

package handlers

import (
	"context"
	"net/http"

	"revoice-app-api/api/dto/requests"
	"revoice-app-api/core/domain"
	"revoice-app-api/core/interfaces"
	"revoice-app-api/pkg/featureflags"

	"github.com/danielgtaylor/huma/v2"
)

// ReaderHandler handles reader view extraction requests
type ReaderHandler struct {
	readerService interfaces.ReaderService
	flags         featureflags.Manager
}

// NewReaderHandler creates a new reader handler. A nil flags manager leaves
// the endpoint enabled.
func NewReaderHandler(readerService interfaces.ReaderService, flags featureflags.Manager) *ReaderHandler {
	return &ReaderHandler{
		readerService: readerService,
		flags:         flags,
	}
}

// RegisterRoutes registers all reader-related routes
func (h *ReaderHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "extractURL",
		Method:      http.MethodPost,
		Path:        "/extracturl",
		Summary:     "Extract reader views from URLs",
		Description: "Fetches URLs server-side and extracts clean article content, for manual rescans without a snapshot",
		Tags:        []string{"Reader"},
	}, h.ExtractURL)
}

// ExtractURLInput defines the input for the ExtractURL operation
type ExtractURLInput struct {
	Body requests.ReaderViewRequest
}

// ExtractURLOutput defines the output for the ExtractURL operation
type ExtractURLOutput struct {
	Body []domain.ReaderView
}

// ExtractURL handles URL-mode reader extraction
func (h *ReaderHandler) ExtractURL(ctx context.Context, input *ExtractURLInput) (*ExtractURLOutput, error) {
	if h.flags != nil && !h.flags.IsEnabled(ctx, featureflags.ReaderEnabled) {
		return nil, huma.Error403Forbidden("Reader extraction is disabled")
	}
	if len(input.Body.URLs) == 0 {
		return nil, huma.Error400BadRequest("No URLs provided")
	}

	views := h.readerService.ExtractReaderViews(ctx, input.Body.URLs)

	return &ExtractURLOutput{
		Body: views,
	}, nil
}
