// ABOUTME: Extraction handlers for the Huma API
// ABOUTME: Accepts page snapshots, dispatches extractors, and resolves results through the session machine

package handlers

import (
	"context"
	"net/http"

	"revoice-app-api/api/dto/mappers"
	"revoice-app-api/api/dto/requests"
	"revoice-app-api/api/dto/responses"
	"revoice-app-api/core/dom"
	"revoice-app-api/core/domain"
	coreerrors "revoice-app-api/core/errors"
	"revoice-app-api/core/interfaces"
	"revoice-app-api/core/session"
	"revoice-app-api/pkg/featureflags"

	"github.com/danielgtaylor/huma/v2"
)

// defaultViewportHeight stands in when the capture script omits geometry,
// matching a common laptop viewport.
const defaultViewportHeight = 900

// enricher is the slice of the worker pool the handler needs
type enricher interface {
	EnrichExtraction(ctx context.Context, content *domain.ExtractedContent, sourceURL string)
}

// snapshotExtractor is the slice of the dispatcher the handler needs
type snapshotExtractor interface {
	Extract(doc *dom.Document) (*domain.ExtractedContent, error)
}

// ExtractHandler handles snapshot extraction requests
type ExtractHandler struct {
	dispatcher snapshotExtractor
	sessions   *session.Manager
	enricher   enricher
	flags      featureflags.Manager
	logger     interfaces.Logger
}

// NewExtractHandler creates a new extraction handler
func NewExtractHandler(dispatcher snapshotExtractor, sessions *session.Manager, enricher enricher, flags featureflags.Manager, logger interfaces.Logger) *ExtractHandler {
	return &ExtractHandler{
		dispatcher: dispatcher,
		sessions:   sessions,
		enricher:   enricher,
		flags:      flags,
		logger:     logger,
	}
}

// RegisterRoutes registers all extraction-related routes
func (h *ExtractHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "extractSnapshot",
		Method:      http.MethodPost,
		Path:        "/extract",
		Summary:     "Extract content from a page snapshot",
		Description: "Runs platform extractors over a captured DOM snapshot and de-duplicates the result per tab",
		Tags:        []string{"Extraction"},
	}, h.ExtractSnapshot)

	huma.Register(api, huma.Operation{
		OperationID: "forgetTab",
		Method:      http.MethodPost,
		Path:        "/forget",
		Summary:     "Drop per-tab session state",
		Description: "Called when a tab closes so its de-duplication state can be released",
		Tags:        []string{"Extraction"},
	}, h.ForgetTab)
}

// ExtractSnapshotInput defines the input for the ExtractSnapshot operation
type ExtractSnapshotInput struct {
	Body requests.ExtractRequest
}

// ExtractSnapshotOutput defines the output for the ExtractSnapshot operation
type ExtractSnapshotOutput struct {
	Body responses.ExtractResponse
}

// ExtractSnapshot handles the POST /extract endpoint
func (h *ExtractHandler) ExtractSnapshot(ctx context.Context, input *ExtractSnapshotInput) (*ExtractSnapshotOutput, error) {
	req := input.Body

	viewportHeight := req.ViewportHeight
	if viewportHeight <= 0 {
		viewportHeight = defaultViewportHeight
	}

	doc, err := dom.NewDocument(req.HTML, req.URL, viewportHeight)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	content, err := h.dispatcher.Extract(doc)
	if err != nil {
		// Misses and in-extractor failures are normal envelopes, not HTTP
		// failures: the side panel shows the message and keeps its state.
		// HTTP errors are reserved for malformed requests.
		if coreerrors.IsNoContent(err) || coreerrors.IsExtraction(err) {
			return &ExtractSnapshotOutput{Body: mappers.ToErrorResponse(err)}, nil
		}
		return nil, toHumaError(err)
	}

	tabURL := req.TabURL
	if tabURL == "" {
		tabURL = req.URL
	}

	outcome := h.sessions.Resolve(ctx, req.TabID, content, tabURL)

	if outcome.Disposition == session.DispositionNew && h.enricher != nil &&
		h.flags.IsEnabled(ctx, featureflags.EnrichmentEnabled) {
		h.enricher.EnrichExtraction(context.WithoutCancel(ctx), content, req.URL)
	}

	return &ExtractSnapshotOutput{Body: mappers.ToExtractResponse(content, outcome)}, nil
}

// ForgetTabInput defines the input for the ForgetTab operation
type ForgetTabInput struct {
	Body requests.ForgetRequest
}

// ForgetTabOutput defines the output for the ForgetTab operation
type ForgetTabOutput struct {
	Body responses.ForgetResponse
}

// ForgetTab handles the POST /forget endpoint
func (h *ExtractHandler) ForgetTab(ctx context.Context, input *ForgetTabInput) (*ForgetTabOutput, error) {
	h.sessions.Forget(ctx, input.Body.TabID)
	return &ForgetTabOutput{Body: responses.ForgetResponse{Forgotten: true}}, nil
}
