// ABOUTME: Browser event handler for the Huma API
// ABOUTME: Turns tab and scroll events into capture scheduling decisions

package handlers

import (
	"context"
	"net/http"

	"revoice-app-api/api/dto/mappers"
	"revoice-app-api/api/dto/requests"
	"revoice-app-api/api/dto/responses"
	"revoice-app-api/core/domain"
	"revoice-app-api/core/session"

	"github.com/danielgtaylor/huma/v2"
)

// EventHandler handles browser event requests
type EventHandler struct {
	sessions *session.Manager
}

// NewEventHandler creates a new event handler
func NewEventHandler(sessions *session.Manager) *EventHandler {
	return &EventHandler{
		sessions: sessions,
	}
}

// RegisterRoutes registers all event-related routes
func (h *EventHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "reportEvent",
		Method:      http.MethodPost,
		Path:        "/events",
		Summary:     "Report a browser event",
		Description: "Reports a tab or scroll event and receives a decision on whether and when to capture a snapshot",
		Tags:        []string{"Extraction"},
	}, h.ReportEvent)
}

// ReportEventInput defines the input for the ReportEvent operation
type ReportEventInput struct {
	Body requests.EventRequest
}

// ReportEventOutput defines the output for the ReportEvent operation
type ReportEventOutput struct {
	Body responses.DecisionResponse
}

// ReportEvent handles the POST /events endpoint
func (h *EventHandler) ReportEvent(ctx context.Context, input *ReportEventInput) (*ReportEventOutput, error) {
	req := input.Body

	trigger := domain.Trigger{
		Kind:   domain.TriggerKind(req.Kind),
		TabID:  req.TabID,
		URL:    req.URL,
		Status: req.Status,
	}

	decision := h.sessions.HandleTrigger(ctx, trigger)

	return &ReportEventOutput{Body: mappers.ToDecisionResponse(decision)}, nil
}
