// ABOUTME: Request DTOs for snapshot extraction and browser event endpoints
// ABOUTME: Defines the payloads the capture script posts to the API

package requests

// ExtractRequest carries a captured page snapshot for extraction.
// The capture script stamps layout attributes on candidate elements
// before serializing, so viewport geometry survives the trip.
type ExtractRequest struct {
	// TabID identifies the browser tab the snapshot came from
	TabID string `json:"tabId" required:"true" doc:"Browser tab identifier"`

	// URL is the page URL at capture time
	URL string `json:"url" required:"true" example:"https://www.youtube.com/watch?v=abc" doc:"Page URL at capture time"`

	// TabURL is the tab's current URL when the result will be consumed.
	// Defaults to URL when omitted.
	TabURL string `json:"tabUrl,omitempty" doc:"Current tab URL, used for staleness checks"`

	// HTML is the serialized DOM snapshot
	HTML string `json:"html" required:"true" doc:"Serialized DOM snapshot with capture attributes stamped"`

	// ViewportHeight is the visible viewport height in CSS pixels
	ViewportHeight float64 `json:"viewportHeight,omitempty" example:"900" doc:"Viewport height in CSS pixels"`
}

// EventRequest reports a browser event that may warrant re-extraction
type EventRequest struct {
	// TabID identifies the tab the event happened in
	TabID string `json:"tabId" required:"true" doc:"Browser tab identifier"`

	// Kind is the event type (tab-activated, tab-updated, scroll, manual)
	Kind string `json:"kind" required:"true" enum:"tab-activated,tab-updated,scroll,manual" doc:"Browser event type"`

	// URL is the tab URL at event time
	URL string `json:"url,omitempty" doc:"Tab URL at event time"`

	// Status is the tab load status for tab-updated events
	Status string `json:"status,omitempty" example:"complete" doc:"Tab load status, for tab-updated events"`
}

// ForgetRequest asks the service to drop per-tab session state
type ForgetRequest struct {
	// TabID identifies the closed tab
	TabID string `json:"tabId" required:"true" doc:"Browser tab identifier"`
}
