// ABOUTME: Trigger events driving the change-detection state machine
// ABOUTME: Tagged browser events, never persisted

package domain

// TriggerKind identifies the browser event that requested re-extraction
type TriggerKind string

const (
	// TriggerTabActivated fires when the user switches to a tab
	TriggerTabActivated TriggerKind = "tab-activated"

	// TriggerTabUpdated fires when a tab finishes loading or changes URL
	TriggerTabUpdated TriggerKind = "tab-updated"

	// TriggerScroll fires on scroll within a recognized social feed
	TriggerScroll TriggerKind = "scroll"

	// TriggerManual is an explicit rescan request from the side panel
	TriggerManual TriggerKind = "manual"
)

// Trigger is a tagged browser event driving the state machine
type Trigger struct {
	Kind   TriggerKind `json:"kind"`
	TabID  string      `json:"tabId"`
	URL    string      `json:"url"`
	Status string      `json:"status,omitempty"`
}

// IsNavigation reports whether the trigger describes a completed navigation
// rather than an in-page signal. Tab updates count once they carry a URL or
// report a complete load; rapid-fire intermediate events do not.
func (t Trigger) IsNavigation() bool {
	switch t.Kind {
	case TriggerTabActivated:
		return true
	case TriggerTabUpdated:
		return t.Status == "complete" || t.URL != ""
	default:
		return false
	}
}
