// ABOUTME: Per-tab session registry applying the change-detection machine
// ABOUTME: Persists accepted fingerprints through the cache across restarts

package session

import (
	"context"
	"sync"
	"time"

	"revoice-app-api/core/domain"
	"revoice-app-api/core/interfaces"
)

// fingerprintTTL keeps restart continuity without accumulating dead tabs
const fingerprintTTL = 24 * time.Hour

// Manager owns one tabSession per tab. Sessions are single-writer: the
// manager serializes access, matching the one-page-context model where at
// most one extraction cycle is conceptually in flight.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*tabSession
	deps     interfaces.Dependencies
}

// NewManager creates a session manager
func NewManager(deps interfaces.Dependencies) *Manager {
	return &Manager{
		sessions: make(map[string]*tabSession),
		deps:     deps,
	}
}

// HandleTrigger feeds a browser event into the tab's state machine and
// returns the scheduling decision for the capture script.
func (m *Manager) HandleTrigger(ctx context.Context, trigger domain.Trigger) Decision {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.session(ctx, trigger.TabID)
	decision := session.handleTrigger(trigger)

	if m.deps.Logger != nil {
		m.deps.Logger.Debug("Trigger handled", map[string]interface{}{
			"tab":     trigger.TabID,
			"kind":    string(trigger.Kind),
			"extract": decision.Extract,
			"delayMs": decision.Delay.Milliseconds(),
			"reason":  decision.Reason,
		})
	}
	return decision
}

// Resolve applies de-duplication and staleness policy to a successful
// extraction and returns its disposition. tabURL is the tab's current URL as
// reported alongside the snapshot; empty disables the staleness check.
func (m *Manager) Resolve(ctx context.Context, tabID string, content *domain.ExtractedContent, tabURL string) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.session(ctx, tabID)
	outcome := session.resolve(content, tabURL)

	if outcome.Disposition == DispositionNew {
		m.storeFingerprint(ctx, tabID, session.lastFingerprint)
	}

	if m.deps.Logger != nil {
		m.deps.Logger.Info("Extraction resolved", map[string]interface{}{
			"tab":         tabID,
			"site":        content.SiteName,
			"disposition": string(outcome.Disposition),
			"retryMs":     outcome.RetryAfter.Milliseconds(),
		})
	}
	return outcome
}

// Forget drops a tab's session, e.g. when the browser closes the tab
func (m *Manager) Forget(ctx context.Context, tabID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, tabID)
	if m.deps.Cache != nil {
		_ = m.deps.Cache.Delete(ctx, fingerprintKey(tabID))
	}
}

// session returns the tab's session, creating it on first sight. A freshly
// created session recovers its last fingerprint from the cache so a backend
// restart doesn't resurface the post the user already has open.
func (m *Manager) session(ctx context.Context, tabID string) *tabSession {
	if existing, ok := m.sessions[tabID]; ok {
		return existing
	}

	created := &tabSession{state: StateIdle}
	if m.deps.Cache != nil {
		if data, err := m.deps.Cache.Get(ctx, fingerprintKey(tabID)); err == nil && len(data) > 0 {
			created.lastFingerprint = string(data)
		}
	}
	m.sessions[tabID] = created
	return created
}

func (m *Manager) storeFingerprint(ctx context.Context, tabID, fingerprint string) {
	if m.deps.Cache == nil || fingerprint == "" {
		return
	}
	_ = m.deps.Cache.Set(ctx, fingerprintKey(tabID), []byte(fingerprint), fingerprintTTL)
}

func fingerprintKey(tabID string) string {
	return "session:fingerprint:" + tabID
}
