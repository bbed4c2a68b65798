// ABOUTME: Change-detection state machine for one browser tab
// ABOUTME: Pure step functions over explicit session state, no hidden globals

package session

import (
	"net/url"
	"strings"
	"time"

	"revoice-app-api/core/domain"
)

// Timing policy. The capture script owns the actual clocks; these values
// travel back to it inside decisions.
const (
	// defaultSettleDelay lets an ordinary page settle after navigation
	defaultSettleDelay = 300 * time.Millisecond

	// youtubeSettleDelay is longer because YouTube's DOM updates well after
	// its client-side navigation completes
	youtubeSettleDelay = 1500 * time.Millisecond

	// scrollDebounce is the trailing debounce for feed scrolling
	scrollDebounce = 500 * time.Millisecond

	// staleRetryDelay is the single automatic re-attempt after stale content
	staleRetryDelay = time.Second
)

// State of a tab's extraction cycle
type State int

const (
	// StateIdle means no extraction is requested or running
	StateIdle State = iota

	// StatePending means an extraction is scheduled but not yet resolved
	StatePending
)

// Decision instructs the capture script whether and when to snapshot the page
type Decision struct {
	// Extract requests a snapshot after Delay
	Extract bool `json:"extract"`

	// Delay to wait before capturing
	Delay time.Duration `json:"-"`

	// Debounce marks a trailing-debounce decision: a newer one for the same
	// tab replaces the pending timer instead of stacking
	Debounce bool `json:"debounce,omitempty"`

	// Reason is a short label for logs and debugging
	Reason string `json:"reason,omitempty"`
}

// Disposition classifies a resolved extraction result
type Disposition string

const (
	// DispositionNew surfaces the result to the side panel
	DispositionNew Disposition = "new"

	// DispositionDuplicate drops the result silently, UI state unchanged
	DispositionDuplicate Disposition = "duplicate"

	// DispositionStale discards the result; RetryAfter > 0 asks for exactly
	// one silent re-capture
	DispositionStale Disposition = "stale"
)

// Outcome is the state machine's verdict on a finished extraction
type Outcome struct {
	Disposition Disposition   `json:"disposition"`
	RetryAfter  time.Duration `json:"-"`
}

// tabSession is the per-tab state. Exactly the two persisted-across-calls
// values the cycle needs: last confirmed URL and last accepted fingerprint,
// plus the one-shot stale retry flag.
type tabSession struct {
	state           State
	lastURL         string
	lastFingerprint string
	staleRetried    bool
}

// handleTrigger is the pure trigger step: it mutates only the receiver and
// returns the scheduling decision.
func (s *tabSession) handleTrigger(t domain.Trigger) Decision {
	switch t.Kind {
	case domain.TriggerScroll:
		// Feed scrolling changes "the current post" without changing the URL,
		// so the URL comparison is skipped entirely.
		if !isFeedHost(t.URL) {
			return Decision{Reason: "scroll outside a recognized feed"}
		}
		s.state = StatePending
		return Decision{Extract: true, Delay: scrollDebounce, Debounce: true, Reason: "feed scroll"}

	case domain.TriggerManual:
		s.state = StatePending
		s.staleRetried = false
		return Decision{Extract: true, Reason: "manual rescan"}

	default:
		if !t.IsNavigation() || t.URL == "" {
			return Decision{Reason: "not a completed navigation"}
		}
		if t.URL == s.lastURL {
			// Rapid-fire browser events for the same navigation.
			return Decision{Reason: "url already confirmed"}
		}

		// Confirm immediately so the duplicate events that follow a single
		// navigation don't schedule twice.
		s.lastURL = t.URL
		s.state = StatePending
		s.staleRetried = false

		delay := defaultSettleDelay
		if isYouTubeURL(t.URL) {
			delay = youtubeSettleDelay
		}
		return Decision{Extract: true, Delay: delay, Reason: "navigation"}
	}
}

// resolve is the pure completion step for a successful extraction.
func (s *tabSession) resolve(content *domain.ExtractedContent, tabURL string) Outcome {
	fingerprint := content.Fingerprint()

	// Facebook reuses feed DOM nodes aggressively enough that identical
	// fingerprints can describe different posts, so it always refreshes.
	if fingerprint == s.lastFingerprint && content.SiteName != "Facebook" {
		s.state = StateIdle
		return Outcome{Disposition: DispositionDuplicate}
	}

	if isStale(content.URL, tabURL) {
		if !s.staleRetried {
			s.staleRetried = true
			return Outcome{Disposition: DispositionStale, RetryAfter: staleRetryDelay}
		}
		// Second consecutive stale result: stop retrying, wait for a manual
		// rescan.
		s.state = StateIdle
		return Outcome{Disposition: DispositionStale}
	}

	s.lastFingerprint = fingerprint
	s.staleRetried = false
	s.state = StateIdle
	return Outcome{Disposition: DispositionNew}
}

// isStale reports whether the extracted URL no longer matches the tab the
// user is looking at. LinkedIn feed URLs are exempt: resolved permalinks
// legitimately diverge from the ambient feed URL while still being current.
func isStale(contentURL, tabURL string) bool {
	if tabURL == "" {
		return false
	}
	if isLinkedInFeed(tabURL) {
		return false
	}
	return normalizeURL(contentURL) != normalizeURL(tabURL)
}

// normalizeURL strips the query string and fragment for comparison
func normalizeURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return strings.TrimSuffix(parsed.String(), "/")
}

func isLinkedInFeed(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := parsed.Hostname()
	if host != "linkedin.com" && !strings.HasSuffix(host, ".linkedin.com") {
		return false
	}
	return parsed.Path == "/feed" || strings.HasPrefix(parsed.Path, "/feed/")
}

func isYouTubeURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := parsed.Hostname()
	return host == "youtube.com" || strings.HasSuffix(host, ".youtube.com") ||
		host == "youtu.be"
}

// isFeedHost recognizes the social feeds where scroll changes the current post
func isFeedHost(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := parsed.Hostname()
	for _, feedDomain := range []string{"linkedin.com", "facebook.com", "twitter.com", "x.com"} {
		if host == feedDomain || strings.HasSuffix(host, "."+feedDomain) {
			return true
		}
	}
	return false
}
