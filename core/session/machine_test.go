package session

import (
	"testing"
	"time"

	"revoice-app-api/core/domain"
)

func TestHandleTrigger_NavigationSchedulesExtraction(t *testing.T) {
	s := &tabSession{}

	decision := s.handleTrigger(domain.Trigger{
		Kind: domain.TriggerTabUpdated,
		URL:  "https://www.linkedin.com/feed/",
	})

	if !decision.Extract {
		t.Fatal("navigation to a new URL should schedule extraction")
	}
	if decision.Delay != 300*time.Millisecond {
		t.Errorf("Delay = %v, want the 300ms default settle delay", decision.Delay)
	}
	if s.state != StatePending {
		t.Errorf("state = %v, want Pending", s.state)
	}
	if s.lastURL != "https://www.linkedin.com/feed/" {
		t.Error("URL should be confirmed immediately")
	}
}

func TestHandleTrigger_YouTubeGetsLongerSettleDelay(t *testing.T) {
	s := &tabSession{}

	decision := s.handleTrigger(domain.Trigger{
		Kind: domain.TriggerTabActivated,
		URL:  "https://www.youtube.com/watch?v=abc",
	})

	if decision.Delay != 1500*time.Millisecond {
		t.Errorf("Delay = %v, want 1500ms for YouTube", decision.Delay)
	}
}

func TestHandleTrigger_DuplicateNavigationSuppressed(t *testing.T) {
	s := &tabSession{}

	first := s.handleTrigger(domain.Trigger{Kind: domain.TriggerTabUpdated, URL: "https://x.com/home"})
	second := s.handleTrigger(domain.Trigger{Kind: domain.TriggerTabActivated, URL: "https://x.com/home"})

	if !first.Extract {
		t.Error("first navigation should extract")
	}
	if second.Extract {
		t.Error("rapid-fire event for the same URL should be suppressed")
	}
}

func TestHandleTrigger_IncompleteTabUpdateIgnored(t *testing.T) {
	s := &tabSession{}

	decision := s.handleTrigger(domain.Trigger{Kind: domain.TriggerTabUpdated, Status: "loading"})
	if decision.Extract {
		t.Error("loading tab update without a URL should be ignored")
	}
}

func TestHandleTrigger_ScrollOnFeedHosts(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.linkedin.com/feed/", true},
		{"https://www.facebook.com/", true},
		{"https://x.com/home", true},
		{"https://twitter.com/home", true},
		{"https://news.example.com/", false},
		{"https://www.youtube.com/watch?v=a", false},
	}

	for _, tt := range tests {
		s := &tabSession{}
		decision := s.handleTrigger(domain.Trigger{Kind: domain.TriggerScroll, URL: tt.url})

		if decision.Extract != tt.want {
			t.Errorf("scroll on %s: Extract = %v, want %v", tt.url, decision.Extract, tt.want)
			continue
		}
		if tt.want {
			if decision.Delay != 500*time.Millisecond {
				t.Errorf("scroll debounce = %v, want 500ms", decision.Delay)
			}
			if !decision.Debounce {
				t.Error("scroll decision must be marked as debounce")
			}
		}
	}
}

func TestHandleTrigger_ScrollIgnoresConfirmedURL(t *testing.T) {
	s := &tabSession{lastURL: "https://www.linkedin.com/feed/"}

	// Same URL as confirmed: scrolling must still extract, because the feed
	// position changed even though the URL did not.
	decision := s.handleTrigger(domain.Trigger{Kind: domain.TriggerScroll, URL: "https://www.linkedin.com/feed/"})
	if !decision.Extract {
		t.Error("scroll should request extraction regardless of the confirmed URL")
	}
}

func TestHandleTrigger_ManualIsImmediate(t *testing.T) {
	s := &tabSession{staleRetried: true}

	decision := s.handleTrigger(domain.Trigger{Kind: domain.TriggerManual, URL: "https://example.com"})
	if !decision.Extract || decision.Delay != 0 {
		t.Errorf("manual rescan should extract immediately, got %+v", decision)
	}
	if s.staleRetried {
		t.Error("manual rescan should re-arm the stale retry")
	}
}

func newContent(site, text, postID, url string) *domain.ExtractedContent {
	return &domain.ExtractedContent{
		SiteName:    site,
		TextContent: text,
		PostID:      postID,
		URL:         url,
	}
}

func TestResolve_FirstResultIsNew(t *testing.T) {
	s := &tabSession{state: StatePending}
	content := newContent("X (Twitter)", "hello", "", "https://x.com/a/status/1")

	outcome := s.resolve(content, "https://x.com/a/status/1")

	if outcome.Disposition != DispositionNew {
		t.Errorf("Disposition = %q", outcome.Disposition)
	}
	if s.state != StateIdle {
		t.Error("cycle should end in Idle")
	}
	if s.lastFingerprint != content.Fingerprint() {
		t.Error("accepted fingerprint should be recorded")
	}
}

func TestResolve_DuplicateSuppressed(t *testing.T) {
	s := &tabSession{}
	content := newContent("X (Twitter)", "same tweet", "", "https://x.com/a/status/1")

	first := s.resolve(content, "https://x.com/a/status/1")
	second := s.resolve(newContent("X (Twitter)", "same tweet", "", "https://x.com/a/status/1"), "https://x.com/a/status/1")

	if first.Disposition != DispositionNew {
		t.Errorf("first = %q", first.Disposition)
	}
	if second.Disposition != DispositionDuplicate {
		t.Errorf("second = %q, want duplicate", second.Disposition)
	}
}

func TestResolve_FacebookAlwaysRefreshes(t *testing.T) {
	s := &tabSession{}
	make := func() *domain.ExtractedContent {
		return newContent("Facebook", "identical post body", "", "https://www.facebook.com")
	}

	first := s.resolve(make(), "https://www.facebook.com")
	second := s.resolve(make(), "https://www.facebook.com")

	if first.Disposition != DispositionNew || second.Disposition != DispositionNew {
		t.Errorf("facebook results = %q, %q; both must surface as new", first.Disposition, second.Disposition)
	}
}

func TestResolve_StaleRetriesExactlyOnce(t *testing.T) {
	s := &tabSession{}
	content := newContent("YouTube", "old video", "", "https://www.youtube.com/shorts/old")

	first := s.resolve(content, "https://www.youtube.com/shorts/new")
	if first.Disposition != DispositionStale {
		t.Fatalf("first = %q, want stale", first.Disposition)
	}
	if first.RetryAfter != time.Second {
		t.Errorf("RetryAfter = %v, want 1s", first.RetryAfter)
	}

	second := s.resolve(content, "https://www.youtube.com/shorts/new")
	if second.Disposition != DispositionStale {
		t.Fatalf("second = %q, want stale", second.Disposition)
	}
	if second.RetryAfter != 0 {
		t.Error("second stale result must not schedule another retry")
	}
	if s.state != StateIdle {
		t.Error("after the exhausted retry the machine returns to Idle")
	}
}

func TestResolve_StaleRetryRearmsAfterAcceptance(t *testing.T) {
	s := &tabSession{staleRetried: true}
	content := newContent("YouTube", "current video", "", "https://www.youtube.com/watch?v=cur")

	outcome := s.resolve(content, "https://www.youtube.com/watch?v=cur")
	if outcome.Disposition != DispositionNew {
		t.Fatalf("Disposition = %q", outcome.Disposition)
	}
	if s.staleRetried {
		t.Error("acceptance should re-arm the stale retry")
	}
}

func TestResolve_QueryAndFragmentStripped(t *testing.T) {
	s := &tabSession{}
	content := newContent("Blog", "post", "", "https://blog.example.com/post?utm_source=x#section")

	outcome := s.resolve(content, "https://blog.example.com/post")
	if outcome.Disposition != DispositionNew {
		t.Errorf("Disposition = %q; query and fragment must not make content stale", outcome.Disposition)
	}
}

func TestResolve_LinkedInFeedExemption(t *testing.T) {
	s := &tabSession{}
	// Resolved permalink diverges from the ambient feed URL, which is fine.
	content := newContent("LinkedIn", "post body", "urn:li:activity:555",
		"https://www.linkedin.com/feed/update/urn:li:activity:555/")

	outcome := s.resolve(content, "https://www.linkedin.com/feed/")
	if outcome.Disposition != DispositionNew {
		t.Errorf("Disposition = %q; LinkedIn permalinks are not stale on the feed", outcome.Disposition)
	}
}

func TestResolve_MissingTabURLSkipsStalenessCheck(t *testing.T) {
	s := &tabSession{}
	content := newContent("Blog", "post", "", "https://blog.example.com/post")

	outcome := s.resolve(content, "")
	if outcome.Disposition != DispositionNew {
		t.Errorf("Disposition = %q", outcome.Disposition)
	}
}
