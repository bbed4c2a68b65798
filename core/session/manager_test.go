package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"revoice-app-api/core/domain"
	"revoice-app-api/core/interfaces"
)

type mapCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.items[key]; ok {
		return v, nil
	}
	return nil, errors.New("key not found")
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func TestManager_SessionsAreIndependentPerTab(t *testing.T) {
	m := NewManager(interfaces.Dependencies{})
	ctx := context.Background()

	first := m.HandleTrigger(ctx, domain.Trigger{Kind: domain.TriggerTabUpdated, TabID: "tab-1", URL: "https://x.com/home"})
	second := m.HandleTrigger(ctx, domain.Trigger{Kind: domain.TriggerTabUpdated, TabID: "tab-2", URL: "https://x.com/home"})

	if !first.Extract || !second.Extract {
		t.Error("the same URL on different tabs must both schedule extraction")
	}
}

func TestManager_ResolvePersistsFingerprint(t *testing.T) {
	cache := newMapCache()
	m := NewManager(interfaces.Dependencies{Cache: cache})
	ctx := context.Background()

	content := &domain.ExtractedContent{SiteName: "X (Twitter)", TextContent: "hello", URL: "https://x.com/a/status/1"}
	outcome := m.Resolve(ctx, "tab-1", content, "https://x.com/a/status/1")
	if outcome.Disposition != DispositionNew {
		t.Fatalf("Disposition = %q", outcome.Disposition)
	}

	stored, err := cache.Get(ctx, "session:fingerprint:tab-1")
	if err != nil || string(stored) != content.Fingerprint() {
		t.Errorf("stored fingerprint = %q, err = %v", stored, err)
	}
}

func TestManager_RecoversFingerprintAfterRestart(t *testing.T) {
	cache := newMapCache()
	ctx := context.Background()

	content := &domain.ExtractedContent{SiteName: "X (Twitter)", TextContent: "hello", URL: "https://x.com/a/status/1"}

	first := NewManager(interfaces.Dependencies{Cache: cache})
	first.Resolve(ctx, "tab-1", content, "https://x.com/a/status/1")

	// New manager, same cache: the re-extraction of the same post must be
	// classified as duplicate, not surfaced again.
	second := NewManager(interfaces.Dependencies{Cache: cache})
	outcome := second.Resolve(ctx, "tab-1", content, "https://x.com/a/status/1")
	if outcome.Disposition != DispositionDuplicate {
		t.Errorf("Disposition = %q, want duplicate after recovery", outcome.Disposition)
	}
}

func TestManager_ForgetDropsSessionAndCacheEntry(t *testing.T) {
	cache := newMapCache()
	m := NewManager(interfaces.Dependencies{Cache: cache})
	ctx := context.Background()

	content := &domain.ExtractedContent{SiteName: "X (Twitter)", TextContent: "hello", URL: "https://x.com/a/status/1"}
	m.Resolve(ctx, "tab-1", content, "https://x.com/a/status/1")
	m.Forget(ctx, "tab-1")

	if _, err := cache.Get(ctx, "session:fingerprint:tab-1"); err == nil {
		t.Error("Forget should delete the cached fingerprint")
	}

	outcome := m.Resolve(ctx, "tab-1", content, "https://x.com/a/status/1")
	if outcome.Disposition != DispositionNew {
		t.Errorf("Disposition = %q, want new after Forget", outcome.Disposition)
	}
}
