// ABOUTME: Open Graph metadata service used to enrich resolved permalinks
// ABOUTME: Scrapes og tags with colly when an extraction's canonical URL diverges from the snapshot

package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"revoice-app-api/core/interfaces"
	"github.com/gocolly/colly"
)

const (
	// Social preview markup is served to crawler user agents that platforms
	// already whitelist for link unfurling.
	collyUserAgent = "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)"

	metadataCacheTTL = 24 * time.Hour
	maxBodySize      = 5 * 1024 * 1024
	requestTimeout   = 10 * time.Second
	batchConcurrency = 10
)

// MetadataService extracts Open Graph metadata from permalinks
type MetadataService struct {
	deps interfaces.Dependencies
}

// NewMetadataService creates a new metadata service
func NewMetadataService(deps interfaces.Dependencies) *MetadataService {
	return &MetadataService{
		deps: deps,
	}
}

// ExtractMetadata extracts metadata from a single URL, cache-aside
func (s *MetadataService) ExtractMetadata(ctx context.Context, targetURL string) (*interfaces.MetadataResult, error) {
	if s.deps.Cache != nil {
		cacheKey := "metadata:" + targetURL
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			var result interfaces.MetadataResult
			if err := json.Unmarshal(data, &result); err == nil {
				return &result, nil
			}
		}
	}

	result := s.extractFromURL(targetURL)

	if s.deps.Cache != nil && result != nil {
		cacheKey := "metadata:" + targetURL
		if data, err := json.Marshal(result); err == nil {
			_ = s.deps.Cache.Set(ctx, cacheKey, data, metadataCacheTTL)
		}
	}

	return result, nil
}

// ExtractMetadataBatch extracts metadata for multiple URLs concurrently
func (s *MetadataService) ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*interfaces.MetadataResult {
	results := make(map[string]*interfaces.MetadataResult)
	var mu sync.Mutex
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, batchConcurrency)

	for _, url := range urls {
		wg.Add(1)
		go func(targetURL string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if result, err := s.ExtractMetadata(ctx, targetURL); err == nil && result != nil {
				mu.Lock()
				results[targetURL] = result
				mu.Unlock()
			}
		}(url)
	}

	wg.Wait()
	return results
}

// extractFromURL performs the actual scrape
func (s *MetadataService) extractFromURL(targetURL string) *interfaces.MetadataResult {
	if targetURL == "" || targetURL == "about:blank" || !strings.Contains(targetURL, "://") {
		return nil
	}

	c := colly.NewCollector(
		colly.UserAgent(collyUserAgent),
		colly.MaxBodySize(maxBodySize),
		colly.Async(false),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(requestTimeout)

	result := &interfaces.MetadataResult{
		Images: []string{},
	}

	c.OnHTML("meta", func(e *colly.HTMLElement) {
		content := e.Attr("content")
		if content == "" {
			return
		}
		key := e.Attr("property")
		if key == "" {
			key = e.Attr("name")
		}

		switch key {
		case "og:title", "twitter:title":
			if result.Title == "" {
				result.Title = content
			}
		case "og:description", "twitter:description", "description":
			if result.Description == "" {
				result.Description = content
			}
		case "og:image", "twitter:image":
			if result.Thumbnail == "" {
				result.Thumbnail = content
			}
			result.Images = append(result.Images, content)
		case "og:video", "og:video:secure_url":
			if result.VideoURL == "" {
				result.VideoURL = content
			}
		case "og:site_name":
			if result.Domain == "" {
				result.Domain = content
			}
		}
	})

	c.OnHTML(`link[rel="icon"], link[rel="shortcut icon"]`, func(e *colly.HTMLElement) {
		if result.Favicon == "" {
			result.Favicon = e.Request.AbsoluteURL(e.Attr("href"))
		}
	})

	if err := c.Visit(targetURL); err != nil {
		if s.deps.Logger != nil {
			s.deps.Logger.Debug("Metadata scrape failed", map[string]interface{}{
				"url":   targetURL,
				"error": err.Error(),
			})
		}
		return nil
	}
	c.Wait()

	if result.Title == "" && result.Description == "" && result.Thumbnail == "" {
		return nil
	}
	return result
}
