// ABOUTME: Service layer for URL-mode reader view extraction
// ABOUTME: Fetches and cleans article content with go-readability

package reader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"revoice-app-api/core/domain"
	"revoice-app-api/core/interfaces"
	htmlutil "revoice-app-api/pkg/utils/html"

	md "github.com/JohannesKaufmann/html-to-markdown"
	readability "github.com/go-shiori/go-readability"
)

const (
	fetchTimeout = 30 * time.Second
	cacheTTL     = 1 * time.Hour
	excerptMax   = 150
)

// Service extracts reader views from URLs when the side panel has no DOM
// snapshot to offer, e.g. a manual rescan or a pasted link.
type Service struct {
	cache      interfaces.Cache
	httpClient interfaces.HTTPClient
	logger     interfaces.Logger
}

// NewService creates a reader service
func NewService(deps interfaces.Dependencies) *Service {
	return &Service{
		cache:      deps.Cache,
		httpClient: deps.HTTPClient,
		logger:     deps.Logger,
	}
}

// ExtractReaderViews extracts clean article content from multiple URLs
// concurrently. The result slice is positionally aligned with urls.
func (s *Service) ExtractReaderViews(ctx context.Context, urls []string) []domain.ReaderView {
	results := make([]domain.ReaderView, len(urls))
	var wg sync.WaitGroup

	for i, url := range urls {
		wg.Add(1)
		go func(index int, url string) {
			defer wg.Done()

			if s.cache != nil {
				cacheKey := fmt.Sprintf("reader:%s", url)
				if data, err := s.cache.Get(ctx, cacheKey); err == nil && data != nil {
					var cachedView domain.ReaderView
					if err := json.Unmarshal(data, &cachedView); err == nil {
						results[index] = cachedView
						return
					}
				}
			}

			view := s.extractSingleView(ctx, url)
			results[index] = view

			if s.cache != nil && view.Status == "ok" {
				cacheKey := fmt.Sprintf("reader:%s", url)
				if data, err := json.Marshal(view); err == nil {
					_ = s.cache.Set(ctx, cacheKey, data, cacheTTL)
				}
			}
		}(i, url)
	}

	wg.Wait()
	return results
}

func (s *Service) extractSingleView(ctx context.Context, rawURL string) domain.ReaderView {
	result := domain.ReaderView{
		URL:    rawURL,
		Status: "ok",
	}

	article, err := s.fetchArticle(ctx, rawURL)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("Failed to parse reader view", map[string]interface{}{
				"url":   rawURL,
				"error": err.Error(),
			})
		}
		result.Status = "error"
		result.Error = err.Error()
		return result
	}

	result.Title = article.Title
	result.Content = article.Content
	result.TextContent = strings.TrimSpace(article.TextContent)
	result.SiteName = article.SiteName
	result.Image = article.Image
	result.Favicon = article.Favicon
	result.Excerpt = buildExcerpt(article.Excerpt, result.TextContent)

	if result.Content != "" {
		converter := md.NewConverter("", true, nil)
		markdown, err := converter.ConvertString(result.Content)
		if err != nil {
			if s.logger != nil {
				s.logger.Debug("Failed to convert HTML to markdown", map[string]interface{}{
					"url":   rawURL,
					"error": err.Error(),
				})
			}
			// Markdown is an enrichment; its failure never fails the view.
			result.Markdown = ""
		} else {
			result.Markdown = strings.TrimSpace(markdown)
		}
	}

	return result
}

// fetchArticle retrieves the page through the injected HTTP client so that
// timeouts and user agent stay consistent with the rest of the app. Without a
// client it falls back to readability's own fetcher.
func (s *Service) fetchArticle(ctx context.Context, rawURL string) (readability.Article, error) {
	if s.httpClient == nil {
		return readability.FromURL(rawURL, fetchTimeout)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return readability.Article{}, fmt.Errorf("invalid url: %w", err)
	}

	resp, err := s.httpClient.Get(ctx, rawURL)
	if err != nil {
		return readability.Article{}, fmt.Errorf("fetching page: %w", err)
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() >= 400 {
		return readability.Article{}, fmt.Errorf("fetching page: status %d", resp.StatusCode())
	}

	return readability.FromReader(body, parsed)
}

func buildExcerpt(articleExcerpt, textContent string) string {
	// Readability excerpts occasionally carry residual markup and entities.
	excerpt := strings.TrimSpace(htmlutil.StripHTML(articleExcerpt))
	if excerpt == "" {
		excerpt = textContent
	}
	if len(excerpt) > excerptMax {
		if runes := []rune(excerpt); len(runes) > excerptMax {
			excerpt = string(runes[:excerptMax]) + "..."
		}
	}
	return excerpt
}
