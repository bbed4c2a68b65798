// ABOUTME: Content enrichment service that combines metadata scraping and markdown rendering
// ABOUTME: Provides a unified interface for enriching accepted extractions with additional data

package services

import (
	"context"
	"time"

	"revoice-app-api/core/domain"
	"revoice-app-api/core/interfaces"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

const markdownCacheTTL = 24 * time.Hour

// ContentEnrichmentService combines metadata extraction and markdown rendering
type ContentEnrichmentService struct {
	metadata  *MetadataService
	converter *md.Converter
	cache     interfaces.Cache
	logger    interfaces.Logger
}

// NewContentEnrichmentService creates a new unified enrichment service
func NewContentEnrichmentService(deps interfaces.Dependencies) *ContentEnrichmentService {
	return &ContentEnrichmentService{
		metadata:  NewMetadataService(deps),
		converter: md.NewConverter("", true, nil),
		cache:     deps.Cache,
		logger:    deps.Logger,
	}
}

// RenderMarkdown converts the extraction's HTML content to markdown. Renders
// are cached by canonical URL so repeat extractions of the same post skip the
// conversion.
func (s *ContentEnrichmentService) RenderMarkdown(ctx context.Context, content *domain.ExtractedContent) (string, error) {
	if content == nil || content.Content == "" {
		return "", nil
	}

	cacheKey := ""
	if s.cache != nil && content.URL != "" {
		cacheKey = "markdown:" + content.URL
		if data, err := s.cache.Get(ctx, cacheKey); err == nil && data != nil {
			return string(data), nil
		}
	}

	markdown, err := s.converter.ConvertString(content.Content)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("Markdown conversion failed", map[string]interface{}{
				"url":   content.URL,
				"error": err.Error(),
			})
		}
		return "", err
	}

	if cacheKey != "" {
		_ = s.cache.Set(ctx, cacheKey, []byte(markdown), markdownCacheTTL)
	}
	return markdown, nil
}

// ExtractMetadata extracts metadata from a URL
func (s *ContentEnrichmentService) ExtractMetadata(ctx context.Context, url string) (*interfaces.MetadataResult, error) {
	return s.metadata.ExtractMetadata(ctx, url)
}

// ExtractMetadataBatch extracts metadata for multiple URLs
func (s *ContentEnrichmentService) ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*interfaces.MetadataResult {
	return s.metadata.ExtractMetadataBatch(ctx, urls)
}
