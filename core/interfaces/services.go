// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for services used throughout the application

package interfaces

import (
	"context"

	"revoice-app-api/core/domain"
)

// ReaderService extracts clean article content from URLs server-side,
// used for manual rescans where no DOM snapshot is available.
type ReaderService interface {
	ExtractReaderViews(ctx context.Context, urls []string) []domain.ReaderView
}

// MetadataResult contains extracted metadata from a webpage
type MetadataResult struct {
	Title       string
	Description string
	Thumbnail   string // Primary image URL
	Images      []string
	VideoURL    string
	Domain      string
	Favicon     string
}

// MetadataService extracts Open Graph metadata from web pages
type MetadataService interface {
	ExtractMetadata(ctx context.Context, url string) (*MetadataResult, error)
	ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*MetadataResult
}

// ContentEnrichmentService enriches accepted extractions in the background
type ContentEnrichmentService interface {
	RenderMarkdown(ctx context.Context, content *domain.ExtractedContent) (string, error)
	ExtractMetadataBatch(ctx context.Context, urls []string) map[string]*MetadataResult
}
