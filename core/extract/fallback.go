// ABOUTME: Generic readability fallback for pages no platform extractor matches
// ABOUTME: Boilerplate-stripping pass plus og/video-tag sniffing

package extract

import (
	"strings"

	readability "github.com/go-shiori/go-readability"

	"revoice-app-api/core/dom"
	"revoice-app-api/core/domain"
)

// FallbackExtractor wraps a readability pass over the pristine snapshot HTML
type FallbackExtractor struct{}

// NewFallbackExtractor creates the generic fallback extractor
func NewFallbackExtractor() *FallbackExtractor {
	return &FallbackExtractor{}
}

// Name returns the label used when readability reports no site name
func (e *FallbackExtractor) Name() string {
	return "fallback"
}

// Matches always holds; the dispatcher consults the fallback last
func (e *FallbackExtractor) Matches(doc *dom.Document) bool {
	return true
}

// Extract runs readability over the raw snapshot, then probes for video
// separately. Returns nil when readability finds no article.
func (e *FallbackExtractor) Extract(doc *dom.Document) (*domain.ExtractedContent, error) {
	article, err := readability.FromReader(strings.NewReader(doc.RawHTML()), doc.URL())
	if err != nil {
		return nil, nil
	}
	if strings.TrimSpace(article.TextContent) == "" && article.Title == "" {
		return nil, nil
	}

	siteName := article.SiteName
	if siteName == "" {
		siteName = doc.Hostname()
	}

	shortExcerpt := article.Excerpt
	if shortExcerpt == "" {
		shortExcerpt = excerpt(article.TextContent)
	} else {
		shortExcerpt = excerpt(shortExcerpt)
	}

	content := &domain.ExtractedContent{
		Title:       article.Title,
		Content:     article.Content,
		TextContent: strings.TrimSpace(article.TextContent),
		Excerpt:     shortExcerpt,
		SiteName:    siteName,
		URL:         doc.URL().String(),
	}

	if video := e.probeVideo(doc); video != nil {
		content.HasVideo = true
		content.Video = video
	}

	return content, nil
}

// probeVideo checks og:video meta tags first, then the first HTML5 video
// element. The thumbnail comes from og:image regardless of which path
// matched.
func (e *FallbackExtractor) probeVideo(doc *dom.Document) *domain.VideoInfo {
	if videoURL := doc.Meta("og:video", "og:video:secure_url"); videoURL != "" {
		return &domain.VideoInfo{
			URL:       videoURL,
			Thumbnail: doc.Meta("og:image"),
			Type:      "social/og",
		}
	}

	if videoEl := doc.First("video"); videoEl != nil {
		src := videoEl.Attr("src")
		if src == "" {
			if source := videoEl.First("source"); source != nil {
				src = source.Attr("src")
			}
		}
		if src != "" {
			return &domain.VideoInfo{
				URL:       absoluteURL(doc, src),
				Thumbnail: doc.Meta("og:image"),
				Type:      "html5",
			}
		}
	}

	return nil
}
