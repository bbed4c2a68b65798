// ABOUTME: YouTube watch-page extractor
// ABOUTME: Reads title and description through prioritized selector chains

package extract

import (
	"revoice-app-api/core/dom"
	"revoice-app-api/core/domain"
)

// youtubeTitleSelectors is consulted in order; og:title and the document
// title are the final fallbacks. YouTube ships several generations of watch
// page markup at once, so the chain is deliberately long.
var youtubeTitleSelectors = []string{
	"h1.ytd-watch-metadata yt-formatted-string",
	"h1.title.ytd-video-primary-info-renderer",
	"ytd-watch-metadata h1",
	"#title h1",
}

var youtubeDescriptionSelectors = []string{
	"#description-inline-expander .yt-core-attributed-string",
	"ytd-text-inline-expander yt-formatted-string",
	"#description.ytd-expandable-video-description-body-renderer",
	"#description yt-formatted-string",
}

// youtubeExpandChrome is stripped by the prepare pass: expander buttons keep
// their label text inside the description container.
var youtubeExpandChrome = []string{
	"tp-yt-paper-button#expand",
	"tp-yt-paper-button#collapse",
	"#description-inline-expander #expand",
	"#description-inline-expander #collapse",
}

// YouTubeExtractor extracts the currently watched video
type YouTubeExtractor struct{}

// NewYouTubeExtractor creates a YouTube extractor
func NewYouTubeExtractor() *YouTubeExtractor {
	return &YouTubeExtractor{}
}

// Name returns the canonical platform label
func (e *YouTubeExtractor) Name() string {
	return "YouTube"
}

// Matches reports whether the snapshot comes from YouTube
func (e *YouTubeExtractor) Matches(doc *dom.Document) bool {
	host := doc.Hostname()
	return hostMatches(host, "youtube.com") || hostMatches(host, "youtu.be")
}

// Extract reads the watch page. Watch pages ARE the video, so the result
// always reports hasVideo with the page URL as the video URL.
func (e *YouTubeExtractor) Extract(doc *dom.Document) (*domain.ExtractedContent, error) {
	e.prepare(doc)

	title := firstText(doc, youtubeTitleSelectors...)
	if title == "" {
		title = doc.Meta("og:title")
	}
	if title == "" {
		title = doc.Title()
	}

	description := firstText(doc, youtubeDescriptionSelectors...)
	if description == "" {
		description = doc.Meta("og:description", "description")
	}

	if title == "" && description == "" {
		return nil, nil
	}

	pageURL := doc.URL().String()

	return &domain.ExtractedContent{
		Title:       title,
		Content:     description,
		TextContent: description,
		Excerpt:     excerpt(description),
		SiteName:    e.Name(),
		URL:         pageURL,
		HasVideo:    true,
		Video: &domain.VideoInfo{
			URL:       pageURL,
			Thumbnail: doc.Meta("og:image"),
			Type:      "youtube",
		},
	}, nil
}

// prepare strips the expand/collapse chrome so description text reads clean.
// Idempotent: removed nodes simply stop matching.
func (e *YouTubeExtractor) prepare(doc *dom.Document) {
	for _, sel := range youtubeExpandChrome {
		for _, el := range doc.Find(sel) {
			el.Remove()
		}
	}
}
