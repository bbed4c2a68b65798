// ABOUTME: X/Twitter extractor for the primary tweet article
// ABOUTME: Synthesizes a title from author and timestamp, filters media images

package extract

import (
	"fmt"
	"strings"

	"revoice-app-api/core/dom"
	"revoice-app-api/core/domain"
)

// TwitterExtractor extracts the primary tweet on a status page or timeline.
// Only the first tweet-role article counts; a timeline with no such article
// yields no match rather than guessing.
type TwitterExtractor struct{}

// NewTwitterExtractor creates an X/Twitter extractor
func NewTwitterExtractor() *TwitterExtractor {
	return &TwitterExtractor{}
}

// Name returns the canonical platform label
func (e *TwitterExtractor) Name() string {
	return "X (Twitter)"
}

// Matches reports whether the snapshot comes from X/Twitter
func (e *TwitterExtractor) Matches(doc *dom.Document) bool {
	host := doc.Hostname()
	return hostMatches(host, "twitter.com") || hostMatches(host, "x.com")
}

// Extract reads the primary tweet article
func (e *TwitterExtractor) Extract(doc *dom.Document) (*domain.ExtractedContent, error) {
	article := doc.First(`article[data-testid="tweet"]`)
	if article == nil {
		article = doc.First(`article[role="article"]`)
	}
	if article == nil {
		return nil, nil
	}

	text := firstTextIn(article, `[data-testid="tweetText"]`)
	author := e.authorOf(article)
	timestamp := ""
	if timeEl := article.First("time"); timeEl != nil {
		timestamp = timeEl.Attr("datetime")
	}

	video, hasVideo := e.findVideo(doc, article)
	images := e.contentImages(article, video)

	if text == "" && len(images) == 0 && !hasVideo {
		return nil, nil
	}

	title := e.buildTitle(author, timestamp, text)

	return &domain.ExtractedContent{
		Title:       title,
		Content:     text,
		TextContent: text,
		Excerpt:     excerpt(text),
		SiteName:    e.Name(),
		URL:         e.canonicalURL(doc, article),
		HasVideo:    hasVideo,
		Video:       video,
		Images:      images,
	}, nil
}

func (e *TwitterExtractor) authorOf(article *dom.Element) string {
	nameBlock := article.First(`[data-testid="User-Name"]`)
	if nameBlock == nil {
		return ""
	}
	// The display name is the first span line; the @handle follows it.
	if span := nameBlock.First("span"); span != nil {
		return span.Text()
	}
	return nameBlock.Text()
}

func (e *TwitterExtractor) buildTitle(author, timestamp, text string) string {
	date := timestamp
	if idx := strings.Index(timestamp, "T"); idx > 0 {
		date = timestamp[:idx]
	}

	switch {
	case author != "" && date != "":
		return fmt.Sprintf("%s on X (%s): %q", author, date, snippet(text, 60))
	case author != "":
		return fmt.Sprintf("%s on X: %q", author, snippet(text, 60))
	case text != "":
		return snippet(text, 80)
	default:
		return "Post on X"
	}
}

// findVideo detects a video and resolves its thumbnail: poster attribute
// first, then an image whose alt text implies video, then og:image.
func (e *TwitterExtractor) findVideo(doc *dom.Document, article *dom.Element) (*domain.VideoInfo, bool) {
	videoEl := article.First("video")
	if videoEl == nil {
		return nil, false
	}

	thumbnail := videoEl.Attr("poster")
	if thumbnail == "" {
		for _, img := range article.Find("img") {
			alt := strings.ToLower(img.Attr("alt"))
			if strings.Contains(alt, "video") || img.HasAncestor(`[data-testid="videoPlayer"]`) {
				thumbnail = img.Attr("src")
				break
			}
		}
	}
	if thumbnail == "" {
		thumbnail = doc.Meta("og:image")
	}

	return &domain.VideoInfo{
		URL:       videoEl.Attr("src"),
		Thumbnail: thumbnail,
		Type:      "twitter",
	}, true
}

// contentImages collects tweet media, excluding profile photos, emoji and the
// resolved video thumbnail.
func (e *TwitterExtractor) contentImages(article *dom.Element, video *domain.VideoInfo) []string {
	var images []string
	for _, img := range article.Find("img") {
		src := img.Attr("src")
		if src == "" {
			continue
		}
		if strings.Contains(src, "profile_images") || strings.Contains(src, "emoji") {
			continue
		}
		if video != nil && src == video.Thumbnail {
			continue
		}
		if !img.HasAncestor(`[data-testid="tweetPhoto"]`) && !strings.Contains(src, "/media/") {
			continue
		}
		images = appendUnique(images, src)
	}
	return images
}

// canonicalURL prefers the tweet's own status permalink over the ambient page
// URL, which on timelines does not identify the tweet.
func (e *TwitterExtractor) canonicalURL(doc *dom.Document, article *dom.Element) string {
	if timeEl := article.First(`a[href*="/status/"] time`); timeEl != nil {
		if anchor := timeEl.Closest("a"); anchor != nil {
			if resolved := absoluteURL(doc, anchor.Attr("href")); resolved != "" {
				return resolved
			}
		}
	}
	return doc.URL().String()
}
