// ABOUTME: Domain model for normalized extracted page content
// ABOUTME: Defines the structure every platform extractor maps into

package domain

import "fmt"

// ExtractedContent is the normalized output of any extractor. A value is
// created fresh on every extraction pass and never mutated in place; the next
// pass supersedes it wholesale.
type ExtractedContent struct {
	// Title is a human-readable label, synthesized per platform
	Title string `json:"title"`

	// Content is the raw/HTML form of the body
	Content string `json:"content"`

	// TextContent is the plain-text form of the body; may equal Content
	TextContent string `json:"textContent"`

	// Excerpt is a short summary, capped at roughly 150 characters
	Excerpt string `json:"excerpt"`

	// SiteName is the canonical platform label
	SiteName string `json:"siteName"`

	// URL is the canonical URL of the specific item, not necessarily the
	// address bar URL (LinkedIn resolves a permalink from a URN)
	URL string `json:"url"`

	// PostID is a stable platform identity when one exists (LinkedIn URN)
	PostID string `json:"postId,omitempty"`

	// HasVideo reports whether a video asset was detected
	HasVideo bool `json:"hasVideo,omitempty"`

	// Video carries provenance of the detected video asset
	Video *VideoInfo `json:"video,omitempty"`

	// Images is an ordered list of content image URLs, excluding avatars,
	// emoji, UI chrome and the video thumbnail
	Images []string `json:"images,omitempty"`

	// Markdown is filled in by background enrichment, not by extractors
	Markdown string `json:"markdown,omitempty"`
}

// VideoInfo describes a detected video asset
type VideoInfo struct {
	URL       string `json:"url,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Type      string `json:"type,omitempty"`
}

// fingerprintPrefixLen is how much of the text body participates in the
// derived fingerprint for platforms without a native post ID
const fingerprintPrefixLen = 50

// Fingerprint returns the de-duplication identity of the content: the native
// PostID when the platform exposes one, otherwise a derived identity from the
// site name, a text prefix and the image count.
func (c *ExtractedContent) Fingerprint() string {
	if c.PostID != "" {
		return c.PostID
	}

	prefix := c.TextContent
	if len(prefix) > fingerprintPrefixLen {
		// Cut on a rune boundary so the identity is valid UTF-8.
		if runes := []rune(prefix); len(runes) > fingerprintPrefixLen {
			prefix = string(runes[:fingerprintPrefixLen])
		}
	}

	return fmt.Sprintf("%s|%s|%d", c.SiteName, prefix, len(c.Images))
}

// IsValid checks that the content carries at least one extractable signal
func (c *ExtractedContent) IsValid() bool {
	return c.TextContent != "" || len(c.Images) > 0 || c.HasVideo
}
