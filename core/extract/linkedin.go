// ABOUTME: LinkedIn feed extractor with URN permalink resolution
// ABOUTME: Picks the on-screen post via viewport centering before reading it

package extract

import (
	"fmt"
	"regexp"
	"strings"

	"revoice-app-api/core/dom"
	"revoice-app-api/core/domain"
)

// linkedinPostSelectors identify simultaneously mounted feed post containers
var linkedinPostSelectors = []string{
	"div.feed-shared-update-v2",
	"div.occludable-update",
	`div[data-urn^="urn:li:activity"]`,
	`div[data-id^="urn:li:activity"]`,
}

var linkedinTextSelectors = []string{
	".feed-shared-update-v2__description .update-components-text",
	".update-components-text .break-words",
	".update-components-text",
	".feed-shared-text",
}

// linkedinSeeMoreChrome is stripped before reading so truncated posts read
// their full text without the trailing "…see more" label.
var linkedinSeeMoreChrome = []string{
	".feed-shared-inline-show-more-text__see-more-less-toggle",
	"button.see-more",
	".feed-shared-inline-show-more-text__dynamic-more-text",
}

var linkedinActivityURN = regexp.MustCompile(`urn:li:activity:(\d+)`)

// LinkedInExtractor extracts the feed post the user is currently reading
type LinkedInExtractor struct{}

// NewLinkedInExtractor creates a LinkedIn extractor
func NewLinkedInExtractor() *LinkedInExtractor {
	return &LinkedInExtractor{}
}

// Name returns the canonical platform label
func (e *LinkedInExtractor) Name() string {
	return "LinkedIn"
}

// Matches reports whether the snapshot comes from LinkedIn
func (e *LinkedInExtractor) Matches(doc *dom.Document) bool {
	return hostMatches(doc.Hostname(), "linkedin.com")
}

// Extract selects the most centered post container and reads it
func (e *LinkedInExtractor) Extract(doc *dom.Document) (*domain.ExtractedContent, error) {
	post := e.findPost(doc)
	if post == nil {
		return nil, nil
	}

	e.prepare(post)

	text := firstTextIn(post, linkedinTextSelectors...)
	author := e.authorOf(post)

	urn := e.postURN(post)
	postURL, postID := e.resolvePermalink(doc, post, urn)

	video, hasVideo := e.findVideo(doc, post)
	images := e.contentImages(post, video)

	if text == "" && len(images) == 0 && !hasVideo {
		return nil, nil
	}

	title := "LinkedIn post"
	if author != "" {
		title = fmt.Sprintf("%s on LinkedIn: %q", author, snippet(text, 60))
	} else if text != "" {
		title = snippet(text, 80)
	}

	return &domain.ExtractedContent{
		Title:       title,
		Content:     text,
		TextContent: text,
		Excerpt:     excerpt(text),
		SiteName:    e.Name(),
		URL:         postURL,
		PostID:      postID,
		HasVideo:    hasVideo,
		Video:       video,
		Images:      images,
	}, nil
}

// findPost gathers candidate containers and applies viewport centering
func (e *LinkedInExtractor) findPost(doc *dom.Document) *dom.Element {
	for _, sel := range linkedinPostSelectors {
		if candidates := doc.Find(sel); len(candidates) > 0 {
			return mostCentered(candidates, doc.ViewportHeight())
		}
	}
	return nil
}

// prepare expands truncated posts by stripping the see-more toggle chrome.
// Idempotent across repeated extraction passes.
func (e *LinkedInExtractor) prepare(post *dom.Element) {
	for _, sel := range linkedinSeeMoreChrome {
		for _, el := range post.Find(sel) {
			el.Remove()
		}
	}
}

func (e *LinkedInExtractor) authorOf(post *dom.Element) string {
	return firstTextIn(post,
		`.update-components-actor__title span[aria-hidden="true"]`,
		".update-components-actor__title",
		".feed-shared-actor__name",
	)
}

// postURN reads the stable identity attribute from the container or the
// nearest ancestor that carries one.
func (e *LinkedInExtractor) postURN(post *dom.Element) string {
	for _, attr := range []string{"data-urn", "data-id"} {
		if urn := post.Attr(attr); urn != "" {
			return urn
		}
		if ancestor := post.Closest("[" + attr + "]"); ancestor != nil {
			if urn := ancestor.Attr(attr); urn != "" {
				return urn
			}
		}
	}
	return ""
}

// resolvePermalink prefers a canonical activity permalink synthesized from
// the URN, then an in-post permalink anchor, and only as a last resort the
// ambient feed URL.
func (e *LinkedInExtractor) resolvePermalink(doc *dom.Document, post *dom.Element, urn string) (postURL, postID string) {
	if match := linkedinActivityURN.FindStringSubmatch(urn); match != nil {
		activityURN := "urn:li:activity:" + match[1]
		return fmt.Sprintf("https://www.linkedin.com/feed/update/%s/", activityURN), activityURN
	}

	if anchor := post.First(`a[href*="/feed/update/"]`); anchor != nil {
		if resolved := absoluteURL(doc, anchor.Attr("href")); resolved != "" {
			return resolved, urn
		}
	}

	return doc.URL().String(), urn
}

// findVideo mirrors the X/Twitter layered fallback: poster, then an image
// whose alt implies video, then og:image.
func (e *LinkedInExtractor) findVideo(doc *dom.Document, post *dom.Element) (*domain.VideoInfo, bool) {
	videoEl := post.First("video")
	if videoEl == nil {
		if post.First(".update-components-linkedin-video") == nil {
			return nil, false
		}
	}

	thumbnail := ""
	var videoURL string
	if videoEl != nil {
		thumbnail = videoEl.Attr("poster")
		videoURL = videoEl.Attr("src")
	}
	if thumbnail == "" {
		for _, img := range post.Find("img") {
			if strings.Contains(strings.ToLower(img.Attr("alt")), "video") {
				thumbnail = img.Attr("src")
				break
			}
		}
	}
	if thumbnail == "" {
		thumbnail = doc.Meta("og:image")
	}

	return &domain.VideoInfo{
		URL:       videoURL,
		Thumbnail: thumbnail,
		Type:      "linkedin",
	}, true
}

// contentImages keeps CDN-hosted content images and drops avatars, emoji and
// the resolved video thumbnail. media.licdn.com distinguishes post media from
// UI chrome.
func (e *LinkedInExtractor) contentImages(post *dom.Element, video *domain.VideoInfo) []string {
	var images []string
	for _, img := range post.Find("img") {
		src := img.Attr("src")
		if src == "" || !strings.Contains(src, "media.licdn.com") {
			continue
		}
		lower := strings.ToLower(src)
		if strings.Contains(lower, "profile-displayphoto") || strings.Contains(lower, "emoji") {
			continue
		}
		if img.HasAncestor(".update-components-actor") {
			continue
		}
		if video != nil && src == video.Thumbnail {
			continue
		}
		images = appendUnique(images, src)
	}
	return images
}
