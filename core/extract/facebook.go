// ABOUTME: Facebook extractor with media-page and feed modes
// ABOUTME: Feed mode restricts candidates to top-level articles and uses the longest text block

package extract

import (
	"strings"

	"revoice-app-api/core/dom"
	"revoice-app-api/core/domain"
)

// facebookMinImageDimension rejects icons and avatars when capture-time
// dimensions are known
const facebookMinImageDimension = 100

var facebookCDNMarkers = []string{"fbcdn", "scontent"}

// FacebookExtractor extracts the current post or media page
type FacebookExtractor struct{}

// NewFacebookExtractor creates a Facebook extractor
func NewFacebookExtractor() *FacebookExtractor {
	return &FacebookExtractor{}
}

// Name returns the canonical platform label
func (e *FacebookExtractor) Name() string {
	return "Facebook"
}

// Matches reports whether the snapshot comes from Facebook
func (e *FacebookExtractor) Matches(doc *dom.Document) bool {
	host := doc.Hostname()
	return hostMatches(host, "facebook.com") || hostMatches(host, "fb.watch")
}

// Extract branches on the URL: reel/watch/video pages are a single media
// item, everything else is feed mode.
func (e *FacebookExtractor) Extract(doc *dom.Document) (*domain.ExtractedContent, error) {
	path := doc.URL().Path
	if strings.Contains(path, "/reel/") || strings.Contains(path, "/watch") || strings.Contains(path, "/videos/") {
		return e.extractMediaPage(doc), nil
	}
	return e.extractFeedPost(doc), nil
}

// extractMediaPage treats the whole page as one video item
func (e *FacebookExtractor) extractMediaPage(doc *dom.Document) *domain.ExtractedContent {
	isReel := strings.Contains(doc.URL().Path, "/reel/")

	text := firstText(doc, `[data-ad-preview="message"]`, `div[dir="auto"]`)
	if text == "" {
		text = doc.Meta("og:description", "description")
	}

	title := doc.Meta("og:title")
	if title == "" {
		if isReel {
			title = "Facebook Reel"
		} else {
			title = "Facebook Video"
		}
	}

	thumbnail := ""
	if videoEl := doc.First("video"); videoEl != nil {
		thumbnail = videoEl.Attr("poster")
	}
	if thumbnail == "" {
		thumbnail = doc.Meta("og:image")
	}

	videoType := "facebook-video"
	if isReel {
		videoType = "facebook-reel"
	}

	content := text
	if content == "" {
		content = "(Video)"
	}

	return &domain.ExtractedContent{
		Title:       title,
		Content:     content,
		TextContent: content,
		Excerpt:     excerpt(content),
		SiteName:    e.Name(),
		URL:         doc.URL().String(),
		HasVideo:    true,
		Video: &domain.VideoInfo{
			URL:       doc.URL().String(),
			Thumbnail: thumbnail,
			Type:      videoType,
		},
	}
}

// extractFeedPost locates the on-screen post among top-level articles
func (e *FacebookExtractor) extractFeedPost(doc *dom.Document) *domain.ExtractedContent {
	post := e.findPost(doc)
	if post == nil {
		return nil
	}

	text := e.postText(post)
	video, hasVideo := e.findVideo(post)
	images := e.contentImages(post, video)

	// A video with no resolvable thumbnail borrows the first qualifying image
	if hasVideo && video.Thumbnail == "" && len(images) > 0 {
		video.Thumbnail = images[0]
		images = images[1:]
	}

	// Pure UI chrome (e.g. a shared-link card with nothing extractable)
	if text == "" && len(images) == 0 && !hasVideo {
		return nil
	}

	title := "Facebook post"
	if text != "" {
		title = snippet(text, 80)
	}

	return &domain.ExtractedContent{
		Title:       title,
		Content:     text,
		TextContent: text,
		Excerpt:     excerpt(text),
		SiteName:    e.Name(),
		URL:         doc.URL().String(),
		HasVideo:    hasVideo,
		Video:       video,
		Images:      images,
	}
}

// findPost collects top-level role=article containers, explicitly excluding
// nested comment threads, then applies viewport centering.
func (e *FacebookExtractor) findPost(doc *dom.Document) *dom.Element {
	var topLevel []*dom.Element
	for _, article := range doc.Find(`div[role="article"]`) {
		if article.HasAncestor(`div[role="article"]`) {
			continue
		}
		topLevel = append(topLevel, article)
	}
	if len(topLevel) == 0 {
		return nil
	}
	return mostCentered(topLevel, doc.ViewportHeight())
}

// postText prefers the explicit ad-preview message element, else the longest
// dir="auto" block. The longest block is most likely the body rather than a
// caption or label.
func (e *FacebookExtractor) postText(post *dom.Element) string {
	if msg := post.First(`[data-ad-preview="message"]`); msg != nil {
		if text := msg.Text(); text != "" {
			return text
		}
	}

	longest := ""
	for _, block := range post.Find(`div[dir="auto"]`) {
		if text := block.Text(); len(text) > len(longest) {
			longest = text
		}
	}
	return longest
}

func (e *FacebookExtractor) findVideo(post *dom.Element) (*domain.VideoInfo, bool) {
	videoEl := post.First("video")
	if videoEl == nil {
		return nil, false
	}
	return &domain.VideoInfo{
		URL:       videoEl.Attr("src"),
		Thumbnail: videoEl.Attr("poster"),
		Type:      "facebook",
	}, true
}

// contentImages keeps CDN-hosted images above the minimum dimension and drops
// emoji sprites and the video thumbnail. Images without recorded dimensions
// pass the size check; the capture script only stamps what was laid out.
func (e *FacebookExtractor) contentImages(post *dom.Element, video *domain.VideoInfo) []string {
	var images []string
	for _, img := range post.Find("img") {
		src := img.Attr("src")
		if src == "" || !e.onCDN(src) {
			continue
		}
		if strings.Contains(src, "emoji.php") || strings.Contains(src, "rsrc.php") {
			continue
		}
		if w, h, ok := img.Dimensions(); ok && (w < facebookMinImageDimension || h < facebookMinImageDimension) {
			continue
		}
		if video != nil && src == video.Thumbnail {
			continue
		}
		images = appendUnique(images, src)
	}
	return images
}

func (e *FacebookExtractor) onCDN(src string) bool {
	for _, marker := range facebookCDNMarkers {
		if strings.Contains(src, marker) {
			return true
		}
	}
	return false
}
