package extract

import (
	"testing"

	"revoice-app-api/core/dom"
)

const tweetHTML = `<!DOCTYPE html>
<html>
<head>
<meta property="og:image" content="https://pbs.twimg.com/og-card.jpg" />
</head>
<body>
<article data-testid="tweet">
	<div data-testid="User-Name"><span>Jane Dev</span><span>@janedev</span></div>
	<a href="/janedev/status/1234567890"><time datetime="2025-03-14T09:30:00.000Z">Mar 14</time></a>
	<div data-testid="tweetText">Shipped the new release today. Huge thanks to everyone who filed bugs.</div>
	<div data-testid="tweetPhoto"><img src="https://pbs.twimg.com/media/photo1.jpg" alt="Image" /></div>
	<div data-testid="tweetPhoto"><img src="https://pbs.twimg.com/media/photo2.jpg" alt="Image" /></div>
	<img src="https://pbs.twimg.com/profile_images/avatar.jpg" alt="Jane Dev" />
	<img src="https://abs-0.twimg.com/emoji/v2/svg/1f389.svg" alt="🎉" />
</article>
</body>
</html>`

func twitterDoc(t *testing.T, html, pageURL string) *dom.Document {
	t.Helper()
	doc, err := dom.NewDocument(html, pageURL, 800)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	return doc
}

func TestTwitter_Matches(t *testing.T) {
	e := NewTwitterExtractor()

	for url, want := range map[string]bool{
		"https://x.com/janedev/status/1":       true,
		"https://twitter.com/janedev":          true,
		"https://mobile.twitter.com/janedev":   true,
		"https://example.com/janedev/status/1": false,
	} {
		doc := twitterDoc(t, "<html><body>x</body></html>", url)
		if got := e.Matches(doc); got != want {
			t.Errorf("Matches(%s) = %v, want %v", url, got, want)
		}
	}
}

func TestTwitter_NoTweetArticleReturnsNil(t *testing.T) {
	e := NewTwitterExtractor()
	doc := twitterDoc(t, `<html><body><div>timeline scaffolding only</div></body></html>`,
		"https://x.com/home")

	content, err := e.Extract(doc)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if content != nil {
		t.Error("Extract should return nil without a tweet article")
	}
}

func TestTwitter_ExtractTweet(t *testing.T) {
	e := NewTwitterExtractor()
	doc := twitterDoc(t, tweetHTML, "https://x.com/janedev/status/1234567890")

	content, err := e.Extract(doc)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if content == nil {
		t.Fatal("Extract returned nil")
	}

	wantTitle := `Jane Dev on X (2025-03-14): "Shipped the new release today. Huge thanks to everyone who f..."`
	if content.Title != wantTitle {
		t.Errorf("Title = %q\nwant    %q", content.Title, wantTitle)
	}
	if content.SiteName != "X (Twitter)" {
		t.Errorf("SiteName = %q", content.SiteName)
	}
	if content.URL != "https://x.com/janedev/status/1234567890" {
		t.Errorf("URL = %q, want the status permalink", content.URL)
	}
	if content.HasVideo {
		t.Error("text tweet should not report a video")
	}
}

func TestTwitter_ImageFiltering(t *testing.T) {
	e := NewTwitterExtractor()
	doc := twitterDoc(t, tweetHTML, "https://x.com/janedev/status/1234567890")

	content, err := e.Extract(doc)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if len(content.Images) != 2 {
		t.Fatalf("Images = %v, want the two media photos", content.Images)
	}
	for _, img := range content.Images {
		if img == "https://pbs.twimg.com/profile_images/avatar.jpg" {
			t.Error("profile photo leaked into Images")
		}
		if img == "https://abs-0.twimg.com/emoji/v2/svg/1f389.svg" {
			t.Error("emoji sprite leaked into Images")
		}
	}
}

func TestTwitter_VideoThumbnailChain(t *testing.T) {
	e := NewTwitterExtractor()

	t.Run("poster attribute wins", func(t *testing.T) {
		html := `<html><body><article data-testid="tweet">
			<div data-testid="tweetText">video tweet</div>
			<video poster="https://pbs.twimg.com/poster.jpg" src="https://video.twimg.com/clip.mp4"></video>
		</article></body></html>`
		doc := twitterDoc(t, html, "https://x.com/a/status/1")

		content, _ := e.Extract(doc)
		if !content.HasVideo || content.Video.Thumbnail != "https://pbs.twimg.com/poster.jpg" {
			t.Errorf("Video = %+v", content.Video)
		}
		if content.Video.Type != "twitter" {
			t.Errorf("Video.Type = %q", content.Video.Type)
		}
	})

	t.Run("video-alt image when poster missing", func(t *testing.T) {
		html := `<html><body><article data-testid="tweet">
			<div data-testid="tweetText">video tweet</div>
			<video src="https://video.twimg.com/clip.mp4"></video>
			<img src="https://pbs.twimg.com/media/videoframe.jpg" alt="Embedded video" />
		</article></body></html>`
		doc := twitterDoc(t, html, "https://x.com/a/status/1")

		content, _ := e.Extract(doc)
		if content.Video.Thumbnail != "https://pbs.twimg.com/media/videoframe.jpg" {
			t.Errorf("Thumbnail = %q", content.Video.Thumbnail)
		}
	})

	t.Run("og:image as last resort", func(t *testing.T) {
		html := `<html><head><meta property="og:image" content="https://pbs.twimg.com/og.jpg" /></head>
		<body><article data-testid="tweet">
			<div data-testid="tweetText">video tweet</div>
			<video src="https://video.twimg.com/clip.mp4"></video>
		</article></body></html>`
		doc := twitterDoc(t, html, "https://x.com/a/status/1")

		content, _ := e.Extract(doc)
		if content.Video.Thumbnail != "https://pbs.twimg.com/og.jpg" {
			t.Errorf("Thumbnail = %q", content.Video.Thumbnail)
		}
	})
}

func TestTwitter_VideoThumbnailExcludedFromImages(t *testing.T) {
	e := NewTwitterExtractor()
	html := `<html><body><article data-testid="tweet">
		<div data-testid="tweetText">mixed media</div>
		<video poster="https://pbs.twimg.com/media/shared-frame.jpg"></video>
		<div data-testid="tweetPhoto"><img src="https://pbs.twimg.com/media/shared-frame.jpg" alt="Image" /></div>
		<div data-testid="tweetPhoto"><img src="https://pbs.twimg.com/media/other.jpg" alt="Image" /></div>
	</article></body></html>`
	doc := twitterDoc(t, html, "https://x.com/a/status/1")

	content, err := e.Extract(doc)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if len(content.Images) != 1 || content.Images[0] != "https://pbs.twimg.com/media/other.jpg" {
		t.Errorf("Images = %v; the video thumbnail must not double as an image", content.Images)
	}
}
