package extract

import (
	"errors"
	"strings"
	"testing"

	"revoice-app-api/core/dom"
	"revoice-app-api/core/domain"
	coreerrors "revoice-app-api/core/errors"
)

type recordingLogger struct {
	errorCalls int
	debugCalls int
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) { l.debugCalls++ }
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  {}
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  {}
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) { l.errorCalls++ }

func dispatcherDoc(t *testing.T, html, pageURL string) *dom.Document {
	t.Helper()
	doc, err := dom.NewDocument(html, pageURL, 800)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	return doc
}

func TestDispatcher_PlatformBeatsFallback(t *testing.T) {
	// A YouTube watch page that also reads like a generic article: the
	// platform extractor must win, never the readability fallback.
	html := `<html><head>
		<title>Talk Recording - YouTube</title>
		<meta property="og:title" content="Talk Recording" />
		<meta property="og:description" content="A recorded conference talk." />
	</head><body>
	<article><h1>Talk Recording</h1><p>` + articleBody + `</p></article>
	</body></html>`
	doc := dispatcherDoc(t, html, "https://www.youtube.com/watch?v=talk")

	d := NewDispatcher(&recordingLogger{})
	content, err := d.Extract(doc)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if content.SiteName != "YouTube" {
		t.Errorf("SiteName = %q, want the platform extractor's result", content.SiteName)
	}
	if !content.HasVideo {
		t.Error("YouTube result must report hasVideo")
	}
}

func TestDispatcher_FallbackWhenNoPlatformMatches(t *testing.T) {
	doc := dispatcherDoc(t, articleHTML(""), "https://blog.example.com/post")

	d := NewDispatcher(&recordingLogger{})
	content, err := d.Extract(doc)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if content.SiteName != "Engineering Notes" {
		t.Errorf("SiteName = %q, want the readability-derived site name", content.SiteName)
	}
}

func TestDispatcher_NoContentSentinel(t *testing.T) {
	doc := dispatcherDoc(t, "<html><head></head><body></body></html>", "https://blank.example.com/")

	d := NewDispatcher(&recordingLogger{})
	content, err := d.Extract(doc)

	if content != nil {
		t.Errorf("content = %+v, want nil", content)
	}
	if !coreerrors.IsNoContent(err) {
		t.Errorf("err = %v, want the no-content sentinel", err)
	}
	if err.Error() != "Failed to parse content." {
		t.Errorf("sentinel text = %q", err.Error())
	}
}

func TestDispatcher_PlatformNilFallsThroughToFallback(t *testing.T) {
	// An X timeline with no tweet article but with article-like page content:
	// the platform extractor declines and the fallback runs.
	html := articleHTML("")
	doc := dispatcherDoc(t, html, "https://x.com/home")

	d := NewDispatcher(&recordingLogger{})
	content, err := d.Extract(doc)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if content == nil {
		t.Fatal("fallback should have produced content")
	}
	if content.SiteName == "X (Twitter)" {
		t.Error("platform extractor should have declined this page")
	}
}

type panickingExtractor struct{}

func (p *panickingExtractor) Name() string                  { return "Panicky" }
func (p *panickingExtractor) Matches(*dom.Document) bool    { return true }
func (p *panickingExtractor) Extract(*dom.Document) (*domain.ExtractedContent, error) {
	panic("selector blew up")
}

func TestDispatcher_PanicBecomesExtractionError(t *testing.T) {
	logger := &recordingLogger{}
	d := &Dispatcher{
		extractors: []Extractor{&panickingExtractor{}},
		fallback:   NewFallbackExtractor(),
		logger:     logger,
	}

	doc := dispatcherDoc(t, articleHTML(""), "https://blog.example.com/post")
	content, err := d.Extract(doc)

	if content != nil {
		t.Error("a panicking extractor must not surface content")
	}
	var extractionErr *coreerrors.ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("err = %v, want an ExtractionError", err)
	}
	if !strings.Contains(extractionErr.Message, "selector blew up") {
		t.Errorf("Message = %q, want the panic payload", extractionErr.Message)
	}
	if logger.errorCalls == 0 {
		t.Error("panic should be logged")
	}
}

func TestDispatcher_IdempotentReExtraction(t *testing.T) {
	d := NewDispatcher(&recordingLogger{})

	first, err := d.Extract(dispatcherDoc(t, tweetHTML, "https://x.com/janedev/status/1234567890"))
	if err != nil {
		t.Fatalf("first Extract: %v", err)
	}
	second, err := d.Extract(dispatcherDoc(t, tweetHTML, "https://x.com/janedev/status/1234567890"))
	if err != nil {
		t.Fatalf("second Extract: %v", err)
	}

	if first.Fingerprint() != second.Fingerprint() {
		t.Errorf("fingerprints diverged: %q vs %q", first.Fingerprint(), second.Fingerprint())
	}
	if first == second {
		t.Error("each pass must produce a fresh value")
	}
}
