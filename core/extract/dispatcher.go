// ABOUTME: Extraction dispatcher running platform extractors in priority order
// ABOUTME: First non-nil result wins; fallback runs last; panics become typed failures

package extract

import (
	"fmt"

	"revoice-app-api/core/dom"
	"revoice-app-api/core/domain"
	coreerrors "revoice-app-api/core/errors"
	"revoice-app-api/core/interfaces"
)

// Dispatcher tries platform extractors in fixed priority order and falls back
// to the generic readability extractor. Exactly one extractor's result is
// surfaced per attempt.
type Dispatcher struct {
	extractors []Extractor
	fallback   Extractor
	logger     interfaces.Logger
}

// NewDispatcher creates a dispatcher with the standard priority order:
// YouTube, X/Twitter, LinkedIn, Facebook, then the readability fallback.
func NewDispatcher(logger interfaces.Logger) *Dispatcher {
	return &Dispatcher{
		extractors: []Extractor{
			NewYouTubeExtractor(),
			NewTwitterExtractor(),
			NewLinkedInExtractor(),
			NewFacebookExtractor(),
		},
		fallback: NewFallbackExtractor(),
		logger:   logger,
	}
}

// Extract returns the first extractor's non-nil result. When every extractor
// including the fallback finds nothing, the no-content sentinel is returned;
// a thrown failure inside an extractor becomes an ExtractionError instead.
func (d *Dispatcher) Extract(doc *dom.Document) (*domain.ExtractedContent, error) {
	for _, extractor := range d.extractors {
		if !extractor.Matches(doc) {
			continue
		}

		content, err := d.run(extractor, doc)
		if err != nil {
			return nil, err
		}
		if content != nil {
			d.logExtracted(extractor.Name(), content)
			return content, nil
		}
		// A matching platform with no extractable post still falls through to
		// the generic extractor; the host alone is not proof of content.
	}

	content, err := d.run(d.fallback, doc)
	if err != nil {
		return nil, err
	}
	if content != nil {
		d.logExtracted(content.SiteName, content)
		return content, nil
	}

	return nil, coreerrors.ErrNoContent
}

// run executes one extractor with panic containment. DOM shapes shift under
// us constantly; a selector crash must degrade to a reported failure, never
// escape across the message boundary.
func (d *Dispatcher) run(extractor Extractor, doc *dom.Document) (content *domain.ExtractedContent, err error) {
	defer func() {
		if r := recover(); r != nil {
			if d.logger != nil {
				d.logger.Error("Extractor panicked", map[string]interface{}{
					"platform": extractor.Name(),
					"panic":    fmt.Sprint(r),
				})
			}
			content = nil
			err = &coreerrors.ExtractionError{
				Platform: extractor.Name(),
				Message:  fmt.Sprint(r),
			}
		}
	}()

	content, runErr := extractor.Extract(doc)
	if runErr != nil {
		return nil, &coreerrors.ExtractionError{
			Platform: extractor.Name(),
			Message:  runErr.Error(),
		}
	}
	return content, nil
}

func (d *Dispatcher) logExtracted(platform string, content *domain.ExtractedContent) {
	if d.logger == nil {
		return
	}
	d.logger.Debug("Extraction produced content", map[string]interface{}{
		"platform":  platform,
		"url":       content.URL,
		"hasVideo":  content.HasVideo,
		"images":    len(content.Images),
		"textChars": len(content.TextContent),
	})
}
