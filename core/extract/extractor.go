// ABOUTME: Extractor contract and shared selector helpers
// ABOUTME: Platform extractors map a page snapshot to normalized content or nil

package extract

import (
	"net/url"
	"strings"

	"revoice-app-api/core/dom"
	"revoice-app-api/core/domain"
)

const excerptMaxLen = 150

// Extractor converts a page snapshot into normalized content. Extract returns
// (nil, nil) when the page does not match the platform; the dispatcher then
// moves on to the next extractor.
type Extractor interface {
	// Name is the canonical platform label used as SiteName
	Name() string

	// Matches reports whether the snapshot's hostname belongs to the platform
	Matches(doc *dom.Document) bool

	// Extract reads the snapshot and returns normalized content, or nil when
	// the expected markup is absent.
	Extract(doc *dom.Document) (*domain.ExtractedContent, error)
}

// hostMatches reports whether hostname is domain or a subdomain of it
func hostMatches(hostname, domainName string) bool {
	return hostname == domainName || strings.HasSuffix(hostname, "."+domainName)
}

// firstText walks the selector chain and returns the first non-empty text
func firstText(doc *dom.Document, selectors ...string) string {
	for _, sel := range selectors {
		if el := doc.First(sel); el != nil {
			if text := el.Text(); text != "" {
				return text
			}
		}
	}
	return ""
}

// firstTextIn is firstText scoped to a container element
func firstTextIn(root *dom.Element, selectors ...string) string {
	for _, sel := range selectors {
		if el := root.First(sel); el != nil {
			if text := el.Text(); text != "" {
				return text
			}
		}
	}
	return ""
}

// excerpt shortens text to the excerpt cap, appending an ellipsis on truncation
func excerpt(text string) string {
	return snippet(text, excerptMaxLen)
}

// snippet returns a short prefix of text for synthesized titles and excerpts,
// cutting on a rune boundary so multi-byte characters stay intact.
func snippet(text string, max int) string {
	text = strings.TrimSpace(text)
	if len(text) <= max {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

// absoluteURL resolves href against the snapshot's page URL. Already-absolute
// URLs pass through unchanged; unparseable ones return "".
func absoluteURL(doc *dom.Document, href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return doc.URL().ResolveReference(ref).String()
}

// appendUnique appends value to list unless it is empty or already present
func appendUnique(list []string, value string) []string {
	if value == "" {
		return list
	}
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
