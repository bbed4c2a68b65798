// ABOUTME: Snapshot document abstraction over goquery for extractor queries
// ABOUTME: Exposes selector lookup, meta tags and capture-time layout rects

package dom

import (
	"bytes"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Layout attributes stamped on candidate containers by the capture script.
// Values are CSS pixels relative to the viewport at capture time.
const (
	attrRectTop    = "data-capture-top"
	attrRectBottom = "data-capture-bottom"
	attrWidth      = "data-capture-width"
	attrHeight     = "data-capture-height"
)

// Rect is an element's vertical bounding geometry relative to the viewport
type Rect struct {
	Top    float64
	Bottom float64
}

// Center returns the vertical midpoint of the rect
func (r Rect) Center() float64 {
	return (r.Top + r.Bottom) / 2
}

// Document wraps a parsed page snapshot together with the page URL and the
// viewport height recorded at capture time.
type Document struct {
	doc            *goquery.Document
	raw            string
	url            *url.URL
	viewportHeight float64
}

// NewDocument parses a snapshot's HTML. pageURL must be absolute; it anchors
// relative links and hostname matching.
func NewDocument(rawHTML, pageURL string, viewportHeight float64) (*Document, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, errors.New("snapshot HTML cannot be empty")
	}

	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, errors.New("invalid page URL")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}

	return &Document{
		doc:            doc,
		raw:            rawHTML,
		url:            parsed,
		viewportHeight: viewportHeight,
	}, nil
}

// RawHTML returns the snapshot exactly as captured. The readability fallback
// runs over this copy so extractor-side mutations never leak into it.
func (d *Document) RawHTML() string {
	return d.raw
}

// URL returns the page URL the snapshot was captured from
func (d *Document) URL() *url.URL {
	return d.url
}

// Hostname returns the snapshot URL's hostname
func (d *Document) Hostname() string {
	return d.url.Hostname()
}

// ViewportHeight returns the viewport height recorded at capture time
func (d *Document) ViewportHeight() float64 {
	return d.viewportHeight
}

// Find returns all elements matching the selector in document order
func (d *Document) Find(selector string) []*Element {
	return wrapSelection(d.doc.Find(selector))
}

// First returns the first element matching the selector, or nil
func (d *Document) First(selector string) *Element {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	return &Element{sel: sel}
}

// Meta returns the content of the first non-empty meta tag among the given
// keys, checking property= before name= for each key.
func (d *Document) Meta(keys ...string) string {
	for _, key := range keys {
		for _, attr := range []string{"property", "name"} {
			sel := d.doc.Find("meta[" + attr + "='" + key + "']").First()
			if content, ok := sel.Attr("content"); ok {
				if trimmed := strings.TrimSpace(content); trimmed != "" {
					return trimmed
				}
			}
		}
	}
	return ""
}

// Title returns the document title
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// Element wraps a single matched node
type Element struct {
	sel *goquery.Selection
}

// Text returns the element's trimmed text content
func (e *Element) Text() string {
	return strings.TrimSpace(e.sel.Text())
}

// Attr returns the named attribute, or "" when absent
func (e *Element) Attr(name string) string {
	val, _ := e.sel.Attr(name)
	return strings.TrimSpace(val)
}

// Find returns descendant elements matching the selector
func (e *Element) Find(selector string) []*Element {
	return wrapSelection(e.sel.Find(selector))
}

// First returns the first descendant matching the selector, or nil
func (e *Element) First(selector string) *Element {
	sel := e.sel.Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	return &Element{sel: sel}
}

// Closest returns the nearest ancestor (or self) matching the selector, or nil
func (e *Element) Closest(selector string) *Element {
	sel := e.sel.Closest(selector)
	if sel.Length() == 0 {
		return nil
	}
	return &Element{sel: sel}
}

// HasAncestor reports whether any strict ancestor matches the selector
func (e *Element) HasAncestor(selector string) bool {
	return e.sel.ParentsFiltered(selector).Length() > 0
}

// Is reports whether the element itself matches the selector
func (e *Element) Is(selector string) bool {
	return e.sel.Is(selector)
}

// Remove detaches the element from the document. Used by the prepare phase to
// strip truncation chrome before reading text; removing an already-detached
// element is a no-op, keeping prepare idempotent.
func (e *Element) Remove() {
	e.sel.Remove()
}

// Rect returns the capture-time bounding geometry. ok is false when the
// capture script did not stamp layout attributes on this element.
func (e *Element) Rect() (Rect, bool) {
	top, err1 := strconv.ParseFloat(e.Attr(attrRectTop), 64)
	bottom, err2 := strconv.ParseFloat(e.Attr(attrRectBottom), 64)
	if err1 != nil || err2 != nil {
		return Rect{}, false
	}
	return Rect{Top: top, Bottom: bottom}, true
}

// Dimensions returns the capture-time width and height. ok is false when the
// capture script did not record them.
func (e *Element) Dimensions() (width, height float64, ok bool) {
	w, err1 := strconv.ParseFloat(e.Attr(attrWidth), 64)
	h, err2 := strconv.ParseFloat(e.Attr(attrHeight), 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return w, h, true
}

// OuterHTML renders the element back to HTML
func (e *Element) OuterHTML() string {
	var buf bytes.Buffer
	for _, node := range e.sel.Nodes {
		if err := html.Render(&buf, node); err != nil {
			return ""
		}
	}
	return buf.String()
}

func wrapSelection(sel *goquery.Selection) []*Element {
	elements := make([]*Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, &Element{sel: s})
	})
	return elements
}
