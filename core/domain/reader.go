// ABOUTME: Domain model for URL-mode reader view extraction
// ABOUTME: Used when the side panel requests a rescan by URL with no snapshot

package domain

// ReaderView represents article content extracted server-side from a URL
type ReaderView struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Content     string `json:"content"`     // HTML content
	Markdown    string `json:"markdown"`    // Markdown content
	TextContent string `json:"textContent"` // Plain text content
	Excerpt     string `json:"excerpt"`
	SiteName    string `json:"siteName"`
	Image       string `json:"image"`
	Favicon     string `json:"favicon"`
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
}
