// ABOUTME: Typed errors for the extraction core
// ABOUTME: Separates "nothing found" from real extraction failures

package errors

import (
	"errors"
	"fmt"
)

// ErrNoContent signals that no extractor, including the readability fallback,
// produced content. The message doubles as the wire sentinel the side panel
// recognizes as "nothing found, don't alarm the user"; it must not change.
var ErrNoContent = errors.New("Failed to parse content.")

// ExtractionError wraps an unexpected failure inside an extractor's run.
// Unlike ErrNoContent it is surfaced to the user as a recoverable error.
type ExtractionError struct {
	Platform string
	Message  string
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	if e.Platform != "" {
		return fmt.Sprintf("extraction failed on %s: %s", e.Platform, e.Message)
	}
	return fmt.Sprintf("extraction failed: %s", e.Message)
}

// ValidationError represents a request validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError represents an error from an upstream fetch
type ExternalAPIError struct {
	StatusCode int
	Message    string
	URL        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("upstream error from %s: %d - %s", e.URL, e.StatusCode, e.Message)
}

// IsNoContent checks whether an error is the no-content sentinel
func IsNoContent(err error) bool {
	return errors.Is(err, ErrNoContent)
}

// IsExtraction checks if an error is an ExtractionError
func IsExtraction(err error) bool {
	var extractionErr *ExtractionError
	return errors.As(err, &extractionErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
