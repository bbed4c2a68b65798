// Package core contains the business logic for the Revoice extraction API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (ExtractedContent, Trigger, ReaderView)
// - dom: Snapshot document abstraction consumed by the extractors
// - extract: Platform extractors, viewport selection and the dispatcher
// - session: Per-tab change-detection state machine
// - reader: Server-side URL extraction for manual rescans
// - services: Metadata and enrichment services
// - workers: Background enrichment worker pool
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
package core
