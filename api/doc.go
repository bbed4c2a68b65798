// Package api provides the HTTP API layer for the Revoice extraction
// service. It uses the Huma framework to provide automatic OpenAPI
// documentation, request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Endpoints
//
// The browser extension drives three operations:
//
//   - POST /extract: run platform extractors over a captured DOM snapshot
//     and de-duplicate the result against the tab's session state
//   - POST /events: report a tab or scroll event and receive a decision on
//     whether and when to capture the next snapshot
//   - POST /extracturl: fetch URLs server-side and return reader views when
//     no snapshot is available
//
// POST /forget releases a tab's session state when the tab closes.
//
// # Key Features
//
// 1. Automatic OpenAPI Generation
//
// The API automatically generates OpenAPI 3.0 documentation:
// - JSON spec available at /openapi.json
// - Interactive Swagger UI at /docs
//
// 2. Request/Response Validation
//
// Huma provides automatic validation based on struct tags:
//
//	type ExtractRequest struct {
//	    TabID string `json:"tabId" required:"true"`
//	    URL   string `json:"url" required:"true"`
//	    HTML  string `json:"html" required:"true"`
//	}
//
// 3. Middleware Support
//
// The API includes middleware for:
// - Request logging with unique request IDs
// - Rate limiting per IP address
// - CORS handling for extension origins
//
// # Usage Example
//
//	cfg := api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  100,
//	    RateWindow: time.Minute,
//	}
//	humaAPI, router := api.NewAPIWithMiddleware(cfg)
//
//	extractHandler := handlers.NewExtractHandler(dispatcher, sessions, worker, flags, logger)
//	extractHandler.RegisterRoutes(humaAPI)
//
//	http.ListenAndServe(":8080", router)
//
// # Error Handling
//
// The API uses a consistent error format based on RFC 7807:
//
//	{
//	    "status": 400,
//	    "title": "Bad Request",
//	    "detail": "page URL must be absolute",
//	    "instance": "/extract"
//	}
//
// Extraction misses are not HTTP failures: POST /extract returns 200 with
// success=false and the failure message in the envelope, matching what the
// side panel renders.
package api
