// Package http implements HTTP request handlers for the comparison
// service. It provides a thin layer between HTTP transport and business
// logic, keeping handlers focused solely on HTTP concerns.
//
// # Architecture Principles
//
// Handlers in this package follow these principles:
//
//	1. Thin handlers - minimal logic, delegate to services
//	2. HTTP-only concerns - request parsing, response formatting
//	3. Error transformation - convert service errors to HTTP responses
//	4. No business logic - all logic belongs in the service layer
//
// # Request Flow
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → Service → Pipeline
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// # Endpoints
//
//	POST /api/analysis        run a comparison
//	GET  /api/analysis        list recent runs
//	GET  /api/analysis/{id}   fetch one run
//	POST /api/analysis/range  summarize a metric's value range
//	GET  /api/health          service health
package http
