// Package services implements the business logic layer between the HTTP
// handlers (and CLI commands) and the analysis pipeline.
//
// # Architecture
//
// Services follow these architectural principles:
//
//	1. Context propagation for cancellation and tracing
//	2. Dependency injection for loose coupling
//	3. Domain-focused methods that encapsulate business rules
//
// # Service Layer Responsibilities
//
// The service layer is responsible for:
//
//	- Resolving period files from dates and loading them
//	- Running the comparison pipeline
//	- Writing CSV and Excel reports
//	- Recording run history
//	- Error handling and transformation
//
// # Services
//
// AnalysisService: orchestrates comparison runs and metric range queries.
//
// HealthService: reports service health including the run store.
package services
