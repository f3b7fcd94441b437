// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - StateStore: Local key-value state (language, profile, saved form data)
//   - SessionStore: Document session persistence
//   - ConfigStore: Application configuration
//   - PathwaySource: Static pathway reference data
//   - ResponseSource: Canned chat responses and simplified questions
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - CatalogSource: Form catalog. Without it, the built-in fallback forms are used.
//   - AnalysisService: Remote document analysis. Without it, upload/analyze/ask are disabled.
//   - PDFInspector: Local PDF pre-flight. Without it, files are sent unchecked.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
