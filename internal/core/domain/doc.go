// Package domain defines the core business entities for Immigraid.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FormRecord: An external, read-only description of a government form
//   - ResolvedForm: The UI-ready form derived from a record and lookup tables
//   - LanguageVariant: A document link tagged with a detected language
//   - DocumentSession: The handle returned by a successful upload
//   - Pathway: An immigration pathway and the forms it requires
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
