// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The form resolver functions in resolver.go are pure and may be called
// without constructing a service.
package services
