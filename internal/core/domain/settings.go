package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// SessionBackend selects where document sessions are stored.
type SessionBackend string

// Available session backends.
const (
	// SessionBackendSQLite keeps sessions in the local state database.
	SessionBackendSQLite SessionBackend = "sqlite"

	// SessionBackendRedis shares sessions between server processes.
	SessionBackendRedis SessionBackend = "redis"
)

// IsValid returns true if the backend is recognised.
func (b SessionBackend) IsValid() bool {
	switch b {
	case SessionBackendSQLite, SessionBackendRedis:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b SessionBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b SessionBackend) Description() string {
	switch b {
	case SessionBackendSQLite:
		return "SQLite (local, single user)"
	case SessionBackendRedis:
		return "Redis (shared between server instances)"
	default:
		return unknownDescription
	}
}

// AnalysisSettings configures the document analysis service.
type AnalysisSettings struct {
	// BaseURL is the service root (default: http://localhost:8000).
	BaseURL string

	// Timeout bounds each request. Zero leaves the transport default in place.
	Timeout time.Duration

	// RequestsPerSecond throttles outbound calls. Zero disables throttling.
	RequestsPerSecond float64
}

// IsConfigured returns true if a base URL is set.
func (a AnalysisSettings) IsConfigured() bool {
	return a.BaseURL != ""
}

// CatalogSettings configures the form catalog data source.
type CatalogSettings struct {
	// Path is the JSON catalog file. Empty uses the built-in fallback forms.
	Path string
}

// SessionSettings configures document session storage.
type SessionSettings struct {
	Backend  SessionBackend
	RedisURL string
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Addr string
}

// AppSettings holds all application configuration.
type AppSettings struct {
	Analysis AnalysisSettings
	Catalog  CatalogSettings
	Sessions SessionSettings
	Server   ServerSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Analysis: AnalysisSettings{
			BaseURL: "http://localhost:8000",
		},
		Sessions: SessionSettings{
			Backend:  SessionBackendSQLite,
			RedisURL: "redis://localhost:6379/0",
		},
		Server: ServerSettings{
			Addr: ":8080",
		},
	}
}

// Validate checks the settings for values that cannot work.
func (s *AppSettings) Validate() error {
	if !s.Sessions.Backend.IsValid() {
		return fmt.Errorf("%w: session backend %q", ErrInvalidInput, s.Sessions.Backend)
	}
	if s.Sessions.Backend == SessionBackendRedis && s.Sessions.RedisURL == "" {
		return fmt.Errorf("%w: redis backend requires sessions.redis_url", ErrInvalidInput)
	}
	if s.Analysis.Timeout < 0 {
		return fmt.Errorf("%w: negative analysis timeout", ErrInvalidInput)
	}
	if s.Analysis.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: negative request rate", ErrInvalidInput)
	}
	return nil
}

// AllSessionBackends returns all valid session backends.
func AllSessionBackends() []SessionBackend {
	return []SessionBackend{SessionBackendSQLite, SessionBackendRedis}
}
