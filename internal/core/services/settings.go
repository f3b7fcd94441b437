package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/immigraid/internal/core/domain"
	"github.com/custodia-labs/immigraid/internal/core/ports/driven"
	"github.com/custodia-labs/immigraid/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAnalysisBaseURL = "analysis.base_url"
	keyAnalysisTimeout = "analysis.timeout_seconds"
	keyAnalysisRate    = "analysis.requests_per_second"
	keyCatalogPath     = "catalog.path"
	keySessionBackend  = "sessions.backend"
	keySessionRedisURL = "sessions.redis_url"
	keyServerAddr      = "server.addr"
)

var settingKeys = []string{
	keyAnalysisBaseURL,
	keyAnalysisTimeout,
	keyAnalysisRate,
	keyCatalogPath,
	keySessionBackend,
	keySessionRedisURL,
	keyServerAddr,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Analysis: domain.AnalysisSettings{
			BaseURL:           s.getString(keyAnalysisBaseURL, defaults.Analysis.BaseURL),
			Timeout:           time.Duration(s.configStore.GetInt(keyAnalysisTimeout)) * time.Second,
			RequestsPerSecond: s.getFloat(keyAnalysisRate, defaults.Analysis.RequestsPerSecond),
		},
		Catalog: domain.CatalogSettings{
			Path: s.configStore.GetString(keyCatalogPath), // Empty is valid: fallback forms
		},
		Sessions: domain.SessionSettings{
			Backend:  s.getSessionBackend(defaults.Sessions.Backend),
			RedisURL: s.getString(keySessionRedisURL, defaults.Sessions.RedisURL),
		},
		Server: domain.ServerSettings{
			Addr: s.getString(keyServerAddr, defaults.Server.Addr),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyAnalysisBaseURL, settings.Analysis.BaseURL},
		{keyAnalysisTimeout, int64(settings.Analysis.Timeout / time.Second)},
		{keyAnalysisRate, settings.Analysis.RequestsPerSecond},
		{keyCatalogPath, settings.Catalog.Path},
		{keySessionBackend, settings.Sessions.Backend.String()},
		{keySessionRedisURL, settings.Sessions.RedisURL},
		{keyServerAddr, settings.Server.Addr},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value for key and saves the result.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keyAnalysisBaseURL:
		settings.Analysis.BaseURL = value
	case keyAnalysisTimeout:
		secs, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be a whole number of seconds", domain.ErrInvalidInput, key)
		}
		settings.Analysis.Timeout = time.Duration(secs) * time.Second
	case keyAnalysisRate:
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.Analysis.RequestsPerSecond = rate
	case keyCatalogPath:
		settings.Catalog.Path = value
	case keySessionBackend:
		settings.Sessions.Backend = domain.SessionBackend(value)
	case keySessionRedisURL:
		settings.Sessions.RedisURL = value
	case keyServerAddr:
		settings.Server.Addr = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys returns every settable config key.
func (s *SettingsService) Keys() []string {
	out := make([]string, len(settingKeys))
	copy(out, settingKeys)
	return out
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getFloat accepts TOML floats and integers.
func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return defaultVal
	}
}

func (s *SettingsService) getSessionBackend(defaultVal domain.SessionBackend) domain.SessionBackend {
	val := s.configStore.GetString(keySessionBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.SessionBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
