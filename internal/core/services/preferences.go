package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/immigraid/internal/core/domain"
	"github.com/custodia-labs/immigraid/internal/core/ports/driven"
	"github.com/custodia-labs/immigraid/internal/core/ports/driving"
)

// Ensure PreferencesService implements the interface.
var _ driving.PreferencesService = (*PreferencesService)(nil)

// State keys.
const (
	keyPreferredLanguage = "preferredLanguage"
	keyUserProfile       = "userProfile"
	keyCurrentSession    = "currentSession"
	formDataPrefix       = "form_"
)

// PreferencesService stores language, profile and saved form answers in the
// local key-value state.
type PreferencesService struct {
	state driven.StateStore
}

// NewPreferencesService creates a preferences service.
func NewPreferencesService(state driven.StateStore) *PreferencesService {
	return &PreferencesService{state: state}
}

// Language returns the stored language or the default.
func (s *PreferencesService) Language(ctx context.Context) (string, error) {
	code, err := s.state.Get(ctx, keyPreferredLanguage)
	if errors.Is(err, domain.ErrNotFound) || code == "" {
		return domain.DefaultLanguage, nil
	}
	if err != nil {
		return "", fmt.Errorf("read language: %w", err)
	}
	return code, nil
}

// SetLanguage stores the preferred language.
func (s *PreferencesService) SetLanguage(ctx context.Context, code string) error {
	code = strings.ToLower(strings.TrimSpace(code))
	if !domain.IsSupportedLanguage(code) {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, code)
	}
	if err := s.state.Set(ctx, keyPreferredLanguage, code); err != nil {
		return fmt.Errorf("save language: %w", err)
	}
	return nil
}

// Profile returns the stored profile, empty when none was saved.
func (s *PreferencesService) Profile(ctx context.Context) (domain.Profile, error) {
	profile := domain.Profile{}
	found, err := s.getJSON(ctx, keyUserProfile, &profile)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	if !found {
		return domain.Profile{}, nil
	}
	return profile, nil
}

// SaveProfile replaces the stored profile.
func (s *PreferencesService) SaveProfile(ctx context.Context, profile domain.Profile) error {
	if profile == nil {
		profile = domain.Profile{}
	}
	if err := s.setJSON(ctx, keyUserProfile, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// FormData returns the saved answers for a form.
func (s *PreferencesService) FormData(ctx context.Context, formID string) (domain.FormData, error) {
	data := domain.FormData{}
	found, err := s.getJSON(ctx, formDataPrefix+formID, &data)
	if err != nil {
		return nil, fmt.Errorf("read form data %s: %w", formID, err)
	}
	if !found {
		return nil, fmt.Errorf("form data %s: %w", formID, domain.ErrNotFound)
	}
	return data, nil
}

// SaveFormData replaces the saved answers for a form.
func (s *PreferencesService) SaveFormData(ctx context.Context, formID string, data domain.FormData) error {
	if formID == "" {
		return fmt.Errorf("%w: form id is required", domain.ErrInvalidInput)
	}
	if data == nil {
		data = domain.FormData{}
	}
	if err := s.setJSON(ctx, formDataPrefix+formID, data); err != nil {
		return fmt.Errorf("save form data %s: %w", formID, err)
	}
	return nil
}

// SavedForms lists form ids with saved answers, sorted.
func (s *PreferencesService) SavedForms(ctx context.Context) ([]string, error) {
	keys, err := s.state.Keys(ctx, formDataPrefix)
	if err != nil {
		return nil, fmt.Errorf("list saved forms: %w", err)
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, formDataPrefix))
	}
	sort.Strings(ids)
	return ids, nil
}

// Progress counts a saved profile as the one completed onboarding step.
func (s *PreferencesService) Progress(ctx context.Context) (domain.Progress, error) {
	_, err := s.state.Get(ctx, keyUserProfile)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.NewProgress(0), nil
	case err != nil:
		return domain.Progress{}, fmt.Errorf("read profile: %w", err)
	}
	return domain.NewProgress(1), nil
}

// CurrentSession returns the stored session id, "" when unset.
func (s *PreferencesService) CurrentSession(ctx context.Context) (string, error) {
	id, err := s.state.Get(ctx, keyCurrentSession)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read current session: %w", err)
	}
	return id, nil
}

// SetCurrentSession stores the session id. An empty id forgets it.
func (s *PreferencesService) SetCurrentSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return s.state.Delete(ctx, keyCurrentSession)
	}
	if err := s.state.Set(ctx, keyCurrentSession, sessionID); err != nil {
		return fmt.Errorf("save current session: %w", err)
	}
	return nil
}

func (s *PreferencesService) getJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, err := s.state.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *PreferencesService) setJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.state.Set(ctx, key, string(raw))
}
