package driving

import (
	"context"

	"github.com/custodia-labs/immigraid/internal/core/domain"
)

// PreferencesService manages the user's locally stored state.
type PreferencesService interface {
	// Language returns the preferred language, or the default when unset.
	Language(ctx context.Context) (string, error)

	// SetLanguage stores the preferred language.
	// Returns domain.ErrUnsupportedLanguage for unknown codes.
	SetLanguage(ctx context.Context, code string) error

	// Profile returns the stored profile. An unset profile is empty, not an error.
	Profile(ctx context.Context) (domain.Profile, error)

	// SaveProfile replaces the stored profile.
	SaveProfile(ctx context.Context, profile domain.Profile) error

	// FormData returns saved answers for a form. Returns domain.ErrNotFound if none.
	FormData(ctx context.Context, formID string) (domain.FormData, error)

	// SaveFormData replaces the saved answers for a form.
	SaveFormData(ctx context.Context, formID string, data domain.FormData) error

	// SavedForms lists the ids of forms with saved answers.
	SavedForms(ctx context.Context) ([]string, error)

	// Progress summarises onboarding completion.
	Progress(ctx context.Context) (domain.Progress, error)

	// CurrentSession returns the document session the CLI reuses across
	// invocations, or "" when none was started.
	CurrentSession(ctx context.Context) (string, error)

	// SetCurrentSession records the CLI's document session.
	SetCurrentSession(ctx context.Context, sessionID string) error
}
