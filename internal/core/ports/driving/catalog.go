package driving

import (
	"context"

	"github.com/custodia-labs/immigraid/internal/core/domain"
)

// CatalogService resolves forms and their language-specific downloads.
type CatalogService interface {
	// List returns the resolved key forms, or the built-in fallback forms
	// when the catalog is unavailable.
	List(ctx context.Context) ([]domain.ResolvedForm, error)

	// Get returns one resolved form. Returns domain.ErrNotFound if unknown.
	Get(ctx context.Context, formID string) (*domain.ResolvedForm, error)

	// Variants returns the deduplicated language variants of a form,
	// current-language entries first.
	Variants(ctx context.Context, formID, lang string) ([]domain.LanguageVariant, error)

	// PlanDownload decides what a download of formID in lang should do.
	PlanDownload(ctx context.Context, formID, lang string) (*DownloadPlan, error)

	// Reload re-reads the catalog source.
	Reload(ctx context.Context) error
}

// DownloadPlan is the outcome of download resolution.
type DownloadPlan struct {
	// FormID is the requested form.
	FormID string `json:"form_id"`

	// URL is the document to open. Empty when NeedsChoice is true.
	URL string `json:"url,omitempty"`

	// Variants are the language choices found for the form.
	Variants []domain.LanguageVariant `json:"variants"`

	// NeedsChoice is true when two or more variants exist and the user must pick.
	NeedsChoice bool `json:"needs_choice"`
}

// PathwayService exposes the immigration pathway reference data.
type PathwayService interface {
	// List returns every pathway in display order.
	List(ctx context.Context) ([]domain.Pathway, error)

	// Get returns a pathway by key. Returns domain.ErrNotFound if unknown.
	Get(ctx context.Context, key string) (*domain.Pathway, error)
}
