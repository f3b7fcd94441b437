package driven

import (
	"context"

	"github.com/custodia-labs/immigraid/internal/core/domain"
)

// CatalogSource loads the external form catalog.
type CatalogSource interface {
	// Load returns every record in the catalog.
	// Returns domain.ErrNotFound when the catalog does not exist.
	Load(ctx context.Context) ([]domain.FormRecord, error)
}

// PathwaySource provides the static pathway reference data.
type PathwaySource interface {
	// Pathways returns every pathway in display order.
	Pathways() ([]domain.Pathway, error)
}

// ResponseSource provides the declarative chat tables injected at the UI boundary.
type ResponseSource interface {
	// Rules returns keyword rules in match order.
	Rules() []domain.ResponseRule

	// Defaults returns the pool of fallback replies.
	Defaults() []domain.LocalizedText

	// QuestionSets returns the long-essay help sets in detection order.
	QuestionSets() []domain.QuestionSet
}
