package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/immigraid/internal/core/domain"
	"github.com/custodia-labs/immigraid/internal/core/ports/driven"
	"github.com/custodia-labs/immigraid/internal/core/ports/driving"
	"github.com/custodia-labs/immigraid/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService resolves catalog records into forms and download targets.
// Records are loaded on first use and kept until Reload. When the source
// is missing or fails, the built-in fallback forms are served instead.
type CatalogService struct {
	source driven.CatalogSource
	tables LookupTables

	mu       sync.RWMutex
	loaded   bool
	records  []domain.FormRecord
	fallback bool
}

// NewCatalogService creates a catalog service. source may be nil, in which
// case only the fallback forms are available.
func NewCatalogService(source driven.CatalogSource, tables LookupTables) *CatalogService {
	return &CatalogService{
		source: source,
		tables: tables,
	}
}

// List returns the key forms found in the catalog, in catalog order.
func (s *CatalogService) List(ctx context.Context) ([]domain.ResolvedForm, error) {
	records, fallback := s.snapshot(ctx)
	if fallback {
		return FallbackForms(), nil
	}

	forms := make([]domain.ResolvedForm, 0, len(keyForms))
	for _, r := range records {
		if id := r.ID(); id != domain.UnknownFormID && isKeyForm(id) {
			forms = append(forms, DeriveResolvedForm(r, s.tables))
		}
	}
	return forms, nil
}

// Get returns the first catalog form with the given id. Forms outside the
// key set are resolved too, so any catalog form can be downloaded.
func (s *CatalogService) Get(ctx context.Context, formID string) (*domain.ResolvedForm, error) {
	records, fallback := s.snapshot(ctx)
	if fallback {
		for _, f := range FallbackForms() {
			if f.ID == formID {
				return &f, nil
			}
		}
		return nil, fmt.Errorf("form %s: %w", formID, domain.ErrNotFound)
	}

	for _, r := range records {
		if r.ID() == formID {
			form := DeriveResolvedForm(r, s.tables)
			return &form, nil
		}
	}
	return nil, fmt.Errorf("form %s: %w", formID, domain.ErrNotFound)
}

// Variants returns the language variants of a form's documents.
func (s *CatalogService) Variants(ctx context.Context, formID, lang string) ([]domain.LanguageVariant, error) {
	form, err := s.Get(ctx, formID)
	if err != nil {
		return nil, err
	}
	return ResolveLanguageVariants(form.AllPDFs, lang), nil
}

// PlanDownload resolves what a download should open. The plan signals
// NeedsChoice when the user has to pick among several variants. Forms with
// no links return domain.ErrNoDocumentAvailable.
func (s *CatalogService) PlanDownload(ctx context.Context, formID, lang string) (*driving.DownloadPlan, error) {
	form, err := s.Get(ctx, formID)
	if err != nil {
		return nil, err
	}

	variants := ResolveLanguageVariants(form.AllPDFs, lang)
	plan := &driving.DownloadPlan{
		FormID:   formID,
		Variants: variants,
	}

	url, err := SelectDownloadTarget(variants, form.AllPDFs, formID)
	switch {
	case errors.Is(err, domain.ErrChoiceRequired):
		plan.NeedsChoice = true
		return plan, nil
	case err != nil:
		return nil, fmt.Errorf("form %s: %w", formID, err)
	}

	plan.URL = url
	logger.Debug("download plan for %s: %s (%d variants)", formID, url, len(variants))
	return plan, nil
}

// Reload re-reads the catalog source. A failing source switches the
// service to the fallback forms and returns the error.
func (s *CatalogService) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// snapshot returns the cached records, loading them on first use.
func (s *CatalogService) snapshot(ctx context.Context) ([]domain.FormRecord, bool) {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		return s.records, s.fallback
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		_ = s.load(ctx)
	}
	return s.records, s.fallback
}

// load reads the source (caller must hold the write lock).
func (s *CatalogService) load(ctx context.Context) error {
	s.loaded = true

	if s.source == nil {
		s.records, s.fallback = nil, true
		return nil
	}

	records, err := s.source.Load(ctx)
	if err != nil {
		logger.Warn("form catalog unavailable, using fallback forms: %v", err)
		s.records, s.fallback = nil, true
		return fmt.Errorf("load catalog: %w", err)
	}

	logger.Info("loaded %d catalog forms", len(records))
	s.records, s.fallback = records, false
	return nil
}
