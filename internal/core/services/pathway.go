package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/immigraid/internal/core/domain"
	"github.com/custodia-labs/immigraid/internal/core/ports/driven"
	"github.com/custodia-labs/immigraid/internal/core/ports/driving"
)

// Ensure PathwayService implements the interface.
var _ driving.PathwayService = (*PathwayService)(nil)

// PathwayService serves immigration pathway reference data.
type PathwayService struct {
	source driven.PathwaySource
}

// NewPathwayService creates a pathway service.
func NewPathwayService(source driven.PathwaySource) *PathwayService {
	return &PathwayService{source: source}
}

// List returns every pathway.
func (s *PathwayService) List(_ context.Context) ([]domain.Pathway, error) {
	pathways, err := s.source.Pathways()
	if err != nil {
		return nil, fmt.Errorf("load pathways: %w", err)
	}
	return pathways, nil
}

// Get returns the pathway with the given key.
func (s *PathwayService) Get(ctx context.Context, key string) (*domain.Pathway, error) {
	pathways, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pathways {
		if pathways[i].Key == key {
			return &pathways[i], nil
		}
	}
	return nil, fmt.Errorf("pathway %s: %w", key, domain.ErrNotFound)
}
