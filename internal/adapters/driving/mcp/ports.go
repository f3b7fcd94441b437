package mcp

import (
	"github.com/custodia-labs/immigraid/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Catalog resolves forms and downloads.
	Catalog driving.CatalogService

	// Pathways exposes the immigration pathways.
	Pathways driving.PathwayService

	// Assistant uploads and questions documents.
	Assistant driving.AssistantService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	// Pathways and Assistant are optional; their tools report unavailability.
	return nil
}
