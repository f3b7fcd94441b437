package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/immigraid/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for immigraid resources.
	uriScheme = "immigraid://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "forms",
		Name:        "forms",
		Description: "The key USCIS forms with category, priority and stage",
		MIMEType:    "application/json",
	}, s.handleFormsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "forms/{formId}",
		Name:        "form",
		Description: "One resolved form with all its PDF links",
		MIMEType:    "application/json",
	}, s.handleFormResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "pathways/{key}",
		Name:        "pathway",
		Description: "An immigration pathway with eligibility, risks and required forms",
		MIMEType:    "application/json",
	}, s.handlePathwayResource)
}

// handleFormsResource returns every key form.
func (s *Server) handleFormsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	forms, err := s.ports.Catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing forms: %w", err)
	}
	return jsonResource(req.Params.URI, forms)
}

// handleFormResource returns a single form.
func (s *Server) handleFormResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	formID := extractFormID(req.Params.URI)
	if formID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	form, err := s.ports.Catalog.Get(ctx, formID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting form: %w", err)
	}
	return jsonResource(req.Params.URI, form)
}

// handlePathwayResource returns a single pathway.
func (s *Server) handlePathwayResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Pathways == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	key := extractPathwayKey(req.Params.URI)
	if key == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	pathway, err := s.ports.Pathways.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting pathway: %w", err)
	}

	type pathwayInfo struct {
		*domain.Pathway
		Availability domain.PathwayAvailability `json:"availability"`
	}
	return jsonResource(req.Params.URI, pathwayInfo{Pathway: pathway, Availability: pathway.Availability()})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractFormID extracts the form ID from a URI like immigraid://forms/{formId}.
func extractFormID(uri string) string {
	return strings.ToLower(extractSegment(uri, uriScheme+"forms/"))
}

// extractPathwayKey extracts the key from a URI like immigraid://pathways/{key}.
func extractPathwayKey(uri string) string {
	return extractSegment(uri, uriScheme+"pathways/")
}

func extractSegment(uri, prefix string) string {
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	rest := strings.TrimPrefix(uri, prefix)
	if strings.Contains(rest, "/") {
		return ""
	}
	return rest
}
