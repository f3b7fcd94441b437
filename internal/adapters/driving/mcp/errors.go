// Package mcp provides an MCP (Model Context Protocol) server adapter for immigraid.
// It lets AI assistants look up USCIS forms and question uploaded documents.
package mcp

import "errors"

// ErrMissingCatalogService is returned when the catalog service is not provided.
var ErrMissingCatalogService = errors.New("mcp: catalog service is required")
