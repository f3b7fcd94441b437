package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/immigraid/internal/adapters/driving/mcp"
	"github.com/custodia-labs/immigraid/internal/core/ports/driving"
)

// MCPConfig holds configuration for the MCP server command.
type MCPConfig struct {
	// Assistant serves the document tools. MCP clients pass session ids
	// explicitly, so this is usually backed by an in-memory store.
	Assistant driving.AssistantService
}

// mcpConfig holds the current MCP configuration.
var mcpConfig *MCPConfig

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with any MCP-compatible assistant.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default)
  immigraid mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  immigraid mcp serve --port 8090

Assistant configuration:
  {
    "mcpServers": {
      "immigraid": {
        "command": "/path/to/immigraid",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

// SetMCPConfig sets the configuration for the MCP command.
func SetMCPConfig(config *MCPConfig) {
	mcpConfig = config
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Catalog:   catalogService,
		Pathways:  pathwayService,
		Assistant: assistantService,
	}
	if mcpConfig != nil && mcpConfig.Assistant != nil {
		ports.Assistant = mcpConfig.Assistant
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
