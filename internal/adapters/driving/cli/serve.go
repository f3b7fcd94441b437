package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/immigraid/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/immigraid/internal/core/ports/driving"
	"github.com/custodia-labs/immigraid/internal/logger"
)

// CatalogWatcher reports changes to the catalog source.
type CatalogWatcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// ServeConfig holds configuration for the serve command.
type ServeConfig struct {
	// OpenSessions returns the assistant and chat services backed by the
	// server's session store. When nil the CLI services are used.
	OpenSessions func(ctx context.Context) (driving.AssistantService, driving.ChatService, io.Closer, error)

	// Watcher triggers a catalog reload on change. Optional.
	Watcher CatalogWatcher

	// Addr is the default listen address.
	Addr string
}

// serveConfig holds the current serve configuration.
var serveConfig *ServeConfig

// runAPI serves the HTTP API, replaced in tests.
var runAPI = func(ctx context.Context, api *httpapi.API, addr string) error {
	return api.Run(ctx, addr)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the JSON API used by the browser UI.

Each browser tab creates its own document session with POST /sessions.
When sessions.backend is redis, sessions are shared between server instances.
A catalog file set with catalog.path is reloaded when it changes.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// SetServeConfig sets the configuration for the serve command.
func SetServeConfig(config *ServeConfig) {
	serveConfig = config
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (defaults to server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	ctx := cmd.Context()
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("getting addr flag: %w", err)
	}
	if addr == "" && serveConfig != nil {
		addr = serveConfig.Addr
	}
	if addr == "" {
		addr = ":8080"
	}

	assistant, chat := assistantService, chatService
	if serveConfig != nil && serveConfig.OpenSessions != nil {
		var closer io.Closer
		assistant, chat, closer, err = serveConfig.OpenSessions(ctx)
		if err != nil {
			return fmt.Errorf("failed to open session store: %w", err)
		}
		defer closer.Close()
	}

	api, err := httpapi.NewAPI(&httpapi.Ports{
		Catalog:   catalogService,
		Pathways:  pathwayService,
		Assistant: assistant,
		Chat:      chat,
	})
	if err != nil {
		return fmt.Errorf("failed to create API: %w", err)
	}

	if serveConfig != nil && serveConfig.Watcher != nil {
		changes, err := serveConfig.Watcher.Watch(ctx)
		if err != nil {
			logger.Warn("catalog watch disabled: %v", err)
		} else {
			go reloadOnChange(ctx, catalogService, changes)
		}
	}

	cmd.Printf("immigraid API listening on %s\n", addr)
	return runAPI(ctx, api, addr)
}

// reloadOnChange reloads the catalog for every change until changes closes.
func reloadOnChange(ctx context.Context, catalog driving.CatalogService, changes <-chan struct{}) {
	for range changes {
		if err := catalog.Reload(ctx); err != nil {
			logger.Warn("catalog reload failed, serving fallback forms: %v", err)
			continue
		}
		logger.Info("catalog reloaded")
	}
}
