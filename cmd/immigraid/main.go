// Command immigraid is the immigration forms and document assistant.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/immigraid/internal/adapters/driven/analysis/httpclient"
	"github.com/custodia-labs/immigraid/internal/adapters/driven/catalog"
	"github.com/custodia-labs/immigraid/internal/adapters/driven/config/file"
	"github.com/custodia-labs/immigraid/internal/adapters/driven/pdf/pdfcpu"
	"github.com/custodia-labs/immigraid/internal/adapters/driven/reference"
	"github.com/custodia-labs/immigraid/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/immigraid/internal/adapters/driven/storage/redis"
	"github.com/custodia-labs/immigraid/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/immigraid/internal/adapters/driving/cli"
	"github.com/custodia-labs/immigraid/internal/core/domain"
	"github.com/custodia-labs/immigraid/internal/core/ports/driven"
	"github.com/custodia-labs/immigraid/internal/core/ports/driving"
	"github.com/custodia-labs/immigraid/internal/core/services"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	settingsService := services.NewSettingsService(openConfigStore(""))
	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read settings: %v\n", err)
		return err
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open local state: %v\n", err)
		return err
	}
	defer store.Close()

	refs, err := reference.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load reference data: %v\n", err)
		return err
	}

	source := catalog.NewFileSource(settings.Catalog.Path)
	defer source.Close()

	analysis := httpclient.NewClient(httpclient.Config{
		BaseURL:           settings.Analysis.BaseURL,
		Timeout:           settings.Analysis.Timeout,
		RequestsPerSecond: settings.Analysis.RequestsPerSecond,
	})
	inspector := pdfcpu.NewInspector()

	catalogService := services.NewCatalogService(source, services.DefaultLookupTables())
	assistantService := services.NewAssistantService(analysis, inspector, store.SessionStore())

	cli.SetVersion(version)
	cli.SetServices(&cli.Services{
		Catalog:     catalogService,
		Pathways:    services.NewPathwayService(refs),
		Assistant:   assistantService,
		Chat:        services.NewChatService(assistantService, refs),
		Preferences: services.NewPreferencesService(store.StateStore()),
		Settings:    settingsService,
	})

	serveConfig := &cli.ServeConfig{Addr: settings.Server.Addr}
	if settings.Catalog.Path != "" {
		serveConfig.Watcher = source
	}
	if settings.Sessions.Backend == domain.SessionBackendRedis {
		serveConfig.OpenSessions = func(ctx context.Context) (driving.AssistantService, driving.ChatService, io.Closer, error) {
			sessions, err := redis.Open(ctx, settings.Sessions.RedisURL)
			if err != nil {
				return nil, nil, nil, err
			}
			assistant := services.NewAssistantService(analysis, inspector, sessions)
			return assistant, services.NewChatService(assistant, refs), sessions, nil
		}
	}
	cli.SetServeConfig(serveConfig)

	// MCP clients name their sessions explicitly and do not outlive the process.
	cli.SetMCPConfig(&cli.MCPConfig{
		Assistant: services.NewAssistantService(analysis, inspector, memory.NewSessionStore()),
	})

	return cli.Execute(ctx)
}

// openConfigStore opens the TOML config in dir. When the directory cannot
// be created the defaults are served from memory and changes are lost.
func openConfigStore(dir string) driven.ConfigStore {
	store, err := file.NewConfigStore(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: config unavailable, using defaults for this run: %v\n", err)
		return memory.NewConfigStore()
	}
	return store
}
