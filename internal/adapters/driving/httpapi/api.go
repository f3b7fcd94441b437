// Package httpapi serves immigraid over JSON/HTTP for the browser UI.
// Each browser tab creates its own document session and passes its id on
// every document request.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/custodia-labs/immigraid/internal/core/ports/driving"
	"github.com/custodia-labs/immigraid/internal/logger"
)

// DefaultMaxUploadBytes caps the size of an uploaded document.
const DefaultMaxUploadBytes = 20 << 20

// ErrMissingCatalogService is returned when the catalog service is not provided.
var ErrMissingCatalogService = errors.New("httpapi: catalog service is required")

// ErrMissingAssistantService is returned when the assistant service is not provided.
var ErrMissingAssistantService = errors.New("httpapi: assistant service is required")

// Ports aggregates the driving ports the API serves.
type Ports struct {
	Catalog   driving.CatalogService
	Pathways  driving.PathwayService
	Assistant driving.AssistantService
	Chat      driving.ChatService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	if p.Assistant == nil {
		return ErrMissingAssistantService
	}
	// Pathways and Chat are optional; their routes answer 503 without them.
	return nil
}

// API handles HTTP requests for forms, pathways and document sessions.
type API struct {
	ports          *Ports
	maxUploadBytes int64
}

// NewAPI creates an API over the given ports.
func NewAPI(ports *Ports) (*API, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}
	return &API{
		ports:          ports,
		maxUploadBytes: DefaultMaxUploadBytes,
	}, nil
}

// RegisterRoutes registers the API routes on router.
func (a *API) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", a.handleHealth).Methods(http.MethodGet)

	// Forms
	router.HandleFunc("/forms", a.handleListForms).Methods(http.MethodGet)
	router.HandleFunc("/forms/{id}", a.handleGetForm).Methods(http.MethodGet)
	router.HandleFunc("/forms/{id}/variants", a.handleVariants).Methods(http.MethodGet)
	router.HandleFunc("/forms/{id}/download", a.handleDownload).Methods(http.MethodGet)

	// Pathways
	router.HandleFunc("/pathways", a.handleListPathways).Methods(http.MethodGet)
	router.HandleFunc("/pathways/{key}", a.handleGetPathway).Methods(http.MethodGet)

	// Document sessions
	router.HandleFunc("/sessions", a.handleCreateSession).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{sid}", a.handleGetSession).Methods(http.MethodGet)
	router.HandleFunc("/sessions/{sid}/upload", a.handleUpload).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{sid}/analyze", a.handleAnalyze).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{sid}/ask", a.handleAsk).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{sid}/chat", a.handleChat).Methods(http.MethodPost)
}

// Handler returns a router with every route registered.
func (a *API) Handler() http.Handler {
	router := mux.NewRouter()
	a.RegisterRoutes(router)
	return router
}

// Run serves the API on addr until ctx is cancelled.
func (a *API) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown: %v", err)
		}
	}()

	logger.Info("http api listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
