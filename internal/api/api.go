// Package api exposes FinMate over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/Veraticus/finmate/internal/engine"
	"github.com/Veraticus/finmate/internal/extract"
	"github.com/Veraticus/finmate/internal/llm"
)

// Extractor runs the structured extraction pipeline.
type Extractor interface {
	Extract(ctx context.Context, text string, form extract.TargetForm) (*extract.Result, error)
}

// Suggester produces spending suggestions. It never fails.
type Suggester interface {
	Suggest(ctx context.Context, in llm.SuggestionInput) llm.Suggestion
}

// Deps are the collaborators the handlers call.
type Deps struct {
	Extractor Extractor
	Suggester Suggester
	Profiles  *engine.Profiles
	Logger    *slog.Logger
}

// API routes HTTP requests to FinMate operations.
type API struct {
	router         *mux.Router
	extractor      Extractor
	suggester      Suggester
	profiles       *engine.Profiles
	logger         *slog.Logger
	allowedOrigins []string
}

// New creates the API and registers its routes.
func New(deps Deps, allowedOrigins []string) *API {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	api := &API{
		router:         mux.NewRouter(),
		extractor:      deps.Extractor,
		suggester:      deps.Suggester,
		profiles:       deps.Profiles,
		logger:         logger,
		allowedOrigins: allowedOrigins,
	}

	api.setupRoutes()
	return api
}

func (a *API) setupRoutes() {
	a.router.Use(a.loggingMiddleware)

	a.router.HandleFunc("/healthz", a.handleHealth).Methods(http.MethodGet)

	api := a.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/parse-fields", a.handleParseFields).Methods(http.MethodPost)
	api.HandleFunc("/budget/allocate", a.handleAllocate).Methods(http.MethodPost)
	api.HandleFunc("/budget/metrics", a.handleMetrics).Methods(http.MethodPost)
	api.HandleFunc("/suggestions", a.handleSuggestions).Methods(http.MethodPost)

	api.HandleFunc("/users/{userID}/profile", a.handleGetProfile).Methods(http.MethodGet)
	api.HandleFunc("/users/{userID}/profile", a.handlePutProfile).Methods(http.MethodPut)
	api.HandleFunc("/users/{userID}/investments", a.handleAddInvestment).Methods(http.MethodPost)
	api.HandleFunc("/users/{userID}/goals/{goalID}/contributions", a.handleAddContribution).Methods(http.MethodPost)
	api.HandleFunc("/users/{userID}/portfolio", a.handlePortfolio).Methods(http.MethodGet)

	api.HandleFunc("/roles/{role}/categories", a.handleRoleCategories).Methods(http.MethodGet)
	api.HandleFunc("/roles/{role}/goal-templates", a.handleGoalTemplates).Methods(http.MethodGet)
}

// Handler returns the router wrapped with CORS handling.
func (a *API) Handler() http.Handler {
	// Credentials stay off while the wildcard origin is allowed.
	corsOptions := cors.Options{
		AllowedOrigins:   a.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
	}
	return cors.New(corsOptions).Handler(a.router)
}

// Start serves on addr until ctx is canceled, then shuts down gracefully.
func (a *API) Start(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("API server listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
