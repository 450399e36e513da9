package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thumbnail-normalizer/internal/handlers"
	"thumbnail-normalizer/internal/logging"
	"thumbnail-normalizer/internal/metrics"
	"thumbnail-normalizer/internal/middleware"
	"thumbnail-normalizer/internal/registry"
	"thumbnail-normalizer/internal/startup"

	"github.com/gorilla/mux"
)

func main() {
	startTime := time.Now()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	metrics.InitializeMetrics()
	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)

	// Initialize registry
	regStart := time.Now()
	reg, err := registry.New(context.Background(), config.DatabasePath)
	if err != nil {
		startup.LogFatal("Failed to initialize registry: %v", err)
	}
	defer func() {
		if err := reg.Close(); err != nil {
			logging.Error("Failed to close registry: %v", err)
		}
	}()
	startup.LogRegistryInit(time.Since(regStart))

	// Initialize handlers
	h := handlers.New(reg)

	// Setup router
	router := setupRouter(h, config)

	startup.LogHTTPRoutes(router)

	// Apply logging middleware
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	loggedHandler := middleware.Logger(loggingConfig)(router)

	// Apply metrics middleware
	handler := middleware.Metrics(middleware.DefaultMetricsConfig())(loggedHandler)

	// Create server
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start graceful shutdown handler
	go handleShutdown(srv)

	// Start server
	startup.LogServerStarted(config.Port, time.Since(startTime))
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers, config *startup.Config) *mux.Router {
	r := mux.NewRouter()

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.Livez).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	if config.MetricsEnabled {
		r.Handle("/metrics", h.MetricsHandler()).Methods("GET")
	}

	// Decode API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/decode/thumbnail", h.DecodeThumbnail).Methods("POST")
	api.HandleFunc("/decode/animation", h.DecodeAnimation).Methods("POST")
	api.HandleFunc("/decode/web-document", h.DecodeWebDocument).Methods("POST")
	api.HandleFunc("/decode/secret-thumbnail", h.DecodeSecretThumbnail).Methods("POST")
	api.HandleFunc("/minithumbnail", h.ExpandMinithumbnail).Methods("POST")

	// Registered file lookup
	api.HandleFunc("/files/resolve", h.ResolvePersistentID).Methods("POST")
	api.HandleFunc("/files/{id}", h.GetFile).Methods("GET")
	api.HandleFunc("/files/{id}/content", h.GetFileContent).Methods("GET")

	return r
}

func handleShutdown(srv *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
}
