package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"jira-dashboard/internal/common"
	"jira-dashboard/internal/dashboard"
	"jira-dashboard/internal/handlers"
	"jira-dashboard/internal/interfaces"
	"jira-dashboard/internal/middleware"

	"github.com/ternarybob/arbor"
)

// webServer serves the dashboard page, the snapshot JSON resources and the
// monitoring endpoints.
type webServer struct {
	config    *common.Config
	server    *http.Server
	logger    arbor.ILogger
	wsHub     *handlers.WebSocketHub
	scheduler *Scheduler
	running   bool
	startTime time.Time
}

// NewWebServer wires handlers, middleware and the optional refresh
// scheduler into one server instance.
func NewWebServer(cfg *common.Config, storage interfaces.Storage, collector interfaces.Collector, logger arbor.ILogger) (interfaces.WebService, error) {
	mux := http.NewServeMux()

	wsHub := handlers.NewWebSocketHub(logger)
	apiHandlers := handlers.NewAPIHandlers(cfg, storage, collector, logger, wsHub)

	formatter := dashboard.NewTimeFormatter(cfg.Dashboard.TimeLayout, cfg.Dashboard.Timezone)
	renderer := dashboard.NewRenderer(formatter, logger)

	uiHandlers, err := handlers.NewUIHandlers(cfg, storage, renderer, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize UI handlers, only API endpoints will be available")
		uiHandlers = nil
	}

	ws := &webServer{
		config: cfg,
		logger: logger,
		wsHub:  wsHub,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: mux,
		},
	}

	if cfg.Dashboard.RefreshMinutes > 0 {
		interval := time.Duration(cfg.Dashboard.RefreshMinutes) * time.Minute
		ws.scheduler = NewScheduler(interval, logger, func(ctx context.Context) error {
			snapshot, err := collector.Collect(ctx)
			if err != nil {
				return err
			}
			wsHub.SendSnapshotUpdate(snapshot.Aggregates.Total, snapshot.LastUpdated)
			return nil
		})
	}

	logMiddleware := middleware.Logging(logger)
	corsMiddleware := middleware.CORS

	mux.HandleFunc("/health", logMiddleware(corsMiddleware(apiHandlers.HealthHandler)))
	mux.HandleFunc("/version", logMiddleware(corsMiddleware(apiHandlers.VersionHandler)))
	mux.HandleFunc("/status", logMiddleware(corsMiddleware(apiHandlers.StatusHandler)))
	mux.HandleFunc("/refresh", logMiddleware(corsMiddleware(apiHandlers.RefreshHandler)))
	mux.HandleFunc("/data/issues.json", logMiddleware(corsMiddleware(apiHandlers.IssuesDataHandler)))
	mux.HandleFunc("/data/filters.json", logMiddleware(corsMiddleware(apiHandlers.FiltersDataHandler)))

	mux.HandleFunc("/ws", corsMiddleware(wsHub.WebSocketHandler))

	if uiHandlers != nil {
		mux.HandleFunc("/", logMiddleware(uiHandlers.IndexHandler))
	}

	return ws, nil
}

// Start starts the web server and the refresh scheduler.
func (ws *webServer) Start(ctx context.Context) error {
	ws.running = true
	ws.startTime = time.Now()

	if ws.scheduler != nil {
		ws.scheduler.Start(ctx)
	}

	go func() {
		ws.logger.Info().Int("port", ws.config.Server.Port).Msg("Starting web server")
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			ws.logger.Error().Err(err).Msg("Web server error")
		}
	}()
	return nil
}

// Stop stops the scheduler and shuts the server down.
func (ws *webServer) Stop() error {
	ws.running = false

	if ws.scheduler != nil {
		ws.scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ws.logger.Info().Msg("Shutting down web server")
	return ws.server.Shutdown(ctx)
}

// IsRunning returns true if the web server is running
func (ws *webServer) IsRunning() bool {
	return ws.running
}
