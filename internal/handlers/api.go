package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"jira-dashboard/internal/common"
	"jira-dashboard/internal/interfaces"

	"github.com/ternarybob/arbor"
)

// APIHandlers contains all API endpoint handlers
type APIHandlers struct {
	config    *common.Config
	storage   interfaces.Storage
	collector interfaces.Collector
	logger    arbor.ILogger
	startTime time.Time
	wsHub     *WebSocketHub
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Build     string    `json:"build"`
	Uptime    float64   `json:"uptime_seconds"`
	Services  struct {
		Database bool `json:"database"`
	} `json:"services"`
}

// VersionResponse represents version information
type VersionResponse struct {
	Version string `json:"version"`
	Build   string `json:"build"`
	Commit  string `json:"commit"`
}

// StatusResponse represents the service status response
type StatusResponse struct {
	Running        bool    `json:"running"`
	Uptime         float64 `json:"uptime_seconds"`
	TotalIssues    int     `json:"total_issues"`
	FilterCount    int     `json:"filter_count"`
	LastCollection string  `json:"last_collection"`
	SnapshotTime   string  `json:"snapshot_time"`
}

// RefreshResponse represents the result of a collection run
type RefreshResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Issues  int    `json:"issues,omitempty"`
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(config *common.Config, storage interfaces.Storage, collector interfaces.Collector, logger arbor.ILogger, wsHub *WebSocketHub) *APIHandlers {
	return &APIHandlers{
		config:    config,
		storage:   storage,
		collector: collector,
		logger:    logger,
		startTime: time.Now(),
		wsHub:     wsHub,
	}
}

// HealthHandler returns system health status
func (h *APIHandlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	health := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   common.GetVersion(),
		Build:     common.GetBuild(),
		Uptime:    time.Since(h.startTime).Seconds(),
	}

	_, err := h.storage.LoadSnapshot()
	health.Services.Database = err == nil
	if !health.Services.Database {
		health.Status = "degraded"
	}

	if err := json.NewEncoder(w).Encode(health); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode health response")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// VersionHandler returns version information
func (h *APIHandlers) VersionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	version := VersionResponse{
		Version: common.GetVersion(),
		Build:   common.GetBuild(),
		Commit:  common.GetGitCommit(),
	}

	if err := json.NewEncoder(w).Encode(version); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode version response")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// StatusHandler returns snapshot statistics
func (h *APIHandlers) StatusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := StatusResponse{
		Running: true,
		Uptime:  time.Since(h.startTime).Seconds(),
	}

	snapshot, err := h.storage.LoadSnapshot()
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to load snapshot for status")
	}
	if snapshot != nil {
		status.TotalIssues = snapshot.Aggregates.Total
		status.SnapshotTime = snapshot.LastUpdated
	}

	filters, err := h.storage.LoadFilterResults()
	if err == nil {
		status.FilterCount = len(filters)
	}

	if last, err := h.storage.GetLastCollection(); err == nil && last != "" {
		status.LastCollection = last
	} else {
		status.LastCollection = "Never"
	}

	if err := json.NewEncoder(w).Encode(status); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode status response")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// RefreshHandler runs one collection and broadcasts the result
func (h *APIHandlers) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snapshot, err := h.collector.Collect(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Collection failed")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(RefreshResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	if h.wsHub != nil {
		h.wsHub.SendSnapshotUpdate(snapshot.Aggregates.Total, snapshot.LastUpdated)
	}

	response := RefreshResponse{
		Success: true,
		Message: "Collection complete",
		Issues:  len(snapshot.Issues),
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode refresh response")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// IssuesDataHandler serves the snapshot as the static issues.json resource
func (h *APIHandlers) IssuesDataHandler(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.storage.LoadSnapshot()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load snapshot")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if snapshot == nil {
		http.Error(w, "No snapshot available", http.StatusNotFound)
		return
	}
	h.writeIndentedJSON(w, snapshot)
}

// FiltersDataHandler serves the saved-filter results as filters.json
func (h *APIHandlers) FiltersDataHandler(w http.ResponseWriter, r *http.Request) {
	filters, err := h.storage.LoadFilterResults()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load filter results")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.writeIndentedJSON(w, map[string]interface{}{"filters": filters})
}

func (h *APIHandlers) writeIndentedJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to marshal response")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Write(data)
}
