package handlers

import (
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"sync"

	"jira-dashboard/internal/common"
	"jira-dashboard/internal/dashboard"
	"jira-dashboard/internal/interfaces"

	"github.com/ternarybob/arbor"
)

// UIHandlers renders the dashboard page.
type UIHandlers struct {
	config    *common.Config
	storage   interfaces.Storage
	renderer  *dashboard.Renderer
	templates *template.Template
	logger    arbor.ILogger

	// The renderer owns chart state between renders, so concurrent page
	// requests must not interleave render passes.
	mu sync.Mutex
}

// TemplateData is what the page template receives.
type TemplateData struct {
	Title       string
	ServiceName string
	Version     string
	Environment string
	View        *dashboard.View
}

// NewUIHandlers loads the page templates and wires the renderer.
func NewUIHandlers(config *common.Config, storage interfaces.Storage, renderer *dashboard.Renderer, logger arbor.ILogger) (*UIHandlers, error) {
	templates, err := template.ParseGlob(filepath.Join(config.Dashboard.PagesDir, "*.html"))
	if err != nil {
		return nil, err
	}

	// The page template is the render target; without it every render
	// step has nowhere to mount.
	if templates.Lookup("index.html") == nil {
		return nil, common.NewError(common.ErrorTypeRender, "missing_template",
			"index.html not found in pages directory")
	}

	return &UIHandlers{
		config:    config,
		storage:   storage,
		renderer:  renderer,
		templates: templates,
		logger:    logger,
	}, nil
}

// IndexHandler serves the dashboard. A storage failure degrades to the
// same view as a missing snapshot: error row, placeholder timestamp.
func (h *UIHandlers) IndexHandler(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.storage.LoadSnapshot()
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to load snapshot for dashboard")
		snapshot = nil
	}

	h.mu.Lock()
	view := h.renderer.Render(snapshot)
	h.mu.Unlock()

	data := h.templateData(view)
	if err := h.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to execute template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// WriteStaticPage renders the dashboard for a snapshot into w, used by the
// one-shot static export mode.
func (h *UIHandlers) WriteStaticPage(w io.Writer, view *dashboard.View) error {
	return h.templates.ExecuteTemplate(w, "index.html", h.templateData(view))
}

func (h *UIHandlers) templateData(view *dashboard.View) TemplateData {
	return TemplateData{
		Title:       "Jira Dashboard",
		ServiceName: h.config.Server.Name,
		Version:     common.GetVersion(),
		Environment: h.config.Server.Environment,
		View:        view,
	}
}
