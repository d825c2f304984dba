package dashboard

import (
	"encoding/json"
	"html/template"

	"jira-dashboard/internal/models"

	"github.com/ternarybob/arbor"
)

// loadFailureMessage is the single table row shown when no snapshot could
// be loaded.
const loadFailureMessage = "Failed to load issue data"

// View is the assembled dashboard content handed to the page template.
// TableHTML is built from escaped fields only; ChartsJSON is a marshaled
// ChartConfig map, or "null" when the snapshot was absent.
type View struct {
	Loaded      bool
	Cards       CardSet
	LastUpdated string
	TableHTML   template.HTML
	ChartsJSON  template.JS
}

// Renderer sequences the dashboard pipeline: timestamp, cards, charts,
// table. It owns the chart instances between renders so each mount point
// holds exactly one live chart at a time.
type Renderer struct {
	charts    ChartSet
	formatter *TimeFormatter
	logger    arbor.ILogger
}

// NewRenderer creates a renderer using the given timestamp formatter.
func NewRenderer(formatter *TimeFormatter, logger arbor.ILogger) *Renderer {
	return &Renderer{formatter: formatter, logger: logger}
}

// Render builds the view for one snapshot. A nil snapshot is the load
// failure path: error row, placeholder timestamp, cards left at their
// defaults, and no chart pass at all.
func (r *Renderer) Render(snapshot *models.IssueSnapshot) *View {
	if snapshot == nil {
		return &View{
			LastUpdated: timestampPlaceholder,
			TableHTML:   template.HTML(ErrorRow(loadFailureMessage)),
			ChartsJSON:  template.JS("null"),
		}
	}

	view := &View{Loaded: true}
	view.LastUpdated = r.formatter.Format(snapshot.LastUpdated)
	view.Cards = BuildCards(&snapshot.Aggregates)

	r.charts.Render(&snapshot.Aggregates)
	view.ChartsJSON = r.chartsJSON()

	view.TableHTML = template.HTML(BuildTable(snapshot.Issues))
	return view
}

// Charts exposes the live chart instances for inspection.
func (r *Renderer) Charts() *ChartSet {
	return &r.charts
}

func (r *Renderer) chartsJSON() template.JS {
	data, err := json.Marshal(r.charts.Configs())
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to marshal chart configs")
		return template.JS("null")
	}
	return template.JS(data)
}
