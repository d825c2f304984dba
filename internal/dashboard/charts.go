package dashboard

import (
	"jira-dashboard/internal/models"
)

// Mount point identifiers the page template exposes for the three charts.
const (
	MountStatusChart   = "chart-status"
	MountTypeChart     = "chart-type"
	MountAssigneeChart = "chart-assignee"
)

// noDataLabel is substituted when a dimension has no entries so the chart
// still renders a non-empty visual.
const noDataLabel = "No data"

// palette is cycled across doughnut slices and type bars.
var palette = []string{
	"#36a2eb", "#ff6384", "#ffcd56", "#4bc0c0",
	"#9966ff", "#ff9f40", "#c9cbcf", "#2ecc71",
}

// assigneeColor is the single uniform color of the horizontal bars.
const assigneeColor = "#36a2eb"

// ChartType matches the type names the page's charting library accepts.
type ChartType string

const (
	ChartDoughnut ChartType = "doughnut"
	ChartBar      ChartType = "bar"
)

// Dataset is one series of a chart definition.
type Dataset struct {
	Label           string   `json:"label,omitempty"`
	Data            []int    `json:"data"`
	BackgroundColor []string `json:"backgroundColor"`
}

// ChartData carries the labels and series of a chart definition.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// ChartOptions carries the subset of rendering options the dashboard uses.
type ChartOptions struct {
	// IndexAxis "y" flips a bar chart horizontal, which keeps long
	// assignee names readable.
	IndexAxis string `json:"indexAxis,omitempty"`
}

// ChartConfig is a complete chart definition, serialized into the page for
// the charting library to draw.
type ChartConfig struct {
	Type    ChartType    `json:"type"`
	Data    ChartData    `json:"data"`
	Options ChartOptions `json:"options,omitempty"`
}

// Chart is one live chart instance bound to a mount point.
type Chart struct {
	Mount    string
	Config   ChartConfig
	disposed bool
}

// Dispose marks the instance dead. A disposed chart must not be drawn.
func (c *Chart) Dispose() {
	c.disposed = true
}

// Disposed reports whether the instance has been replaced.
func (c *Chart) Disposed() bool {
	return c.disposed
}

// ChartSet owns the three chart instances between renders so a re-render
// can dispose the previous ones instead of stacking duplicates on the same
// mount point.
type ChartSet struct {
	Status   *Chart
	Type     *Chart
	Assignee *Chart
}

// Render replaces all three charts from the given aggregates. A nil
// aggregates object renders three placeholder charts.
func (s *ChartSet) Render(agg *models.Aggregates) {
	var byStatus, byType, byAssignee *models.CountMap
	if agg != nil {
		byStatus, byType, byAssignee = &agg.ByStatus, &agg.ByType, &agg.ByAssignee
	} else {
		var empty models.CountMap
		byStatus, byType, byAssignee = &empty, &empty, &empty
	}

	replaceChart(&s.Status, statusChart(byStatus))
	replaceChart(&s.Type, typeChart(byType))
	replaceChart(&s.Assignee, assigneeChart(byAssignee))
}

// Configs returns the chart definitions keyed by dimension, for embedding
// into the page.
func (s *ChartSet) Configs() map[string]ChartConfig {
	configs := make(map[string]ChartConfig, 3)
	for name, chart := range map[string]*Chart{
		"status":   s.Status,
		"type":     s.Type,
		"assignee": s.Assignee,
	} {
		if chart != nil && !chart.Disposed() {
			configs[name] = chart.Config
		}
	}
	return configs
}

func replaceChart(slot **Chart, next *Chart) {
	if *slot != nil {
		(*slot).Dispose()
	}
	*slot = next
}

func statusChart(counts *models.CountMap) *Chart {
	labels, values := chartSeries(counts)
	return &Chart{
		Mount: MountStatusChart,
		Config: ChartConfig{
			Type: ChartDoughnut,
			Data: ChartData{
				Labels: labels,
				Datasets: []Dataset{{
					Data:            values,
					BackgroundColor: paletteFor(len(labels)),
				}},
			},
		},
	}
}

func typeChart(counts *models.CountMap) *Chart {
	labels, values := chartSeries(counts)
	return &Chart{
		Mount: MountTypeChart,
		Config: ChartConfig{
			Type: ChartBar,
			Data: ChartData{
				Labels: labels,
				Datasets: []Dataset{{
					Label:           "Issues",
					Data:            values,
					BackgroundColor: paletteFor(len(labels)),
				}},
			},
		},
	}
}

func assigneeChart(counts *models.CountMap) *Chart {
	labels, values := chartSeries(counts)
	colors := make([]string, len(labels))
	for i := range colors {
		colors[i] = assigneeColor
	}
	return &Chart{
		Mount: MountAssigneeChart,
		Config: ChartConfig{
			Type: ChartBar,
			Data: ChartData{
				Labels: labels,
				Datasets: []Dataset{{
					Label:           "Issues",
					Data:            values,
					BackgroundColor: colors,
				}},
			},
			Options: ChartOptions{IndexAxis: "y"},
		},
	}
}

// chartSeries extracts labels and values in document order, substituting
// the placeholder when the dimension is empty.
func chartSeries(counts *models.CountMap) ([]string, []int) {
	if counts.Len() == 0 {
		return []string{noDataLabel}, []int{0}
	}
	return counts.Labels(), counts.Values()
}

func paletteFor(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = palette[i%len(palette)]
	}
	return colors
}
