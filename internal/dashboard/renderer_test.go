package dashboard

import (
	"encoding/json"
	"strings"
	"testing"

	"jira-dashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func newTestRenderer() *Renderer {
	return NewRenderer(NewTimeFormatter("02/01/2006 15:04", "UTC"), arbor.NewLogger())
}

func Test_Renderer_AbsentSnapshot(t *testing.T) {
	t.Parallel()

	r := newTestRenderer()
	view := r.Render(nil)

	assert.False(t, view.Loaded)
	assert.Equal(t, "--", view.LastUpdated)
	assert.Equal(t, CardSet{}, view.Cards)
	assert.Contains(t, string(view.TableHTML), "Failed to load issue data")
	assert.Equal(t, "null", string(view.ChartsJSON))

	// No chart pass happened.
	assert.Nil(t, r.Charts().Status)
	assert.Nil(t, r.Charts().Type)
	assert.Nil(t, r.Charts().Assignee)
}

func Test_Renderer_FullSnapshot(t *testing.T) {
	t.Parallel()

	doc := `{
		"last_updated": "2026-03-15T09:30:00Z",
		"aggregates": {
			"total": 3,
			"by_status": {"In Progress": 1, "Done": 2},
			"by_type": {"Bug": 3},
			"by_assignee": {"Ana": 3}
		},
		"issues": [
			{"key": "PROJ-1", "summary": "First", "status": "Done", "issuetype": "Bug", "assignee": "Ana", "url": "https://example.atlassian.net/browse/PROJ-1"}
		]
	}`
	var snapshot models.IssueSnapshot
	require.NoError(t, json.Unmarshal([]byte(doc), &snapshot))

	r := newTestRenderer()
	view := r.Render(&snapshot)

	assert.True(t, view.Loaded)
	assert.Equal(t, "15/03/2026 09:30", view.LastUpdated)
	assert.Equal(t, CardSet{Total: 3, InProgress: 1, Done: 2}, view.Cards)
	assert.Contains(t, string(view.TableHTML), "PROJ-1")

	var configs map[string]ChartConfig
	require.NoError(t, json.Unmarshal([]byte(view.ChartsJSON), &configs))
	require.Len(t, configs, 3)
	assert.Equal(t, []string{"In Progress", "Done"}, configs["status"].Data.Labels)
	assert.Equal(t, ChartDoughnut, configs["status"].Type)
}

func Test_Renderer_EmptySnapshotDegrades(t *testing.T) {
	t.Parallel()

	r := newTestRenderer()
	view := r.Render(&models.IssueSnapshot{})

	assert.True(t, view.Loaded)
	assert.Equal(t, "--", view.LastUpdated)
	assert.Equal(t, CardSet{}, view.Cards)
	assert.Contains(t, string(view.TableHTML), "No issues found")
	assert.Contains(t, string(view.ChartsJSON), "No data")
}

func Test_Renderer_RerenderKeepsOneChartPerMount(t *testing.T) {
	t.Parallel()

	var snapshot models.IssueSnapshot
	require.NoError(t, json.Unmarshal([]byte(`{"aggregates":{"by_status":{"Done":1}}}`), &snapshot))

	r := newTestRenderer()
	r.Render(&snapshot)
	first := r.Charts().Status
	r.Render(&snapshot)

	assert.True(t, first.Disposed())
	assert.False(t, r.Charts().Status.Disposed())
	assert.Len(t, r.Charts().Configs(), 3)
}

func Test_Renderer_ViewHTMLIsEscaped(t *testing.T) {
	t.Parallel()

	snapshot := &models.IssueSnapshot{
		Issues: []models.Issue{{Key: "PROJ-1", Summary: "<b>bold</b>"}},
	}

	view := newTestRenderer().Render(snapshot)
	assert.False(t, strings.Contains(string(view.TableHTML), "<b>"))
	assert.Contains(t, string(view.TableHTML), "&lt;b&gt;")
}
