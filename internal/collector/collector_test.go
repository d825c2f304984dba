package collector

import (
	"testing"

	"jira-dashboard/internal/common"
	"jira-dashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCollector(baseURL string) *Collector {
	cfg := common.DefaultConfig()
	cfg.Jira.BaseURL = baseURL
	return &Collector{config: cfg, client: NewClient(&cfg.Jira)}
}

func Test_Normalize_FullIssue(t *testing.T) {
	t.Parallel()

	c := testCollector("https://example.atlassian.net")
	issue := c.normalize(JiraIssue{
		Key: "PROJ-7",
		Fields: JiraFields{
			Summary:   "Fix login",
			Status:    &NamedField{Name: "In Progress"},
			IssueType: &NamedField{Name: "Bug"},
			Priority:  &NamedField{Name: "High"},
			Assignee:  &JiraUser{DisplayName: "Ana Souza"},
			Project:   &ProjectRef{Key: "PROJ"},
			Created:   "2026-03-01T10:00:00.000-0300",
			Updated:   "2026-03-15T09:30:00.000-0300",
		},
	})

	assert.Equal(t, models.Issue{
		Key:       "PROJ-7",
		Summary:   "Fix login",
		Status:    "In Progress",
		IssueType: "Bug",
		Priority:  "High",
		Assignee:  "Ana Souza",
		Project:   "PROJ",
		Created:   "2026-03-01T10:00:00.000-0300",
		Updated:   "2026-03-15T09:30:00.000-0300",
		URL:       "https://example.atlassian.net/browse/PROJ-7",
	}, issue)
}

func Test_Normalize_NullFieldsGetFallbacks(t *testing.T) {
	t.Parallel()

	c := testCollector("https://example.atlassian.net")
	issue := c.normalize(JiraIssue{Key: "PROJ-8"})

	assert.Equal(t, "Unknown", issue.Status)
	assert.Equal(t, "Unknown", issue.IssueType)
	assert.Equal(t, "None", issue.Priority)
	assert.Equal(t, "Unassigned", issue.Assignee)
	assert.Equal(t, "https://example.atlassian.net/browse/PROJ-8", issue.URL)
}

func Test_Aggregate_CountsAllDimensions(t *testing.T) {
	t.Parallel()

	issues := []models.Issue{
		{Status: "Done", IssueType: "Bug", Assignee: "Ana", Priority: "High"},
		{Status: "Done", IssueType: "Story", Assignee: "Bruno", Priority: "Low"},
		{Status: "In Progress", IssueType: "Bug", Assignee: "Ana", Priority: "High"},
	}

	agg := Aggregate(issues)

	assert.Equal(t, 3, agg.Total)
	assert.Equal(t, 2, agg.ByStatus.Get("Done"))
	assert.Equal(t, 1, agg.ByStatus.Get("In Progress"))
	assert.Equal(t, 2, agg.ByType.Get("Bug"))
	assert.Equal(t, 2, agg.ByAssignee.Get("Ana"))
	assert.Equal(t, 2, agg.ByPriority.Get("High"))

	// First appearance decides order, which the charts preserve.
	assert.Equal(t, []string{"Done", "In Progress"}, agg.ByStatus.Labels())
}

func Test_Aggregate_Empty(t *testing.T) {
	t.Parallel()

	agg := Aggregate(nil)
	assert.Equal(t, 0, agg.Total)
	assert.Equal(t, 0, agg.ByStatus.Len())
}

func Test_LastUpdated_UsesFirstIssue(t *testing.T) {
	t.Parallel()

	issues := []models.Issue{
		{Updated: "2026-03-15T09:30:00.000-0300"},
		{Updated: "2026-03-01T08:00:00.000-0300"},
	}
	assert.Equal(t, "2026-03-15T09:30:00.000-0300", lastUpdated(issues))
}

func Test_LastUpdated_EmptyListFallsBackToNow(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, lastUpdated(nil))
	assert.NotEqual(t, "", lastUpdated([]models.Issue{{}}))
}

func Test_BoundJQL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "updated >= -30d", boundJQL("updated >= -30d"))
	assert.Equal(t, "created >= -7d ORDER BY created", boundJQL("created >= -7d ORDER BY created"))
	assert.Equal(t, "(project = PROJ) AND updated >= -90d", boundJQL("project = PROJ"))
}
