package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"jira-dashboard/internal/common"
	"jira-dashboard/internal/interfaces"
	"jira-dashboard/internal/models"

	"github.com/ternarybob/arbor"
)

const filterMaxResults = 500

// Collector pulls issues from Jira, aggregates them, and materializes the
// dashboard snapshot: persisted in storage and exported as JSON files.
type Collector struct {
	config  *common.Config
	client  *Client
	storage interfaces.Storage
	logger  arbor.ILogger
}

// New creates a collector bound to the given storage.
func New(cfg *common.Config, storage interfaces.Storage, logger arbor.ILogger) *Collector {
	return &Collector{
		config:  cfg,
		client:  NewClient(&cfg.Jira),
		storage: storage,
		logger:  logger,
	}
}

// Collect runs one full extraction: the default JQL sweep plus every
// configured saved filter.
func (c *Collector) Collect(ctx context.Context) (*models.IssueSnapshot, error) {
	if !c.config.HasJiraCredentials() {
		return nil, common.NewError(common.ErrorTypeConfiguration, "missing_credentials",
			"jira base_url, email and api_token are required for collection")
	}

	c.logger.Info().Str("jql", c.config.Jira.JQL).Msg("Extracting issues from Jira")

	raw, err := c.client.SearchIssues(ctx, c.config.Jira.JQL, c.config.Jira.MaxResults)
	if err != nil {
		return nil, err
	}

	issues := make([]models.Issue, 0, len(raw))
	for _, ri := range raw {
		issues = append(issues, c.normalize(ri))
	}

	snapshot := &models.IssueSnapshot{
		LastUpdated: lastUpdated(issues),
		Aggregates:  Aggregate(issues),
		Issues:      issues,
	}

	if err := c.storage.SaveSnapshot(snapshot); err != nil {
		return nil, err
	}

	filters := c.collectFilters(ctx)
	if err := c.storage.SaveFilterResults(filters); err != nil {
		return nil, err
	}

	if err := c.export(snapshot, filters); err != nil {
		return nil, err
	}

	c.logger.Info().
		Int("issues", len(issues)).
		Int("filters", len(filters)).
		Msg("Collection complete")

	return snapshot, nil
}

// collectFilters fetches each configured saved filter. A failing filter is
// logged and skipped rather than failing the whole collection.
func (c *Collector) collectFilters(ctx context.Context) map[string]models.FilterResult {
	filters := make(map[string]models.FilterResult)

	for _, filterID := range c.config.Jira.FilterIDs {
		jql, err := c.client.GetFilterJQL(ctx, filterID)
		if err != nil || jql == "" {
			c.logger.Warn().Err(err).Str("filter", filterID).Msg("Skipping filter, no JQL available")
			continue
		}

		raw, err := c.client.SearchIssues(ctx, boundJQL(jql), filterMaxResults)
		if err != nil {
			c.logger.Warn().Err(err).Str("filter", filterID).Msg("Skipping filter, search failed")
			continue
		}

		issues := make([]models.Issue, 0, len(raw))
		for _, ri := range raw {
			issues = append(issues, c.normalize(ri))
		}
		filters[filterID] = models.FilterResult{Issues: issues, Count: len(issues)}
	}

	return filters
}

// normalize flattens a raw API issue into the dashboard shape, substituting
// the fallback labels the aggregation buckets rely on.
func (c *Collector) normalize(ri JiraIssue) models.Issue {
	issue := models.Issue{
		Key:       ri.Key,
		Summary:   ri.Fields.Summary,
		Status:    "Unknown",
		IssueType: "Unknown",
		Priority:  "None",
		Assignee:  "Unassigned",
		Created:   ri.Fields.Created,
		Updated:   ri.Fields.Updated,
		URL:       fmt.Sprintf("%s/browse/%s", c.config.Jira.BaseURL, ri.Key),
	}

	if ri.Fields.Status != nil && ri.Fields.Status.Name != "" {
		issue.Status = ri.Fields.Status.Name
	}
	if ri.Fields.IssueType != nil && ri.Fields.IssueType.Name != "" {
		issue.IssueType = ri.Fields.IssueType.Name
	}
	if ri.Fields.Priority != nil && ri.Fields.Priority.Name != "" {
		issue.Priority = ri.Fields.Priority.Name
	}
	if ri.Fields.Assignee != nil && ri.Fields.Assignee.DisplayName != "" {
		issue.Assignee = ri.Fields.Assignee.DisplayName
	}
	if ri.Fields.Project != nil {
		issue.Project = ri.Fields.Project.Key
	}

	return issue
}

// Aggregate computes the per-dimension counts for a normalized issue list.
// Label order follows first appearance in the list, which the renderer
// preserves through to chart order.
func Aggregate(issues []models.Issue) models.Aggregates {
	agg := models.Aggregates{Total: len(issues)}
	for _, issue := range issues {
		agg.ByStatus.Add(issue.Status, 1)
		agg.ByType.Add(issue.IssueType, 1)
		agg.ByAssignee.Add(issue.Assignee, 1)
		agg.ByPriority.Add(issue.Priority, 1)
	}
	return agg
}

// lastUpdated picks the snapshot timestamp: the first issue's update time
// (the sweep is ordered by updated desc), or now when nothing matched.
func lastUpdated(issues []models.Issue) string {
	if len(issues) > 0 && issues[0].Updated != "" {
		return issues[0].Updated
	}
	return time.Now().UTC().Format(time.RFC3339)
}

// export writes the static JSON resources the dashboard page fetches.
func (c *Collector) export(snapshot *models.IssueSnapshot, filters map[string]models.FilterResult) error {
	dataDir := c.config.Dashboard.DataDir
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return common.WrapError(err, common.ErrorTypeStorage, "data_dir", "failed to create data directory")
	}

	if err := writeJSON(filepath.Join(dataDir, "issues.json"), snapshot); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dataDir, "filters.json"), models.FilterExport{Filters: filters})
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return common.WrapError(err, common.ErrorTypeInternal, "marshal_export", "failed to marshal export")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return common.WrapError(err, common.ErrorTypeStorage, "write_export", "failed to write export file").
			WithContext("path", path)
	}
	return nil
}
