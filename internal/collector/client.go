package collector

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"jira-dashboard/internal/common"

	"github.com/go-resty/resty/v2"
)

const (
	searchPageSize = 100
	searchFields   = "summary,status,issuetype,priority,assignee,project,created,updated"
)

// Client talks to the Jira REST API. Jira Cloud (api_version "3") uses the
// /search/jql endpoint with token paging; the legacy /search endpoint with
// startAt paging is kept for Server and Data Center ("2").
type Client struct {
	rest       *resty.Client
	apiVersion string
}

// SearchResponse is the shape of both search endpoints.
type SearchResponse struct {
	Issues        []JiraIssue `json:"issues"`
	NextPageToken string      `json:"nextPageToken"`
	StartAt       int         `json:"startAt"`
	MaxResults    int         `json:"maxResults"`
	Total         int         `json:"total"`
}

// JiraIssue is one raw issue as returned by the search API.
type JiraIssue struct {
	Key    string     `json:"key"`
	Fields JiraFields `json:"fields"`
}

// JiraFields carries the subset of issue fields the dashboard uses.
// Reference fields are pointers because Jira sends null for unset ones.
type JiraFields struct {
	Summary   string      `json:"summary"`
	Status    *NamedField `json:"status"`
	IssueType *NamedField `json:"issuetype"`
	Priority  *NamedField `json:"priority"`
	Assignee  *JiraUser   `json:"assignee"`
	Project   *ProjectRef `json:"project"`
	Created   string      `json:"created"`
	Updated   string      `json:"updated"`
}

type NamedField struct {
	Name string `json:"name"`
}

type JiraUser struct {
	DisplayName string `json:"displayName"`
}

type ProjectRef struct {
	Key string `json:"key"`
}

type filterResponse struct {
	JQL string `json:"jql"`
}

// NewClient creates a Jira API client from configuration.
func NewClient(cfg *common.JiraConfig) *Client {
	rest := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetBasicAuth(cfg.Email, cfg.APIToken).
		SetTimeout(time.Duration(cfg.Timeout) * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{
		rest:       rest,
		apiVersion: cfg.APIVersion,
	}
}

// SearchIssues pages through all issues matching the JQL, up to maxResults.
func (c *Client) SearchIssues(ctx context.Context, jql string, maxResults int) ([]JiraIssue, error) {
	if c.apiVersion == "3" {
		return c.searchByToken(ctx, jql, maxResults)
	}
	return c.searchByOffset(ctx, jql, maxResults)
}

func (c *Client) searchByToken(ctx context.Context, jql string, maxResults int) ([]JiraIssue, error) {
	var all []JiraIssue
	token := ""

	for len(all) < maxResults {
		var page SearchResponse
		req := c.rest.R().
			SetContext(ctx).
			SetQueryParam("jql", jql).
			SetQueryParam("maxResults", strconv.Itoa(min(searchPageSize, maxResults-len(all)))).
			SetQueryParam("fields", searchFields).
			SetResult(&page)
		if token != "" {
			req.SetQueryParam("nextPageToken", token)
		}

		resp, err := req.Get("/rest/api/3/search/jql")
		if err != nil {
			return nil, common.WrapError(err, common.ErrorTypeNetwork, "search_request", "Jira search request failed")
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, common.NewJiraError("search_status",
				fmt.Sprintf("Jira API returned status %d", resp.StatusCode())).
				WithContext("body", truncate(resp.String(), 500))
		}

		all = append(all, page.Issues...)
		token = page.NextPageToken
		if token == "" || len(page.Issues) == 0 {
			break
		}
	}

	if len(all) > maxResults {
		all = all[:maxResults]
	}
	return all, nil
}

func (c *Client) searchByOffset(ctx context.Context, jql string, maxResults int) ([]JiraIssue, error) {
	var all []JiraIssue
	startAt := 0

	for {
		var page SearchResponse
		resp, err := c.rest.R().
			SetContext(ctx).
			SetQueryParam("jql", jql).
			SetQueryParam("startAt", strconv.Itoa(startAt)).
			SetQueryParam("maxResults", strconv.Itoa(searchPageSize)).
			SetQueryParam("fields", searchFields).
			SetResult(&page).
			Get("/rest/api/2/search")
		if err != nil {
			return nil, common.WrapError(err, common.ErrorTypeNetwork, "search_request", "Jira search request failed")
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, common.NewJiraError("search_status",
				fmt.Sprintf("Jira API returned status %d", resp.StatusCode())).
				WithContext("body", truncate(resp.String(), 500))
		}

		all = append(all, page.Issues...)
		if startAt+len(page.Issues) >= page.Total || len(page.Issues) == 0 || len(all) >= maxResults {
			break
		}
		startAt += len(page.Issues)
	}

	if len(all) > maxResults {
		all = all[:maxResults]
	}
	return all, nil
}

// GetFilterJQL fetches the JQL of a saved filter by its ID.
func (c *Client) GetFilterJQL(ctx context.Context, filterID string) (string, error) {
	var filter filterResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&filter).
		Get(fmt.Sprintf("/rest/api/%s/filter/%s", c.apiVersion, filterID))
	if err != nil {
		return "", common.WrapError(err, common.ErrorTypeNetwork, "filter_request", "Jira filter request failed")
	}
	if resp.StatusCode() != http.StatusOK {
		return "", common.NewJiraError("filter_status",
			fmt.Sprintf("Jira API returned status %d for filter %s", resp.StatusCode(), filterID))
	}
	return filter.JQL, nil
}

// boundJQL appends a date restriction when the query has none; Jira Cloud
// rejects unbounded searches.
func boundJQL(jql string) string {
	lower := strings.ToLower(jql)
	for _, term := range []string{"updated", "created", "resolved"} {
		if strings.Contains(lower, term) {
			return jql
		}
	}
	return fmt.Sprintf("(%s) AND updated >= -90d", jql)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
