package models

// IssueSnapshot is the document the dashboard renders from: the latest
// extraction result with its precomputed aggregates. It is persisted in
// storage and exported verbatim as data/issues.json.
type IssueSnapshot struct {
	LastUpdated string     `json:"last_updated"`
	Aggregates  Aggregates `json:"aggregates"`
	Issues      []Issue    `json:"issues"`
}

// Aggregates holds counts grouped by dimension. Total is taken from the
// extraction and is deliberately not cross-checked against the by_status
// sum. All fields are optional in the document; zero values render as
// empty.
type Aggregates struct {
	Total      int      `json:"total"`
	ByStatus   CountMap `json:"by_status"`
	ByType     CountMap `json:"by_type"`
	ByAssignee CountMap `json:"by_assignee"`
	ByPriority CountMap `json:"by_priority"`
}

// Issue is one normalized Jira issue.
type Issue struct {
	Key       string `json:"key"`
	Summary   string `json:"summary"`
	Status    string `json:"status"`
	IssueType string `json:"issuetype"`
	Priority  string `json:"priority"`
	Assignee  string `json:"assignee"`
	Project   string `json:"project"`
	Created   string `json:"created"`
	Updated   string `json:"updated"`
	URL       string `json:"url"`
}

// FilterResult holds the issues matched by one saved Jira filter.
type FilterResult struct {
	Issues []Issue `json:"issues"`
	Count  int     `json:"count"`
}

// FilterExport is the shape of data/filters.json.
type FilterExport struct {
	Filters map[string]FilterResult `json:"filters"`
}
