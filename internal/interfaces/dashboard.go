package interfaces

import (
	"context"

	"jira-dashboard/internal/models"
)

// Storage persists the latest issue snapshot and filter results.
type Storage interface {
	SaveSnapshot(snapshot *models.IssueSnapshot) error
	// LoadSnapshot returns (nil, nil) when no snapshot has been stored yet.
	LoadSnapshot() (*models.IssueSnapshot, error)
	SaveFilterResults(filters map[string]models.FilterResult) error
	LoadFilterResults() (map[string]models.FilterResult, error)
	// GetLastCollection returns the time of the most recent successful
	// collection as a display string, or "" when none has run.
	GetLastCollection() (string, error)
	Close() error
}

// Collector runs one extraction against Jira and materializes a snapshot.
type Collector interface {
	Collect(ctx context.Context) (*models.IssueSnapshot, error)
}

// WebService is the embedded web server lifecycle.
type WebService interface {
	Start(ctx context.Context) error
	Stop() error
	IsRunning() bool
}
