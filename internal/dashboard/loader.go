package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"jira-dashboard/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/ternarybob/arbor"
)

// Loader retrieves the issue snapshot from a URL or a local file. Every
// failure mode, transport error, non-success status or malformed body, is
// logged and reported as an absent snapshot so the dashboard degrades
// instead of erroring out.
type Loader struct {
	client *resty.Client
	logger arbor.ILogger
}

// NewLoader creates a loader with the given request timeout.
func NewLoader(timeout time.Duration, logger arbor.ILogger) *Loader {
	return &Loader{
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
		logger: logger,
	}
}

// Load retrieves and parses the snapshot at location, which may be an
// http(s) URL or a file path. Returns nil on any failure.
func (l *Loader) Load(ctx context.Context, location string) *models.IssueSnapshot {
	data, err := l.read(ctx, location)
	if err != nil {
		l.logger.Warn().Err(err).Str("location", location).Msg("Failed to load snapshot")
		return nil
	}

	var snapshot models.IssueSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		l.logger.Warn().Err(err).Str("location", location).Msg("Snapshot is not valid JSON")
		return nil
	}

	return &snapshot
}

func (l *Loader) read(ctx context.Context, location string) ([]byte, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		resp, err := l.client.R().SetContext(ctx).Get(location)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("snapshot request returned status %d", resp.StatusCode())
		}
		return resp.Body(), nil
	}
	return os.ReadFile(location)
}
