package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "3", cfg.Jira.APIVersion)
	assert.Equal(t, "updated >= -90d ORDER BY updated DESC", cfg.Jira.JQL)
	assert.Equal(t, "02/01/2006 15:04", cfg.Dashboard.TimeLayout)
	assert.Equal(t, "America/Sao_Paulo", cfg.Dashboard.Timezone)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func Test_LoadConfig_TOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	doc := `
[server]
port = 9090

[jira]
base_url = "https://example.atlassian.net/browse/PROJ-1"
email = "bot@example.com"
api_token = "secret"
filter_ids = ["10001", "10002"]

[dashboard]
refresh_minutes = 15
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	// Browse paths are stripped down to scheme and host.
	assert.Equal(t, "https://example.atlassian.net", cfg.Jira.BaseURL)
	assert.Equal(t, []string{"10001", "10002"}, cfg.Jira.FilterIDs)
	assert.Equal(t, 15, cfg.Dashboard.RefreshMinutes)
	// Untouched sections keep their defaults.
	assert.Equal(t, "3", cfg.Jira.APIVersion)
	assert.True(t, cfg.HasJiraCredentials())
}

func Test_LoadConfig_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 9090\n"), 0644))

	t.Setenv("JIRA_URL", "https://env.atlassian.net")
	t.Setenv("JIRA_FILTER_IDS", " 1 ,2, ,3 ")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.atlassian.net", cfg.Jira.BaseURL)
	assert.Equal(t, []string{"1", "2", "3"}, cfg.Jira.FilterIDs)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func Test_LoadConfig_InvalidValues(t *testing.T) {
	dir := t.TempDir()

	for name, doc := range map[string]string{
		"bad_api_version": "[jira]\napi_version = \"4\"\n",
		"bad_log_level":   "[logging]\nlevel = \"loud\"\n",
		"bad_log_output":  "[logging]\noutput = \"pipe\"\n",
	} {
		path := filepath.Join(dir, name+".toml")
		require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
		_, err := LoadConfig(path)
		assert.Error(t, err, name)
	}
}

func Test_NormalizeJiraURL(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                                       "",
		"https://example.atlassian.net":          "https://example.atlassian.net",
		"https://example.atlassian.net/":         "https://example.atlassian.net",
		"https://example.atlassian.net/browse/X": "https://example.atlassian.net",
		"example.atlassian.net/jira/boards":      "https://example.atlassian.net",
		"http://jira.internal:8080/secure/Dash":  "http://jira.internal:8080",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeJiraURL(input), "input %q", input)
	}
}
