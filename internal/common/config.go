package common

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Jira      JiraConfig      `toml:"jira"`
	Dashboard DashboardConfig `toml:"dashboard"`
	Storage   StorageConfig   `toml:"storage"`
	Logging   LoggingConfig   `toml:"logging"`
}

type ServerConfig struct {
	Name        string `toml:"name"`
	Environment string `toml:"environment"`
	Port        int    `toml:"port"`
}

type JiraConfig struct {
	BaseURL    string   `toml:"base_url"`
	Email      string   `toml:"email"`
	APIToken   string   `toml:"api_token"`
	APIVersion string   `toml:"api_version"`
	JQL        string   `toml:"jql"`
	FilterIDs  []string `toml:"filter_ids"`
	Timeout    int      `toml:"timeout"`
	MaxResults int      `toml:"max_results"`
}

type DashboardConfig struct {
	// PagesDir holds the HTML templates for the web interface.
	PagesDir string `toml:"pages_dir"`
	// DataDir receives the exported issues.json and filters.json.
	DataDir string `toml:"data_dir"`
	// TimeLayout and Timezone control the "last updated" display so
	// rendering is deterministic regardless of the host environment.
	TimeLayout string `toml:"time_layout"`
	Timezone   string `toml:"timezone"`
	// RefreshMinutes enables periodic collection when greater than zero.
	RefreshMinutes int `toml:"refresh_minutes"`
}

type StorageConfig struct {
	DatabasePath string `toml:"database_path"`
}

type LoggingConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	Output     string `toml:"output"`
	MaxSize    int    `toml:"max_size"`
	MaxBackups int    `toml:"max_backups"`
}

func DefaultConfig() *Config {
	execPath, _ := os.Executable()
	execDir := filepath.Dir(execPath)
	execName := filepath.Base(execPath)
	execName = execName[:len(execName)-len(filepath.Ext(execName))]

	return &Config{
		Server: ServerConfig{
			Name:        execName,
			Environment: "development",
			Port:        8080,
		},
		Jira: JiraConfig{
			APIVersion: "3",
			// Jira Cloud rejects unbounded queries, so the default sweep
			// only covers recently updated issues.
			JQL:        "updated >= -90d ORDER BY updated DESC",
			Timeout:    30,
			MaxResults: 1000,
		},
		Dashboard: DashboardConfig{
			PagesDir:   "pages",
			DataDir:    "data",
			TimeLayout: "02/01/2006 15:04",
			Timezone:   "America/Sao_Paulo",
		},
		Storage: StorageConfig{
			DatabasePath: filepath.Join(execDir, "data", execName+".db"),
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     "both",
			MaxSize:    100,
			MaxBackups: 3,
		},
	}
}

func LoadConfig(configFile string) (*Config, error) {
	config := DefaultConfig()

	if configFile == "" {
		// Auto-detect config file
		execPath, _ := os.Executable()
		execDir := filepath.Dir(execPath)
		execName := filepath.Base(execPath)
		execName = execName[:len(execName)-len(filepath.Ext(execName))]

		possiblePaths := []string{
			filepath.Join(execDir, execName+".toml"),
			filepath.Join(execDir, "config.toml"),
			"config.toml",
		}

		for _, path := range possiblePaths {
			if _, err := os.Stat(path); err == nil {
				configFile = path
				break
			}
		}

		if configFile == "" {
			applyEnvOverrides(config)
			config.Jira.BaseURL = NormalizeJiraURL(config.Jira.BaseURL)
			return config, nil
		}
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(config)
	config.Jira.BaseURL = NormalizeJiraURL(config.Jira.BaseURL)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// NormalizeJiraURL reduces a Jira URL to scheme and host; users routinely
// paste browse or board URLs and the REST paths are appended per request.
func NormalizeJiraURL(raw string) string {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	scheme := parsed.Scheme
	if scheme == "" {
		scheme = "https"
	}
	host := parsed.Host
	if host == "" {
		host = strings.SplitN(parsed.Path, "/", 2)[0]
	}
	if host == "" {
		return raw
	}
	return scheme + "://" + host
}

func applyEnvOverrides(config *Config) {
	if jiraURL := os.Getenv("JIRA_URL"); jiraURL != "" {
		config.Jira.BaseURL = jiraURL
	}
	if email := os.Getenv("JIRA_EMAIL"); email != "" {
		config.Jira.Email = email
	}
	if token := os.Getenv("JIRA_API_TOKEN"); token != "" {
		config.Jira.APIToken = token
	}
	if version := os.Getenv("JIRA_API_VERSION"); version != "" {
		config.Jira.APIVersion = version
	}
	if jql := os.Getenv("JIRA_JQL_DEFAULT"); jql != "" {
		config.Jira.JQL = jql
	}
	if filterIDs := os.Getenv("JIRA_FILTER_IDS"); filterIDs != "" {
		config.Jira.FilterIDs = nil
		for _, id := range strings.Split(filterIDs, ",") {
			if id = strings.TrimSpace(id); id != "" {
				config.Jira.FilterIDs = append(config.Jira.FilterIDs, id)
			}
		}
	}

	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		config.Storage.DatabasePath = dbPath
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.Logging.Level = logLevel
	}
	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		config.Logging.Format = logFormat
	}
	if logOutput := os.Getenv("LOG_OUTPUT"); logOutput != "" {
		config.Logging.Output = logOutput
	}

	if port := os.Getenv("SERVER_PORT"); port != "" {
		if portNum, err := strconv.Atoi(port); err == nil {
			config.Server.Port = portNum
		}
	}
}

func (c *Config) Validate() error {
	if c.Storage.DatabasePath == "" {
		return fmt.Errorf("storage database_path is required")
	}

	if c.Server.Port <= 0 {
		c.Server.Port = 8080
	}

	if c.Jira.APIVersion != "2" && c.Jira.APIVersion != "3" {
		return fmt.Errorf("invalid jira api_version: %s (expected \"2\" or \"3\")", c.Jira.APIVersion)
	}

	if c.Jira.Timeout <= 0 {
		c.Jira.Timeout = 30
	}
	if c.Jira.MaxResults <= 0 {
		c.Jira.MaxResults = 1000
	}

	if c.Dashboard.TimeLayout == "" {
		c.Dashboard.TimeLayout = "02/01/2006 15:04"
	}
	if c.Dashboard.Timezone == "" {
		c.Dashboard.Timezone = "America/Sao_Paulo"
	}

	validLogLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	validLevel := false
	for _, level := range validLogLevels {
		if c.Logging.Level == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	validOutputs := []string{"console", "file", "both"}
	validOutput := false
	for _, output := range validOutputs {
		if c.Logging.Output == output {
			validOutput = true
			break
		}
	}
	if !validOutput {
		return fmt.Errorf("invalid log output: %s", c.Logging.Output)
	}

	return nil
}

// HasJiraCredentials reports whether the collector can reach the Jira API.
// The dashboard itself renders from previously stored data without them.
func (c *Config) HasJiraCredentials() bool {
	return c.Jira.BaseURL != "" && c.Jira.Email != "" && c.Jira.APIToken != ""
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
