package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"jira-dashboard/internal/collector"
	"jira-dashboard/internal/common"
	"jira-dashboard/internal/dashboard"
	"jira-dashboard/internal/handlers"
	"jira-dashboard/internal/interfaces"
	"jira-dashboard/internal/services"

	"github.com/ternarybob/arbor"
)

const serviceName = "jira-dashboard"

func main() {
	// Parse command line flags
	var (
		configPath     = flag.String("config", "", "Path to configuration file")
		mode           = flag.String("mode", "dev", "Environment mode: 'dev', 'development', 'prod', or 'production'")
		quiet          = flag.Bool("quiet", false, "Suppress banner output")
		version        = flag.Bool("version", false, "Show version information")
		help           = flag.Bool("help", false, "Show help message")
		validateConfig = flag.Bool("validate", false, "Validate configuration file and exit")
		collectOnce    = flag.Bool("collect", false, "Run one collection and exit")
		renderOut      = flag.String("render", "", "Render a static dashboard HTML file from data/issues.json and exit")
	)
	flag.Parse()

	if *version {
		fmt.Printf("%s v%s (build: %s)\n", serviceName, common.GetVersion(), common.GetBuild())
		os.Exit(0)
	}

	if *help {
		showHelp()
		os.Exit(0)
	}

	environment := parseMode(*mode)

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg.Server.Environment = environment

	if *validateConfig {
		fmt.Println("Configuration is valid")
		os.Exit(0)
	}

	if err := common.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := common.GetLogger()

	logger.Info().
		Str("version", common.GetVersion()).
		Str("build", common.GetBuild()).
		Str("environment", environment).
		Msg("Starting Jira Snapshot Dashboard")

	// Static export needs no storage or credentials; it reads the
	// exported issues.json through the dashboard loader.
	if *renderOut != "" {
		if err := renderStatic(cfg, *renderOut, logger); err != nil {
			logger.Error().Err(err).Msg("Static render failed")
			os.Exit(1)
		}
		logger.Info().Str("output", *renderOut).Msg("Static dashboard written")
		return
	}

	if !*quiet {
		common.PrintBanner(cfg.Server.Name, environment, common.GetLogFilePath())
	}

	storage, err := services.NewStorage(&cfg.Storage)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize storage")
		os.Exit(1)
	}
	defer storage.Close()

	coll := collector.New(cfg, storage, logger)

	if *collectOnce {
		if _, err := coll.Collect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Collection failed")
			os.Exit(1)
		}
		return
	}

	runServerMode(cfg, storage, coll, logger)

	if !*quiet {
		common.PrintShutdownBanner(cfg.Server.Name)
	}
	logger.Info().Msg("Jira Snapshot Dashboard shutdown complete")
}

func runServerMode(cfg *common.Config, storage interfaces.Storage, coll interfaces.Collector, logger arbor.ILogger) {
	webServer, err := services.NewWebServer(cfg, storage, coll, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create web server")
		return
	}

	ctx := context.Background()
	if err := webServer.Start(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to start web server")
		return
	}

	logger.Info().
		Int("port", cfg.Server.Port).
		Msg("Web server started successfully")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info().Msg("Server running - press Ctrl+C to stop")
	<-sigChan
	logger.Info().Msg("Shutdown signal received")

	if err := webServer.Stop(); err != nil {
		logger.Error().Err(err).Msg("Error stopping web server")
	}
}

// renderStatic is the one-shot pipeline: load the exported snapshot, build
// the view, write the page. A missing or broken snapshot still produces a
// page with the failure row.
func renderStatic(cfg *common.Config, outPath string, logger arbor.ILogger) error {
	loader := dashboard.NewLoader(time.Duration(cfg.Jira.Timeout)*time.Second, logger)
	snapshot := loader.Load(context.Background(), filepath.Join(cfg.Dashboard.DataDir, "issues.json"))

	formatter := dashboard.NewTimeFormatter(cfg.Dashboard.TimeLayout, cfg.Dashboard.Timezone)
	renderer := dashboard.NewRenderer(formatter, logger)
	view := renderer.Render(snapshot)

	ui, err := handlers.NewUIHandlers(cfg, nil, renderer, logger)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	return ui.WriteStaticPage(out, view)
}

func parseMode(mode string) string {
	switch strings.ToLower(mode) {
	case "prod", "production":
		return "production"
	default:
		return "development"
	}
}

func showHelp() {
	fmt.Printf("%s v%s - Jira Snapshot Dashboard\n\n", serviceName, common.GetVersion())
	fmt.Println("Usage:")
	fmt.Printf("  %s [flags]\n\n", os.Args[0])
	fmt.Println("Flags:")
	fmt.Println("  -mode string        Environment mode: 'dev', 'development', 'prod', or 'production' (default \"dev\")")
	fmt.Println("  -config string      Configuration file path")
	fmt.Println("  -quiet              Suppress banner output")
	fmt.Println("  -version            Show version information")
	fmt.Println("  -help               Show help message")
	fmt.Println("  -validate           Validate configuration file and exit")
	fmt.Println("  -collect            Run one collection and exit")
	fmt.Println("  -render string      Render a static dashboard HTML file and exit")
	fmt.Println("\nExamples:")
	fmt.Printf("  %s                                  # Serve the dashboard\n", os.Args[0])
	fmt.Printf("  %s -collect                         # Pull issues from Jira once\n", os.Args[0])
	fmt.Printf("  %s -render dashboard.html           # Export a static page\n", os.Args[0])
	fmt.Printf("  %s -config /path/to/config.toml     # Use custom config file\n", os.Args[0])
}
