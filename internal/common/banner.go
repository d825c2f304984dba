package common

import (
	"fmt"
	"strings"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the application startup banner
func PrintBanner(serviceName, environment, logFile string) {
	b := banner.New().
		SetStyle(banner.StyleDouble).
		SetBorderColor(banner.ColorBlue).
		SetTextColor(banner.ColorWhite).
		SetBold(true).
		SetWidth(80)

	fmt.Printf("\n")

	b.PrintTopLine()
	b.PrintCenteredText("JIRA SNAPSHOT DASHBOARD")
	b.PrintCenteredText("Issue Extraction and Visualization Service")
	b.PrintSeparatorLine()

	b.PrintKeyValue("Version", GetVersion(), 15)
	b.PrintKeyValue("Build", GetBuild(), 15)
	b.PrintKeyValue("Environment", environment, 15)
	b.PrintKeyValue("Service", serviceName, 15)
	b.PrintBottomLine()

	fmt.Printf("\n")

	if logFile != "" {
		pattern := strings.Replace(logFile, ".log", ".{YYYY-MM-DDTHH-MM-SS}.log", 1)
		fmt.Printf("   • Log File: %s\n", pattern)
	}
	fmt.Printf("\n")

	fmt.Printf("🎯 Capabilities:\n")
	fmt.Printf("   • Extraction - Pull issues and saved filters from the Jira REST API\n")
	fmt.Printf("   • Aggregation - Status, type, assignee and priority distributions\n")
	fmt.Printf("   • Dashboard - Summary cards, charts and issue table at /\n")
	fmt.Printf("   • Snapshot Export - data/issues.json and data/filters.json\n")
	fmt.Printf("\n")
}

// PrintShutdownBanner displays the application shutdown banner
func PrintShutdownBanner(serviceName string) {
	b := banner.New().
		SetStyle(banner.StyleDouble).
		SetBorderColor(banner.ColorBlue).
		SetTextColor(banner.ColorWhite).
		SetBold(true).
		SetWidth(42)

	b.PrintTopLine()
	b.PrintCenteredText("SHUTTING DOWN")
	b.PrintCenteredText(serviceName)
	b.PrintBottomLine()
	fmt.Println()
}
