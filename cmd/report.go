package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sonartools/sonarpdf/internal/config"
	"github.com/sonartools/sonarpdf/internal/progress"
	"github.com/sonartools/sonarpdf/internal/report"
	"github.com/sonartools/sonarpdf/internal/sonarqube"
	"github.com/sonartools/sonarpdf/internal/termui"
)

var (
	reportURL     string
	reportToken   string
	reportProject string
	reportOutput  string
	reportNoOpen  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fetch analysis data and build the PDF report",
	Long: `Fetches project measures, the quality gate status, and all issues
(including full changelog and comment history) from the configured SonarQube
server, then renders a PDF report into the working directory and opens it in
the platform's default viewer.

Examples:
  sonarpdf report --project my-service
  sonarpdf report --project my-service --url http://sonar.internal:9000
  sonarpdf report --project my-service --output /tmp/my-service.pdf --no-open`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportURL, "url", "", "SonarQube server URL (overrides config)")
	reportCmd.Flags().StringVar(&reportToken, "token", "", "SonarQube user token (overrides config)")
	reportCmd.Flags().StringVar(&reportProject, "project", "", "Project key to report on (overrides config)")
	reportCmd.Flags().StringVar(&reportOutput, "output", "", "Output file path (default: sonarqube_report_<project>.pdf)")
	reportCmd.Flags().BoolVar(&reportNoOpen, "no-open", false, "Do not open the report in a viewer")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := sonarqube.New(cfg.URL, cfg.Token)

	fmt.Printf("Fetching project measures for %q...\n", cfg.Project)
	metrics, err := client.Measures(ctx, cfg.Project)
	if err != nil {
		return fmt.Errorf("fetching measures: %w", err)
	}
	slog.Debug("Measures fetched", "count", len(metrics))

	fmt.Printf("Fetching quality gate status for %q...\n", cfg.Project)
	gate, err := client.QualityGate(ctx, cfg.Project)
	if err != nil {
		return fmt.Errorf("fetching quality gate: %w", err)
	}
	slog.Debug("Quality gate fetched", "status", gate.Status)

	fmt.Printf("Fetching all issues for %q...\n", cfg.Project)
	var bar *progress.Tracker
	issues, err := client.Issues(ctx, cfg.Project, func(fetched, total int) {
		if bar == nil && total > 0 {
			bar = progress.NewTracker("Issues", total)
		}
		if bar != nil {
			bar.Set(fetched)
		}
	})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("fetching issues: %w", err)
	}
	fmt.Printf("Total issues processed: %d\n", len(issues))

	out := reportOutput
	if out == "" {
		out = report.Filename(cfg.Project)
	}

	fmt.Printf("Building PDF report: %s...\n", out)
	data := report.Data{
		ProjectKey: cfg.Project,
		Metrics:    metrics,
		Gate:       gate,
		Issues:     issues,
	}
	if err := report.WriteFile(data, out); err != nil {
		return fmt.Errorf("building report: %w", err)
	}

	fmt.Println()
	fmt.Println(termui.GateBanner(gate.Status))
	fmt.Println()
	termui.MetricsTable(os.Stdout, metrics)
	fmt.Printf("\nReport generation complete: %s\n", out)

	if !reportNoOpen {
		if err := report.OpenInViewer(out); err != nil {
			abs, absErr := filepath.Abs(out)
			if absErr != nil {
				abs = out
			}
			fmt.Printf("Could not automatically open the PDF. Please find it at: %s\n", abs)
		}
	}
	return nil
}

// loadConfig merges the config file, environment, and report flags, and
// validates that everything required is present before any network call.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if reportURL != "" {
		cfg.URL = reportURL
	}
	if reportToken != "" {
		cfg.Token = reportToken
	}
	if reportProject != "" {
		cfg.Project = reportProject
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
