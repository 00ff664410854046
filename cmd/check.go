package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sonartools/sonarpdf/internal/config"
	"github.com/sonartools/sonarpdf/internal/sonarqube"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify server URL, token, and project configuration",
	Long: `Checks that the server URL, access token, and project key are
configured, and validates the token against the SonarQube server.

No report is generated; use this as a preflight before 'sonarpdf report'.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&reportURL, "url", "", "SonarQube server URL (overrides config)")
	checkCmd.Flags().StringVar(&reportToken, "token", "", "SonarQube user token (overrides config)")
	checkCmd.Flags().StringVar(&reportProject, "project", "", "Project key to report on (overrides config)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
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

	allOK := true

	fmt.Println("=== sonarpdf check ===")
	fmt.Println()

	fmt.Print("Server URL ............... ")
	if cfg.URL == "" {
		fmt.Println("FAIL (not set — use --url or SONARQUBE_URL)")
		allOK = false
	} else {
		fmt.Printf("OK (%s)\n", cfg.URL)
	}

	fmt.Print("Project key .............. ")
	if cfg.Project == "" {
		fmt.Println("FAIL (not set — use --project or SONARQUBE_PROJECT)")
		allOK = false
	} else {
		fmt.Printf("OK (%s)\n", cfg.Project)
	}

	fmt.Print("Access token ............. ")
	switch {
	case cfg.Token == "":
		fmt.Println("FAIL (not set — use --token or SONARQUBE_TOKEN)")
		allOK = false
	case cfg.URL == "":
		fmt.Println("SKIP (no server URL to validate against)")
	default:
		client := sonarqube.New(cfg.URL, cfg.Token)
		if err := client.Validate(ctx); err != nil {
			fmt.Printf("FAIL (%s)\n", err)
			allOK = false
		} else {
			fmt.Println("OK (token accepted by server)")
		}
	}

	fmt.Println()
	if !allOK {
		return fmt.Errorf("some checks failed — fix the items above and re-run")
	}
	fmt.Println("All checks passed.")
	return nil
}
