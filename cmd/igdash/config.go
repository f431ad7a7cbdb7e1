package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"igdash/pkg/config"
	"igdash/pkg/credentials"
	"igdash/pkg/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Create, display and validate igdash configuration files.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example configuration file",
	Example: `  # Create .igdash.yaml in the current directory
  igdash config init

  # Create it somewhere else
  igdash config init ~/.config/igdash/config.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration and report problems",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var forceInit bool

func init() {
	configInitCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "overwrite an existing file")

	configCmd.AddCommand(configInitCmd, configShowCmd, configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

const exampleConfig = `# igdash configuration
# Environment variables and command line flags override these values.

provider:
  # RapidAPI host for the Instagram scraper provider
  host: "instagram-scraper-stable-api.p.rapidapi.com"

  # Per-request timeout
  timeout: 30s

  # The API key is never read from this file. Use one of:
  #   igdash key set
  #   export RAPIDAPI_KEY=...

server:
  port: 3001

  # development shows upstream error details, production hides them
  environment: "development"

  shutdown_timeout: 10s

analytics:
  # Media items averaged for engagement metrics
  sample_size: 20

logging:
  # debug, info, warn, error
  level: "info"

  # console or json
  format: "console"

  # Optional JSON log file
  file: ""

metrics:
  enabled: true
  path: "/metrics"

sentry:
  # Leave empty to disable error reporting
  dsn: ""
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := ".igdash.yaml"
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(exampleConfig), 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := ui.Stdout()
	out.Success("Configuration file created: " + path)
	fmt.Println("\nNext steps:")
	fmt.Println("1. Store your provider key with 'igdash key set'")
	fmt.Println("2. Run 'igdash config validate' to check the configuration")
	fmt.Println("3. Start the API with 'igdash serve'")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	out := ui.Stdout()
	out.Title("Current Configuration")
	fmt.Println()
	fmt.Print(string(data))
	out.Info("provider api key: ", credentials.Mask(cfg.Provider.APIKey))

	fmt.Println("\nConfiguration sources (in order of priority):")
	fmt.Println("1. Command line flags")
	fmt.Println("2. Environment variables (RAPIDAPI_*, PORT, NODE_ENV, IGDASH_*)")
	fmt.Println("3. .env files")
	if configFile != "" {
		fmt.Printf("4. Configuration file: %s\n", configFile)
	} else {
		fmt.Println("4. Configuration file: (searched in default locations)")
	}
	fmt.Println("5. System keychain (api key only)")
	fmt.Println("6. Default values")
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	out := ui.Stdout()
	if configFile != "" {
		out.Info("Validating configuration: ", configFile)
	}

	cfg, err := config.Load(configFile, commandFlags(), credentials.NewManager())
	if err != nil {
		out.Error("Configuration validation failed", err)
		return err
	}

	var warnings []string
	if cfg.IsProduction() && cfg.Sentry.DSN == "" {
		warnings = append(warnings, "production mode without a Sentry DSN, server errors are only logged")
	}
	if cfg.Provider.BaseURL != "" {
		warnings = append(warnings, "provider base_url overrides https://"+cfg.Provider.Host)
	}
	if cfg.Logging.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0755); err != nil {
			warnings = append(warnings, fmt.Sprintf("cannot create log directory: %v", err))
		}
	}

	if len(warnings) > 0 {
		out.Warning("Configuration warnings:")
		for _, warn := range warnings {
			fmt.Printf("  - %s\n", warn)
		}
		fmt.Println()
	}

	out.Success("Configuration is valid")

	fmt.Println("\nConfiguration summary:")
	fmt.Printf("  Listen address: %s\n", cfg.Addr())
	fmt.Printf("  Environment: %s\n", cfg.Server.Environment)
	fmt.Printf("  Provider host: %s\n", cfg.Provider.Host)
	fmt.Printf("  Engagement sample: %d items\n", cfg.Analytics.SampleSize)
	fmt.Printf("  Metrics: %v (%s)\n", cfg.Metrics.Enabled, cfg.Metrics.Path)
	fmt.Printf("  Log level: %s\n", cfg.Logging.Level)
	return nil
}
