package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"igdash/pkg/config"
	"igdash/pkg/credentials"
	"igdash/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	logFormat  string
	port       int
	env        string
	host       string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "igdash",
	Short: "Instagram analytics backend and terminal inspector",
	Long: `igdash serves the Instagram analytics dashboard API.

It proxies account search, profile lookup and paginated media listings
through a RapidAPI scraping provider, computes engagement metrics, and
relays media thumbnails so browsers can display them.

The same pipeline is available from the terminal with 'igdash inspect'.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.NewPrinter(os.Stderr).Error("Error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is ./.igdash.yaml or $HOME/.config/igdash/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "provider host sent as x-rapidapi-host")

	rootCmd.SetVersionTemplate(fmt.Sprintf(`igdash %s
  Commit:     %s
  Built:      %s
  Go version: %s
  OS/Arch:    %s/%s
`, version, gitCommit, buildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH))

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// commandFlags collects the flags that override configuration values
func commandFlags() map[string]interface{} {
	flags := make(map[string]interface{})
	if port > 0 {
		flags["port"] = port
	}
	if env != "" {
		flags["env"] = env
	}
	if host != "" {
		flags["host"] = host
	}
	if logLevel != "" {
		flags["log-level"] = logLevel
	}
	if logFormat != "" {
		flags["log-format"] = logFormat
	}
	return flags
}

// loadConfig loads configuration with the keychain as the last key source
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile, commandFlags(), credentials.NewManager())
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
