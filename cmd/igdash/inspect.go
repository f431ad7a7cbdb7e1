package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"igdash/pkg/dashboard"
	"igdash/pkg/logger"
	"igdash/pkg/media"
	"igdash/pkg/provider"
	"igdash/pkg/ui"
)

var (
	inspectPages  int
	inspectAmount int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <username>",
	Short: "Print an engagement report for one account",
	Long: `Fetch a profile and its recent media through the provider and print
the same analytics the dashboard shows: follower counts, engagement rate,
the post/reel mix, a performance trend and the top posts.`,
	Example: `  # Report on the first page of media
  igdash inspect nasa

  # Walk three pages of 24 items each
  igdash inspect nasa --pages 3 --amount 24`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&inspectPages, "pages", 1, "number of media pages to load")
	inspectCmd.Flags().IntVar(&inspectAmount, "amount", provider.DefaultMediaAmount, "media items requested per page")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	username := provider.SanitizeUsername(args[0])
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if inspectPages < 1 {
		return fmt.Errorf("--pages must be at least 1")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// keep the report readable, logs go to the file only when one is configured
	logCfg := cfg.Logging
	if logLevel == "" {
		logCfg.Level = "error"
	}
	log, err := logger.New(&logCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := provider.NewClient(cfg.Provider, log.WithField("component", "provider"))
	svc := dashboard.NewService(client, cfg.Analytics.SampleSize, log.WithField("component", "dashboard"))

	out := ui.Stdout()
	out.Info("Account: ", "@"+username)

	profile, err := svc.Profile(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	acc := media.NewAccumulator()
	fetch := svc.MediaFetcher(username, inspectAmount)
	pages := 0
	for pages < inspectPages && !acc.Done() {
		if _, err := acc.LoadMore(ctx, fetch); err != nil {
			if pages == 0 {
				return fmt.Errorf("failed to load media: %w", err)
			}
			out.Warning(fmt.Sprintf("stopped after %d page(s): %v", pages, err))
			break
		}
		pages++
	}

	ui.RenderReport(os.Stdout, ui.Report{
		Profile: profile,
		Media:   acc.Page(),
		Pages:   pages,
	})
	return nil
}
