package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"igdash/pkg/credentials"
	"igdash/pkg/ui"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the provider API key",
	Long: `Manage the RapidAPI key used to reach the scraping provider.

The key is looked up in this order:
  - System keychain
  - RAPIDAPI_KEY environment variable

Never commit your key to a config file or repository.`,
}

var keySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the API key in the system keychain",
	Long: `Store the API key in the system keychain.

The key is read from standard input. When stdin is a terminal the input
is hidden.`,
	Example: `  # Interactive
  igdash key set

  # From a secret manager
  vault read -field=key secret/rapidapi | igdash key set`,
	Args: cobra.NoArgs,
	RunE: runKeySet,
}

var keyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where an API key was found",
	Args:  cobra.NoArgs,
	RunE:  runKeyStatus,
}

var keyDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the API key from the system keychain",
	Args:  cobra.NoArgs,
	RunE:  runKeyDelete,
}

func init() {
	keyCmd.AddCommand(keySetCmd, keyStatusCmd, keyDeleteCmd)
	rootCmd.AddCommand(keyCmd)
}

func runKeySet(cmd *cobra.Command, args []string) error {
	key, err := readKey()
	if err != nil {
		return fmt.Errorf("failed to read api key: %w", err)
	}

	store, err := credentials.NewManager().Store(key)
	if err != nil {
		return err
	}

	ui.Stdout().Success(fmt.Sprintf("API key %s saved to %s", credentials.Mask(key), store))
	return nil
}

func runKeyStatus(cmd *cobra.Command, args []string) error {
	out := ui.Stdout()
	out.Title("Provider API key")

	found := false
	for _, status := range credentials.NewManager().Status() {
		switch {
		case status.Err != nil:
			out.Warning(fmt.Sprintf("%s: %v", status.Store, status.Err))
		case status.Found:
			found = true
			out.Info(status.Store+": ", status.Masked)
		default:
			out.Info(status.Store+": ", "not set")
		}
	}

	if !found {
		fmt.Println()
		credentials.WriteSetupGuide(os.Stdout)
	}
	return nil
}

func runKeyDelete(cmd *cobra.Command, args []string) error {
	err := credentials.NewManager().Delete()
	if errors.Is(err, credentials.ErrKeyNotFound) {
		ui.Stdout().Warning("No stored API key to remove")
		return nil
	}
	if err != nil {
		return err
	}

	ui.Stdout().Success("API key removed from the system keychain")
	if os.Getenv(credentials.EnvVar) != "" {
		ui.Stdout().Warning(credentials.EnvVar + " is still set in this environment")
	}
	return nil
}

// readKey reads one line from stdin, hiding it on a terminal
func readKey() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Print("RapidAPI key: ")
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
