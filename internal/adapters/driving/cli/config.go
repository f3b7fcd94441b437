package cli

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/immigraid/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change the analysis service, catalog, session and server settings.

Settings are stored in ~/.immigraid/config.toml.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting by key. Run 'immigraid config keys' to list the keys.

Example:
  immigraid config set analysis.base_url http://localhost:8000`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

var configWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the analysis service and session storage.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigWizard,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configWizardCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Analysis]")
	cmd.Printf("  Base URL: %s\n", settings.Analysis.BaseURL)
	if settings.Analysis.Timeout > 0 {
		cmd.Printf("  Timeout: %s\n", settings.Analysis.Timeout)
	} else {
		cmd.Printf("  Timeout: (transport default)\n")
	}
	if settings.Analysis.RequestsPerSecond > 0 {
		cmd.Printf("  Rate limit: %g requests/second\n", settings.Analysis.RequestsPerSecond)
	} else {
		cmd.Printf("  Rate limit: (none)\n")
	}
	cmd.Println()

	cmd.Println("[Catalog]")
	if settings.Catalog.Path != "" {
		cmd.Printf("  Path: %s\n", settings.Catalog.Path)
	} else {
		cmd.Printf("  Path: (built-in fallback forms)\n")
	}
	cmd.Println()

	cmd.Println("[Sessions]")
	cmd.Printf("  Backend: %s\n", settings.Sessions.Backend.Description())
	if settings.Sessions.Backend == domain.SessionBackendRedis {
		cmd.Printf("  Redis URL: %s\n", redactURL(settings.Sessions.RedisURL))
	}
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'immigraid config wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runConfigWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("immigraid Settings Wizard")
	cmd.Println("=========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Analysis service
	cmd.Println("Step 1: Analysis Service")
	cmd.Println("------------------------")
	cmd.Printf("Base URL [%s]: ", settings.Analysis.BaseURL)
	if input := readLine(reader); input != "" {
		settings.Analysis.BaseURL = input
	}
	cmd.Printf("Requests per second, 0 for no limit [%g]: ", settings.Analysis.RequestsPerSecond)
	if input := readLine(reader); input != "" {
		rate, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return fmt.Errorf("%w: requests per second %q", domain.ErrInvalidInput, input)
		}
		settings.Analysis.RequestsPerSecond = rate
	}
	cmd.Println()

	// Step 2: Session storage
	cmd.Println("Step 2: Session Storage")
	cmd.Println("-----------------------")
	backends := domain.AllSessionBackends()
	defaultChoice := 1
	for i, b := range backends {
		cmd.Printf("  %d. %s\n", i+1, b.Description())
		if b == settings.Sessions.Backend {
			defaultChoice = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", defaultChoice)
	settings.Sessions.Backend = backends[parseChoice(readLine(reader), len(backends), defaultChoice)-1]

	if settings.Sessions.Backend == domain.SessionBackendRedis {
		cmd.Printf("Redis URL [%s]: ", redactURL(settings.Sessions.RedisURL))
		if input := readLine(reader); input != "" {
			settings.Sessions.RedisURL = input
		}
	}
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Settings saved.")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// redactURL hides the password in a connection URL.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
