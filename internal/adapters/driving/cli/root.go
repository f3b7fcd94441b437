// Package cli provides the immigraid command-line interface.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/immigraid/internal/adapters/driving/tui"
	"github.com/custodia-labs/immigraid/internal/core/domain"
	"github.com/custodia-labs/immigraid/internal/core/ports/driving"
	"github.com/custodia-labs/immigraid/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services injected by main.
var (
	catalogService     driving.CatalogService
	pathwayService     driving.PathwayService
	assistantService   driving.AssistantService
	chatService        driving.ChatService
	preferencesService driving.PreferencesService
	settingsService    driving.SettingsService
)

// Global flags.
var (
	verbose  bool
	langFlag string
)

// Terminal hooks, replaced in tests.
var (
	isTerminal = func() bool {
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
	pickVariant = tui.PickVariant
)

var rootCmd = &cobra.Command{
	Use:   "immigraid",
	Short: "Immigration forms and document assistant",
	Long: `immigraid helps you find official USCIS forms, understand immigration
pathways, and ask questions about your own documents.

Forms are resolved from a local catalog with language variants. Documents
are sent to an analysis service and can be questioned in plain language.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&langFlag, "lang", "l", "",
		"Language code for this command (defaults to the saved preference)")
}

// Services holds the driving ports the commands use.
type Services struct {
	Catalog     driving.CatalogService
	Pathways    driving.PathwayService
	Assistant   driving.AssistantService
	Chat        driving.ChatService
	Preferences driving.PreferencesService
	Settings    driving.SettingsService
}

// SetServices injects the services used by the commands.
func SetServices(s *Services) {
	catalogService = s.Catalog
	pathwayService = s.Pathways
	assistantService = s.Assistant
	chatService = s.Chat
	preferencesService = s.Preferences
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// language returns the --lang flag when given, else the saved preference.
func language(ctx context.Context) (string, error) {
	if langFlag != "" {
		if !domain.IsSupportedLanguage(langFlag) {
			return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedLanguage, langFlag)
		}
		return langFlag, nil
	}
	if preferencesService == nil {
		return domain.DefaultLanguage, nil
	}
	lang, err := preferencesService.Language(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read language preference: %w", err)
	}
	return lang, nil
}

// currentSession returns the CLI's document session, creating one on first use.
func currentSession(ctx context.Context) (string, error) {
	id, err := preferencesService.CurrentSession(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read current session: %w", err)
	}
	if id != "" {
		return id, nil
	}

	id, err = assistantService.NewSession(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	if err := preferencesService.SetCurrentSession(ctx, id); err != nil {
		return "", fmt.Errorf("failed to save current session: %w", err)
	}
	logger.Debug("started document session %s", id)
	return id, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
