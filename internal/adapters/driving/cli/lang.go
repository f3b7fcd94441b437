package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/immigraid/internal/core/domain"
)

var langCmd = &cobra.Command{
	Use:   "lang",
	Short: "Manage your preferred language",
	RunE:  runLangShow,
}

var langShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the preferred language",
	Args:  cobra.NoArgs,
	RunE:  runLangShow,
}

var langSetCmd = &cobra.Command{
	Use:   "set [code]",
	Short: "Set the preferred language",
	Args:  cobra.ExactArgs(1),
	RunE:  runLangSet,
}

var langListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported languages",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("  %-4s %s\n", domain.DefaultLanguage, domain.LanguageName(domain.DefaultLanguage))
		for _, l := range domain.LanguageCodes() {
			cmd.Printf("  %-4s %s\n", l.Code, l.Name)
		}
	},
}

func init() {
	langCmd.AddCommand(langShowCmd)
	langCmd.AddCommand(langSetCmd)
	langCmd.AddCommand(langListCmd)
	rootCmd.AddCommand(langCmd)
}

func runLangShow(cmd *cobra.Command, _ []string) error {
	if preferencesService == nil {
		return errors.New("preferences service not configured")
	}

	code, err := preferencesService.Language(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get language: %w", err)
	}

	cmd.Printf("Preferred language: %s (%s)\n", domain.LanguageName(code), code)
	return nil
}

func runLangSet(cmd *cobra.Command, args []string) error {
	if preferencesService == nil {
		return errors.New("preferences service not configured")
	}

	if err := preferencesService.SetLanguage(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to set language: %w", err)
	}

	cmd.Printf("Preferred language set to %s.\n", domain.LanguageName(args[0]))
	return nil
}
