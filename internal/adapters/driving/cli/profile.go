package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your profile",
	Long:  `Your profile is used to pre-fill forms. It is stored locally.`,
	RunE:  runProfileShow,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile and onboarding progress",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set [field=value]...",
	Short: "Set profile fields",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProfileSet,
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	if preferencesService == nil {
		return errors.New("preferences service not configured")
	}

	ctx := cmd.Context()
	profile, err := preferencesService.Profile(ctx)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	progress, err := preferencesService.Progress(ctx)
	if err != nil {
		return fmt.Errorf("failed to get progress: %w", err)
	}

	cmd.Println("Profile")
	cmd.Println("=======")
	if len(profile) == 0 {
		cmd.Println("  (empty) Use 'immigraid profile set name=...' to start.")
	} else {
		keys := make([]string, 0, len(profile))
		for k := range profile {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			cmd.Printf("  %s: %s\n", k, profile[k])
		}
	}

	cmd.Println()
	cmd.Printf("Progress: %d of %d steps (%d%%)\n",
		progress.Completed, progress.Completed+progress.Remaining, progress.Percent)
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	if preferencesService == nil {
		return errors.New("preferences service not configured")
	}

	values, err := parseAssignments(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	profile, err := preferencesService.Profile(ctx)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	for k, v := range values {
		profile[k] = v
	}

	if err := preferencesService.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	cmd.Printf("Profile updated (%d fields).\n", len(profile))
	return nil
}
