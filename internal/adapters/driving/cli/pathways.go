package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var pathwaysCmd = &cobra.Command{
	Use:   "pathways",
	Short: "Explore immigration pathways",
	Long:  `List the immigration pathways and the forms each one requires.`,
}

var pathwaysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pathways",
	Args:  cobra.NoArgs,
	RunE:  runPathwaysList,
}

var pathwaysShowCmd = &cobra.Command{
	Use:   "show [key]",
	Short: "Show a pathway and its required forms",
	Args:  cobra.ExactArgs(1),
	RunE:  runPathwaysShow,
}

func init() {
	pathwaysCmd.AddCommand(pathwaysListCmd)
	pathwaysCmd.AddCommand(pathwaysShowCmd)
	rootCmd.AddCommand(pathwaysCmd)
}

func runPathwaysList(cmd *cobra.Command, _ []string) error {
	if pathwayService == nil {
		return errors.New("pathway service not configured")
	}

	pathways, err := pathwayService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list pathways: %w", err)
	}

	cmd.Println("Immigration pathways:")
	cmd.Println()
	for i := range pathways {
		p := &pathways[i]
		cmd.Printf("  %-18s %s [%s]\n", p.Key, p.Name, p.Availability())
		cmd.Printf("  %-18s %s\n", "", p.Description)
	}
	return nil
}

func runPathwaysShow(cmd *cobra.Command, args []string) error {
	if pathwayService == nil {
		return errors.New("pathway service not configured")
	}

	p, err := pathwayService.Get(cmd.Context(), strings.ToLower(args[0]))
	if err != nil {
		return fmt.Errorf("failed to get pathway: %w", err)
	}

	cmd.Printf("%s\n\n", p.Name)
	cmd.Printf("  %s\n\n", p.Description)
	cmd.Printf("  Status:      %s (%s)\n", p.Status, p.Availability())
	cmd.Printf("  Eligibility: %s\n", p.Eligibility)
	cmd.Printf("  Risks:       %s\n", p.Risks)

	if len(p.RequiredForms) > 0 {
		cmd.Println("\n  Required forms:")
		for _, f := range p.RequiredForms {
			cmd.Printf("    %-8s %s (%s priority, %s)\n", f.ID, f.Name, f.Priority, f.Status.Label())
		}
	}
	return nil
}
