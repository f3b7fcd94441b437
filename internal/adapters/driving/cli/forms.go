package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/immigraid/internal/adapters/driving/tui"
	"github.com/custodia-labs/immigraid/internal/core/domain"
	"github.com/custodia-labs/immigraid/internal/core/ports/driving"
)

const fillFormFirst = "Please fill out the form first before downloading."

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "Browse USCIS forms",
	Long:  `List the key immigration forms, show their details and download them.`,
}

var formsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List key forms",
	Args:  cobra.NoArgs,
	RunE:  runFormsList,
}

var formsShowCmd = &cobra.Command{
	Use:   "show [form-id]",
	Short: "Show form details",
	Args:  cobra.ExactArgs(1),
	RunE:  runFormsShow,
}

var formsVariantsCmd = &cobra.Command{
	Use:   "variants [form-id]",
	Short: "List language versions of a form",
	Args:  cobra.ExactArgs(1),
	RunE:  runFormsVariants,
}

var formsDownloadCmd = &cobra.Command{
	Use:   "download [form-id]",
	Short: "Find the document to download",
	Long: `Find the document for a form in your language.

When the form exists in several languages, an interactive picker is shown
on a terminal. Otherwise the choices are listed; pick one with --choice.
Forms without any document, or missing from the catalog, fall back to the
answers saved with 'forms fill'.`,
	Args: cobra.ExactArgs(1),
	RunE: runFormsDownload,
}

var formsFillCmd = &cobra.Command{
	Use:   "fill [form-id] [field=value]...",
	Short: "Save answers for a form",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runFormsFill,
}

var formsSavedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List forms with saved answers",
	Args:  cobra.NoArgs,
	RunE:  runFormsSaved,
}

// downloadChoice is a flag for the download command.
var downloadChoice int

func init() {
	formsDownloadCmd.Flags().IntVarP(&downloadChoice, "choice", "c", 0,
		"Pick the Nth language variant without prompting")

	formsCmd.AddCommand(formsListCmd)
	formsCmd.AddCommand(formsShowCmd)
	formsCmd.AddCommand(formsVariantsCmd)
	formsCmd.AddCommand(formsDownloadCmd)
	formsCmd.AddCommand(formsFillCmd)
	formsCmd.AddCommand(formsSavedCmd)
	rootCmd.AddCommand(formsCmd)
}

func runFormsList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	forms, err := catalogService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list forms: %w", err)
	}

	if len(forms) == 0 {
		cmd.Println("No forms found.")
		return nil
	}

	cmd.Println("Key forms:")
	cmd.Println()
	for i := range forms {
		f := &forms[i]
		cmd.Printf("  %-8s %s\n", f.ID, f.Name)
		cmd.Printf("           %s · %s priority · %s\n", f.Category, f.Priority, f.Status.Label())
	}
	cmd.Println()
	cmd.Printf("Total: %d forms\n", len(forms))
	return nil
}

func runFormsShow(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	form, err := catalogService.Get(cmd.Context(), strings.ToLower(args[0]))
	if err != nil {
		return fmt.Errorf("failed to get form: %w", err)
	}

	cmd.Printf("Form: %s\n\n", strings.ToUpper(form.ID))
	cmd.Printf("  Name:        %s\n", form.Name)
	cmd.Printf("  Description: %s\n", form.Description)
	cmd.Printf("  Category:    %s\n", form.Category)
	cmd.Printf("  Priority:    %s\n", form.Priority)
	cmd.Printf("  Stage:       %s\n", form.Stage)
	cmd.Printf("  Status:      %s\n", form.Status.Label())
	if len(form.Fields) > 0 {
		cmd.Printf("  Fields:      %s\n", strings.Join(form.Fields, ", "))
	}
	if form.PDFURL != "" {
		cmd.Printf("  Document:    %s\n", form.PDFURL)
	}
	if form.DetailURL != "" {
		cmd.Printf("  Details:     %s\n", form.DetailURL)
	}
	if n := len(form.AllPDFs); n > 1 {
		cmd.Printf("\n  %d documents available. Run 'immigraid forms variants %s'.\n", n, form.ID)
	}
	return nil
}

func runFormsVariants(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	lang, err := language(cmd.Context())
	if err != nil {
		return err
	}

	formID := strings.ToLower(args[0])
	variants, err := catalogService.Variants(cmd.Context(), formID, lang)
	if err != nil {
		return fmt.Errorf("failed to get variants: %w", err)
	}

	if len(variants) == 0 {
		cmd.Printf("No language versions found for %s.\n", strings.ToUpper(formID))
		return nil
	}

	printVariants(cmd, formID, variants)
	return nil
}

func runFormsDownload(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	ctx := cmd.Context()
	lang, err := language(ctx)
	if err != nil {
		return err
	}

	formID := strings.ToLower(args[0])
	plan, err := catalogService.PlanDownload(ctx, formID, lang)
	if errors.Is(err, domain.ErrNoDocumentAvailable) || errors.Is(err, domain.ErrNotFound) {
		return downloadSavedData(cmd, formID)
	}
	if err != nil {
		return fmt.Errorf("failed to plan download: %w", err)
	}

	if !plan.NeedsChoice {
		cmd.Printf("Downloading %s from %s\n", strings.ToUpper(formID), plan.URL)
		return nil
	}

	variant, ok, err := chooseVariant(cmd, plan)
	if err != nil || !ok {
		return err
	}
	cmd.Printf("Downloading %s (%s) from %s\n", strings.ToUpper(formID), variant.LanguageName, variant.URL)
	return nil
}

// chooseVariant resolves a plan that needs a language choice. ok is false
// when the choices were only listed or the picker was cancelled.
func chooseVariant(cmd *cobra.Command, plan *driving.DownloadPlan) (domain.LanguageVariant, bool, error) {
	if downloadChoice > 0 {
		if downloadChoice > len(plan.Variants) {
			return domain.LanguageVariant{}, false, fmt.Errorf("%w: choice %d out of range (1-%d)",
				domain.ErrInvalidInput, downloadChoice, len(plan.Variants))
		}
		return plan.Variants[downloadChoice-1], true, nil
	}

	if !isTerminal() {
		printVariants(cmd, plan.FormID, plan.Variants)
		cmd.Println()
		cmd.Println("Re-run with --choice N to pick one.")
		return domain.LanguageVariant{}, false, nil
	}

	variant, err := pickVariant(cmd.Context(), plan.FormID, plan.Variants)
	if errors.Is(err, tui.ErrSelectionCancelled) {
		cmd.Println("Download cancelled.")
		return domain.LanguageVariant{}, false, nil
	}
	if err != nil {
		return domain.LanguageVariant{}, false, err
	}
	return variant, true, nil
}

// downloadSavedData prints the answers saved for a form with no document.
func downloadSavedData(cmd *cobra.Command, formID string) error {
	if preferencesService == nil {
		cmd.Println(fillFormFirst)
		return nil
	}

	data, err := preferencesService.FormData(cmd.Context(), formID)
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Println(fillFormFirst)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read saved answers: %w", err)
	}

	cmd.Printf("Downloading %s...\n", strings.ToUpper(formID))
	return printJSON(cmd, data)
}

func runFormsFill(cmd *cobra.Command, args []string) error {
	if preferencesService == nil {
		return errors.New("preferences service not configured")
	}

	ctx := cmd.Context()
	formID := strings.ToLower(args[0])
	values, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}

	data, err := preferencesService.FormData(ctx, formID)
	if errors.Is(err, domain.ErrNotFound) {
		data = domain.FormData{}
	} else if err != nil {
		return fmt.Errorf("failed to read saved answers: %w", err)
	}
	for k, v := range values {
		data[k] = v
	}

	if err := preferencesService.SaveFormData(ctx, formID, data); err != nil {
		return fmt.Errorf("failed to save answers: %w", err)
	}

	cmd.Printf("Saved %d answers for %s.\n", len(values), strings.ToUpper(formID))
	return nil
}

func runFormsSaved(cmd *cobra.Command, _ []string) error {
	if preferencesService == nil {
		return errors.New("preferences service not configured")
	}

	ids, err := preferencesService.SavedForms(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list saved forms: %w", err)
	}

	if len(ids) == 0 {
		cmd.Println("No saved answers yet. Use 'immigraid forms fill'.")
		return nil
	}

	cmd.Println("Forms with saved answers:")
	for _, id := range ids {
		cmd.Printf("  %s\n", id)
	}
	return nil
}

func printVariants(cmd *cobra.Command, formID string, variants []domain.LanguageVariant) {
	cmd.Printf("%s is available in %d languages:\n\n", strings.ToUpper(formID), len(variants))
	for i, v := range variants {
		cmd.Printf("  %d. %s\n", i+1, v.Label())
		cmd.Printf("     %s\n", v.URL)
	}
}

// parseAssignments turns key=value arguments into a map.
func parseAssignments(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", domain.ErrInvalidInput, arg)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}
