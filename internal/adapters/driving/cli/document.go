package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/immigraid/internal/core/domain"
	"github.com/custodia-labs/immigraid/internal/core/services"
	"github.com/custodia-labs/immigraid/internal/logger"
)

var documentCmd = &cobra.Command{
	Use:     "doc",
	Aliases: []string{"document"},
	Short:   "Ask questions about your documents",
	Long: `Upload a document to the analysis service and ask questions about it.

The CLI keeps one document session between runs. Each upload replaces the
session's document.`,
}

var documentProbeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check the analysis service is reachable",
	Args:  cobra.NoArgs,
	RunE:  runDocumentProbe,
}

var documentUploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload and analyse a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentUpload,
}

var documentAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyse the current document",
	Args:  cobra.NoArgs,
	RunE:  runDocumentAnalyze,
}

var documentAskCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the current document",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDocumentAsk,
}

var documentStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current document session",
	Args:  cobra.NoArgs,
	RunE:  runDocumentStatus,
}

var documentResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start a new document session",
	Args:  cobra.NoArgs,
	RunE:  runDocumentReset,
}

// Flags for the analyze command.
var (
	analysisType      string
	analysisQuestions []string
)

func init() {
	documentAnalyzeCmd.Flags().StringVarP(&analysisType, "type", "t", domain.AnalysisComprehensive,
		"Analysis type")
	documentAnalyzeCmd.Flags().StringArrayVarP(&analysisQuestions, "question", "q", nil,
		"Question to include in the analysis (repeatable)")

	documentCmd.AddCommand(documentProbeCmd)
	documentCmd.AddCommand(documentUploadCmd)
	documentCmd.AddCommand(documentAnalyzeCmd)
	documentCmd.AddCommand(documentAskCmd)
	documentCmd.AddCommand(documentStatusCmd)
	documentCmd.AddCommand(documentResetCmd)
	rootCmd.AddCommand(documentCmd)
}

func requireDocumentServices() error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}
	if preferencesService == nil {
		return errors.New("preferences service not configured")
	}
	return nil
}

func runDocumentProbe(cmd *cobra.Command, _ []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	if !assistantService.Probe(cmd.Context()) {
		return errors.New("analysis service is not reachable")
	}
	cmd.Println("Analysis service is reachable.")
	return nil
}

func runDocumentUpload(cmd *cobra.Command, args []string) error {
	if err := requireDocumentServices(); err != nil {
		return err
	}

	ctx := cmd.Context()
	sid, err := currentSession(ctx)
	if err != nil {
		return err
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	cmd.Printf("Uploading %s...\n", filepath.Base(path))
	report, err := assistantService.UploadAndAnalyze(ctx, sid, filepath.Base(path), f)
	if report == nil {
		return fmt.Errorf("failed to upload document: %w", err)
	}
	if err != nil {
		logger.Warn("document uploaded but analysis failed: %v", err)
	}

	cmd.Println()
	cmd.Println(services.FormatUploadReport(report))
	return nil
}

func runDocumentAnalyze(cmd *cobra.Command, _ []string) error {
	if err := requireDocumentServices(); err != nil {
		return err
	}

	ctx := cmd.Context()
	sid, err := currentSession(ctx)
	if err != nil {
		return err
	}

	result, err := assistantService.Analyze(ctx, sid, domain.AnalysisRequest{
		AnalysisType: analysisType,
		Questions:    analysisQuestions,
	})
	if errors.Is(err, domain.ErrNoDocumentSession) {
		return errors.New("no document uploaded: run 'immigraid doc upload <file>' first")
	}
	if err != nil {
		return fmt.Errorf("failed to analyse document: %w", err)
	}

	cmd.Printf("Summary:\n%s\n", result.Summary)
	if len(result.KeyInformation) > 0 {
		keys := make([]string, 0, len(result.KeyInformation))
		for k := range result.KeyInformation {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		cmd.Println("\nKey Information:")
		for _, k := range keys {
			cmd.Printf("  %s: %s\n", k, result.KeyInformation[k])
		}
	}
	if result.Recommendations != "" {
		cmd.Printf("\nRecommendations:\n%s\n", result.Recommendations)
	}
	return nil
}

func runDocumentAsk(cmd *cobra.Command, args []string) error {
	if err := requireDocumentServices(); err != nil {
		return err
	}

	ctx := cmd.Context()
	sid, err := currentSession(ctx)
	if err != nil {
		return err
	}

	answer, err := assistantService.Ask(ctx, sid, strings.Join(args, " "))
	if errors.Is(err, domain.ErrNoDocumentSession) {
		return errors.New("no document uploaded: run 'immigraid doc upload <file>' first")
	}
	if err != nil {
		return fmt.Errorf("failed to ask question: %w", err)
	}

	cmd.Println(services.FormatAnswer(answer))
	return nil
}

func runDocumentStatus(cmd *cobra.Command, _ []string) error {
	if err := requireDocumentServices(); err != nil {
		return err
	}

	ctx := cmd.Context()
	sid, err := currentSession(ctx)
	if err != nil {
		return err
	}

	session, err := assistantService.Session(ctx, sid)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	cmd.Printf("Session: %s\n", session.ID)
	cmd.Printf("  State:    %s\n", session.State)
	if session.IsReady() {
		cmd.Printf("  Document: %s\n", session.DocumentID)
		cmd.Printf("  Type:     %s\n", session.DocumentType)
		cmd.Printf("  Pages:    %d\n", session.PageCount)
	}
	if !session.UpdatedAt.IsZero() {
		cmd.Printf("  Updated:  %s\n", session.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runDocumentReset(cmd *cobra.Command, _ []string) error {
	if err := requireDocumentServices(); err != nil {
		return err
	}

	ctx := cmd.Context()
	id, err := assistantService.NewSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	if err := preferencesService.SetCurrentSession(ctx, id); err != nil {
		return fmt.Errorf("failed to save current session: %w", err)
	}

	cmd.Printf("Started new document session %s.\n", id)
	return nil
}
