package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/immigraid/internal/adapters/driven/reference"
	"github.com/custodia-labs/immigraid/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/immigraid/internal/core/domain"
	"github.com/custodia-labs/immigraid/internal/core/services"
)

const formsBase = "https://www.uscis.gov/sites/default/files/document/forms/"

// stubCatalogSource serves fixed records and counts loads.
type stubCatalogSource struct {
	records []domain.FormRecord
	loads   atomic.Int32
}

func (s *stubCatalogSource) Load(_ context.Context) ([]domain.FormRecord, error) {
	s.loads.Add(1)
	return s.records, nil
}

// fakeAnalysis stands in for the remote document-analysis service.
type fakeAnalysis struct {
	pingErr    error
	uploadErr  error
	analyzeErr error
	uploaded   string
	lastReq    domain.AnalysisRequest
}

func (f *fakeAnalysis) Ping(_ context.Context) error { return f.pingErr }

func (f *fakeAnalysis) Upload(_ context.Context, filename string, content io.Reader) (*domain.UploadResult, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	data, _ := io.ReadAll(content)
	f.uploaded = filename + ":" + string(data)
	return &domain.UploadResult{DocumentID: "doc-7", DocumentType: "Passport", PageCount: 2, ConfidenceScore: 0.91}, nil
}

func (f *fakeAnalysis) Analyze(_ context.Context, _ string, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	f.lastReq = req
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return &domain.AnalysisResult{
		Summary:         "Valid US passport.",
		KeyInformation:  map[string]string{"expires": "2031-05-01", "name": "Ana Lima"},
		Recommendations: "Renew six months before expiry.",
	}, nil
}

func (f *fakeAnalysis) Ask(_ context.Context, documentID, question string) (*domain.Answer, error) {
	return &domain.Answer{Answer: documentID + ": " + question, Confidence: 0.75}, nil
}

// testServices holds the services and fakes wired into the commands.
type testServices struct {
	catalog     *stubCatalogSource
	analysis    *fakeAnalysis
	assistant   *services.AssistantService
	preferences *services.PreferencesService
	settings    *services.SettingsService
}

// setupTestServices wires real services over in-memory stores and returns
// a cleanup that restores the previous services.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	source := &stubCatalogSource{records: []domain.FormRecord{
		{
			Name: "Form I-765 - Employment Authorization",
			PDFs: []string{formsBase + "i-765.pdf", formsBase + "i-765_ES.pdf", formsBase + "i-765_CH.pdf"},
		},
		{Name: "Form I-130, Petition for Alien Relative", PDFs: []string{formsBase + "i-130.pdf"}},
		{Name: "Form N-400, Application for Naturalization"},
	}}
	analysis := &fakeAnalysis{}
	store := reference.MustLoad()

	ts := &testServices{
		catalog:     source,
		analysis:    analysis,
		assistant:   services.NewAssistantService(analysis, nil, memory.NewSessionStore()),
		preferences: services.NewPreferencesService(memory.NewStateStore()),
		settings:    services.NewSettingsService(memory.NewConfigStore()),
	}

	saved := Services{
		Catalog:     catalogService,
		Pathways:    pathwayService,
		Assistant:   assistantService,
		Chat:        chatService,
		Preferences: preferencesService,
		Settings:    settingsService,
	}
	savedTerminal, savedPicker, savedChatTUI := isTerminal, pickVariant, runChatTUI
	savedServe, savedMCP, savedRunAPI := serveConfig, mcpConfig, runAPI

	SetServices(&Services{
		Catalog:     services.NewCatalogService(source, services.DefaultLookupTables()),
		Pathways:    services.NewPathwayService(store),
		Assistant:   ts.assistant,
		Chat:        services.NewChatService(ts.assistant, store),
		Preferences: ts.preferences,
		Settings:    ts.settings,
	})
	isTerminal = func() bool { return false }

	t.Cleanup(func() {
		SetServices(&saved)
		isTerminal, pickVariant, runChatTUI = savedTerminal, savedPicker, savedChatTUI
		serveConfig, mcpConfig, runAPI = savedServe, savedMCP, savedRunAPI
	})
	return ts
}

// clearServices unsets every service for the duration of the test.
func clearServices(t *testing.T) {
	t.Helper()
	saved := Services{
		Catalog:     catalogService,
		Pathways:    pathwayService,
		Assistant:   assistantService,
		Chat:        chatService,
		Preferences: preferencesService,
		Settings:    settingsService,
	}
	SetServices(&Services{})
	t.Cleanup(func() { SetServices(&saved) })
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default so values do not leak
// between test executions of the shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func commandNames(cmd *cobra.Command) []string {
	commands := cmd.Commands()
	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.Name())
	}
	return names
}
