package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/immigraid/internal/core/domain"
	"github.com/custodia-labs/immigraid/internal/core/ports/driving"
)

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	forms []domain.ResolvedForm
	form  *domain.ResolvedForm
	plan  *driving.DownloadPlan
	err   error

	planFormID string
	planLang   string
}

func (m *mockCatalogService) List(_ context.Context) ([]domain.ResolvedForm, error) {
	return m.forms, m.err
}

func (m *mockCatalogService) Get(_ context.Context, _ string) (*domain.ResolvedForm, error) {
	return m.form, m.err
}

func (m *mockCatalogService) Variants(_ context.Context, _, _ string) ([]domain.LanguageVariant, error) {
	if m.plan == nil {
		return nil, m.err
	}
	return m.plan.Variants, m.err
}

func (m *mockCatalogService) PlanDownload(_ context.Context, formID, lang string) (*driving.DownloadPlan, error) {
	m.planFormID, m.planLang = formID, lang
	return m.plan, m.err
}

func (m *mockCatalogService) Reload(_ context.Context) error {
	return m.err
}

// mockPathwayService is a mock implementation of driving.PathwayService.
type mockPathwayService struct {
	pathways []domain.Pathway
	pathway  *domain.Pathway
	err      error
}

func (m *mockPathwayService) List(_ context.Context) ([]domain.Pathway, error) {
	return m.pathways, m.err
}

func (m *mockPathwayService) Get(_ context.Context, _ string) (*domain.Pathway, error) {
	return m.pathway, m.err
}

// mockAssistantService is a mock implementation of driving.AssistantService.
type mockAssistantService struct {
	sessionID string
	report    *driving.UploadReport
	answer    *domain.Answer
	err       error

	uploadedName    string
	uploadedSession string
	askedSession    string
	askedQuestion   string
}

func (m *mockAssistantService) Probe(_ context.Context) bool {
	return m.err == nil
}

func (m *mockAssistantService) NewSession(_ context.Context) (string, error) {
	return m.sessionID, nil
}

func (m *mockAssistantService) Session(_ context.Context, id string) (*domain.DocumentSession, error) {
	return domain.NewDocumentSession(id), nil
}

func (m *mockAssistantService) Upload(
	_ context.Context, _, _ string, _ io.ReadSeeker,
) (*domain.UploadResult, error) {
	if m.report == nil {
		return nil, m.err
	}
	return &m.report.Upload, m.err
}

func (m *mockAssistantService) Analyze(
	_ context.Context, _ string, _ domain.AnalysisRequest,
) (*domain.AnalysisResult, error) {
	if m.report == nil {
		return nil, m.err
	}
	return m.report.Analysis, m.err
}

func (m *mockAssistantService) Ask(_ context.Context, sessionID, question string) (*domain.Answer, error) {
	m.askedSession, m.askedQuestion = sessionID, question
	return m.answer, m.err
}

func (m *mockAssistantService) UploadAndAnalyze(
	_ context.Context, sessionID, filename string, _ io.ReadSeeker,
) (*driving.UploadReport, error) {
	m.uploadedSession, m.uploadedName = sessionID, filename
	return m.report, m.err
}
