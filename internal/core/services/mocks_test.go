package services

import (
	"context"
	"io"
	"sync"

	"github.com/custodia-labs/immigraid/internal/core/domain"
)

// mockCatalogSource implements driven.CatalogSource for testing.
type mockCatalogSource struct {
	records []domain.FormRecord
	err     error
	loads   int
}

func (m *mockCatalogSource) Load(_ context.Context) ([]domain.FormRecord, error) {
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

// mockAnalysis implements driven.AnalysisService for testing.
type mockAnalysis struct {
	mu sync.Mutex

	pingErr    error
	upload     *domain.UploadResult
	uploadErr  error
	analysis   *domain.AnalysisResult
	analyzeErr error
	answer     *domain.Answer
	askErr     error

	// uploadStarted and uploadRelease, when set, hold Upload open.
	uploadStarted chan struct{}
	uploadRelease chan struct{}

	uploadedNames  []string
	uploadedBodies []string
	analyzed       []string
	analyzeReqs    []domain.AnalysisRequest
	asked          []string
	questions      []string
}

func (m *mockAnalysis) Ping(_ context.Context) error {
	return m.pingErr
}

func (m *mockAnalysis) Upload(_ context.Context, filename string, content io.Reader) (*domain.UploadResult, error) {
	body, _ := io.ReadAll(content)

	m.mu.Lock()
	m.uploadedNames = append(m.uploadedNames, filename)
	m.uploadedBodies = append(m.uploadedBodies, string(body))
	m.mu.Unlock()

	if m.uploadStarted != nil {
		close(m.uploadStarted)
		<-m.uploadRelease
	}
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	result := *m.upload
	return &result, nil
}

func (m *mockAnalysis) Analyze(_ context.Context, documentID string, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	m.mu.Lock()
	m.analyzed = append(m.analyzed, documentID)
	m.analyzeReqs = append(m.analyzeReqs, req)
	m.mu.Unlock()

	if m.analyzeErr != nil {
		return nil, m.analyzeErr
	}
	return m.analysis, nil
}

func (m *mockAnalysis) Ask(_ context.Context, documentID, question string) (*domain.Answer, error) {
	m.mu.Lock()
	m.asked = append(m.asked, documentID)
	m.questions = append(m.questions, question)
	m.mu.Unlock()

	if m.askErr != nil {
		return nil, m.askErr
	}
	return m.answer, nil
}

// mockInspector implements driven.PDFInspector for testing. It consumes
// the whole reader like a real parser would.
type mockInspector struct {
	pages int
	err   error
}

func (m *mockInspector) PageCount(content io.ReadSeeker) (int, error) {
	_, _ = io.ReadAll(content)
	return m.pages, m.err
}

// mockResponses implements driven.ResponseSource for testing.
type mockResponses struct {
	rules    []domain.ResponseRule
	defaults []domain.LocalizedText
	sets     []domain.QuestionSet
}

func (m *mockResponses) Rules() []domain.ResponseRule       { return m.rules }
func (m *mockResponses) Defaults() []domain.LocalizedText   { return m.defaults }
func (m *mockResponses) QuestionSets() []domain.QuestionSet { return m.sets }

// mockPathways implements driven.PathwaySource for testing.
type mockPathways struct {
	pathways []domain.Pathway
	err      error
}

func (m *mockPathways) Pathways() ([]domain.Pathway, error) {
	return m.pathways, m.err
}
