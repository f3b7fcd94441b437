package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/immigraid/internal/core/domain"
	"github.com/custodia-labs/immigraid/internal/core/ports/driven"
	"github.com/custodia-labs/immigraid/internal/core/ports/driving"
	"github.com/custodia-labs/immigraid/internal/logger"
)

// Ensure AssistantService implements the interface.
var _ driving.AssistantService = (*AssistantService)(nil)

// AssistantService runs the document Q&A state machine for explicit sessions.
//
// Only NoDocument and Ready are persisted. Uploading, Analyzing and Asking
// are tracked in memory while a request is in flight. Concurrent uploads to
// one session are not serialised: the last response to arrive wins.
type AssistantService struct {
	analysis  driven.AnalysisService
	inspector driven.PDFInspector
	sessions  driven.SessionStore
	now       func() time.Time

	mu       sync.Mutex
	inflight map[string]domain.SessionState
}

// NewAssistantService creates an assistant service. analysis may be nil when
// no service is configured; inspector may be nil to skip the PDF pre-flight.
func NewAssistantService(
	analysis driven.AnalysisService,
	inspector driven.PDFInspector,
	sessions driven.SessionStore,
) *AssistantService {
	return &AssistantService{
		analysis:  analysis,
		inspector: inspector,
		sessions:  sessions,
		now:       time.Now,
		inflight:  make(map[string]domain.SessionState),
	}
}

// Probe reports whether the analysis service answers its liveness endpoint.
func (s *AssistantService) Probe(ctx context.Context) bool {
	if s.analysis == nil {
		return false
	}
	if err := s.analysis.Ping(ctx); err != nil {
		logger.Debug("analysis service probe failed: %v", err)
		return false
	}
	return true
}

// NewSession creates and stores an empty session.
func (s *AssistantService) NewSession(ctx context.Context) (string, error) {
	session := domain.NewDocumentSession(uuid.NewString())
	session.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return session.ID, nil
}

// Session returns the session with its in-flight state applied. Unknown
// ids yield an empty session.
func (s *AssistantService) Session(ctx context.Context, sessionID string) (*domain.DocumentSession, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state, ok := s.inflightState(sessionID); ok {
		session.State = state
	}
	return session, nil
}

// Upload sends content to the analysis service. A PDF inspector, when set,
// rejects files that are not PDFs before any network call. Success replaces
// the session's document unconditionally; any failure, a rejected file
// included, clears it.
func (s *AssistantService) Upload(
	ctx context.Context,
	sessionID, filename string,
	content io.ReadSeeker,
) (*domain.UploadResult, error) {
	if s.analysis == nil {
		return nil, domain.ErrServiceUnavailable
	}
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", domain.ErrInvalidInput)
	}

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	pages, err := s.inspect(content)
	if err != nil {
		s.clear(ctx, session)
		return nil, err
	}

	s.begin(sessionID, domain.SessionUploading)
	result, err := s.analysis.Upload(ctx, filename, content)
	s.end(sessionID)

	if err != nil {
		s.clear(ctx, session)
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}

	if result.PageCount == 0 && pages > 0 {
		result.PageCount = pages
	}

	session.Attach(*result, s.now())
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	logger.Info("session %s now holds document %s (%s, %d pages)",
		sessionID, result.DocumentID, result.DocumentType, result.PageCount)
	return result, nil
}

// Analyze analyses the session's current document. An empty analysis type
// defaults to a comprehensive analysis.
func (s *AssistantService) Analyze(
	ctx context.Context,
	sessionID string,
	req domain.AnalysisRequest,
) (*domain.AnalysisResult, error) {
	session, err := s.ready(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if req.AnalysisType == "" {
		req.AnalysisType = domain.AnalysisComprehensive
	}

	s.begin(sessionID, domain.SessionAnalyzing)
	defer s.end(sessionID)

	result, err := s.analysis.Analyze(ctx, session.DocumentID, req)
	if err != nil {
		return nil, fmt.Errorf("analyze document %s: %w", session.DocumentID, err)
	}
	return result, nil
}

// Ask answers a question about the session's current document.
func (s *AssistantService) Ask(ctx context.Context, sessionID, question string) (*domain.Answer, error) {
	session, err := s.ready(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}

	s.begin(sessionID, domain.SessionAsking)
	defer s.end(sessionID)

	answer, err := s.analysis.Ask(ctx, session.DocumentID, question)
	if err != nil {
		return nil, fmt.Errorf("ask about document %s: %w", session.DocumentID, err)
	}
	return answer, nil
}

// UploadAndAnalyze uploads a document and runs a comprehensive analysis on
// it. When only the analysis fails, the report still carries the upload.
func (s *AssistantService) UploadAndAnalyze(
	ctx context.Context,
	sessionID, filename string,
	content io.ReadSeeker,
) (*driving.UploadReport, error) {
	upload, err := s.Upload(ctx, sessionID, filename, content)
	if err != nil {
		return nil, err
	}

	report := &driving.UploadReport{Upload: *upload}
	analysis, err := s.Analyze(ctx, sessionID, domain.AnalysisRequest{AnalysisType: domain.AnalysisComprehensive})
	if err != nil {
		return report, err
	}
	report.Analysis = analysis
	return report, nil
}

// inspect counts PDF pages and rewinds content for the upload.
func (s *AssistantService) inspect(content io.ReadSeeker) (int, error) {
	if s.inspector == nil {
		return 0, nil
	}
	pages, err := s.inspector.PageCount(content)
	if err != nil {
		return 0, fmt.Errorf("%w: not a readable PDF: %v", domain.ErrInvalidInput, err)
	}
	if _, err := content.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("rewind upload: %w", err)
	}
	return pages, nil
}

// clear drops the session's document after a failed upload.
func (s *AssistantService) clear(ctx context.Context, session *domain.DocumentSession) {
	session.Clear(s.now())
	if err := s.sessions.Save(ctx, session); err != nil {
		logger.Warn("failed to clear session %s: %v", session.ID, err)
	}
}

// ready loads a session and checks that analyze and ask may run on it.
func (s *AssistantService) ready(ctx context.Context, sessionID string) (*domain.DocumentSession, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state, ok := s.inflightState(sessionID); ok && state == domain.SessionUploading {
		return nil, domain.ErrNoDocumentSession
	}
	if !session.IsReady() {
		return nil, domain.ErrNoDocumentSession
	}
	if s.analysis == nil {
		return nil, domain.ErrServiceUnavailable
	}
	return session, nil
}

func (s *AssistantService) load(ctx context.Context, sessionID string) (*domain.DocumentSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewDocumentSession(sessionID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	return session, nil
}

func (s *AssistantService) begin(sessionID string, state domain.SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight[sessionID] = state
}

func (s *AssistantService) end(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, sessionID)
}

func (s *AssistantService) inflightState(sessionID string) (domain.SessionState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.inflight[sessionID]
	return state, ok
}
