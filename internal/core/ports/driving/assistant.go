package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/immigraid/internal/core/domain"
)

// AssistantService mediates the document Q&A operations of one session.
// Every operation names its session explicitly; sessions never share a handle.
type AssistantService interface {
	// Probe reports whether the analysis service is reachable.
	// Failures are swallowed and reported as false.
	Probe(ctx context.Context) bool

	// NewSession creates an empty session and returns its id.
	NewSession(ctx context.Context) (string, error)

	// Session returns the current state of a session.
	Session(ctx context.Context, sessionID string) (*domain.DocumentSession, error)

	// Upload sends a document and makes its handle the session's current one.
	Upload(ctx context.Context, sessionID, filename string, content io.ReadSeeker) (*domain.UploadResult, error)

	// Analyze analyses the session's current document.
	// Returns domain.ErrNoDocumentSession if no upload has succeeded.
	Analyze(ctx context.Context, sessionID string, req domain.AnalysisRequest) (*domain.AnalysisResult, error)

	// Ask answers a question about the session's current document.
	// Returns domain.ErrNoDocumentSession if no upload has succeeded.
	Ask(ctx context.Context, sessionID, question string) (*domain.Answer, error)

	// UploadAndAnalyze uploads a document and runs a comprehensive analysis.
	UploadAndAnalyze(ctx context.Context, sessionID, filename string, content io.ReadSeeker) (*UploadReport, error)
}

// UploadReport combines an upload with its follow-up analysis.
type UploadReport struct {
	Upload   domain.UploadResult    `json:"upload"`
	Analysis *domain.AnalysisResult `json:"analysis,omitempty"`
}

// ChatService produces assistant replies to chat messages.
type ChatService interface {
	// Reply answers a message in the given language. When the session has a
	// document and the message is a question, the analysis service is asked first.
	Reply(ctx context.Context, sessionID, lang, message string) (string, error)
}
