package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/immigraid/internal/core/domain"
)

// AnalysisService is the external document-analysis backend.
// Implementations never retry; a non-success response is returned as a
// *domain.RemoteError.
type AnalysisService interface {
	// Ping checks the service root is reachable.
	Ping(ctx context.Context) error

	// Upload sends a document and returns the handle the service issued.
	Upload(ctx context.Context, filename string, content io.Reader) (*domain.UploadResult, error)

	// Analyze runs an analysis over a previously uploaded document.
	Analyze(ctx context.Context, documentID string, req domain.AnalysisRequest) (*domain.AnalysisResult, error)

	// Ask answers a free-text question about a previously uploaded document.
	Ask(ctx context.Context, documentID, question string) (*domain.Answer, error)
}

// PDFInspector validates a PDF locally before it is uploaded.
type PDFInspector interface {
	// PageCount validates the document and returns its number of pages.
	PageCount(content io.ReadSeeker) (int, error)
}
