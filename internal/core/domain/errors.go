package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedLanguage indicates a language code outside the supported set.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// Resolution Errors.

	// ErrNoDocumentAvailable indicates a form has no downloadable link at all.
	// Surfaced to the user as a warning, never as a hard failure.
	ErrNoDocumentAvailable = errors.New("no document available")

	// ErrChoiceRequired indicates several language variants exist and the
	// user must pick one before a download can start.
	ErrChoiceRequired = errors.New("language choice required")

	// Analysis Service Errors.

	// ErrNoDocumentSession indicates analyze or ask was called before a
	// successful upload. Recoverable by uploading a document.
	ErrNoDocumentSession = errors.New("no document uploaded")

	// ErrUploadFailed indicates the analysis service rejected an upload.
	ErrUploadFailed = errors.New("upload failed")

	// ErrAnalysisFailed indicates the analysis service rejected an analyze request.
	ErrAnalysisFailed = errors.New("analysis failed")

	// ErrQuestionFailed indicates the analysis service rejected a question.
	ErrQuestionFailed = errors.New("question failed")

	// ErrServiceUnavailable indicates the analysis service is not configured.
	ErrServiceUnavailable = errors.New("analysis service unavailable")
)

// RemoteError carries a non-success response from the analysis service.
// It matches its Kind with errors.Is, so callers can test for
// ErrUploadFailed and friends without unpacking the status.
type RemoteError struct {
	// Kind is one of ErrUploadFailed, ErrAnalysisFailed or ErrQuestionFailed.
	Kind error

	// Status is the HTTP status code.
	Status int

	// StatusText is the status line text (e.g. "Bad Request").
	StatusText string

	// Body is the response body, if one could be read.
	Body string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Kind, e.StatusText, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Kind, e.StatusText, e.Status)
}

// Unwrap returns the error kind.
func (e *RemoteError) Unwrap() error {
	return e.Kind
}
