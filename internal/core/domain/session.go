package domain

import "time"

// SessionState is a state of the document Q&A state machine.
//
//	NoDocument -> Uploading -> Ready(id)
//	Uploading  -> NoDocument            (failed upload)
//	Ready      -> Analyzing -> Ready
//	Ready      -> Asking    -> Ready
type SessionState string

// Session states.
const (
	SessionNoDocument SessionState = "no_document"
	SessionUploading  SessionState = "uploading"
	SessionReady      SessionState = "ready"
	SessionAnalyzing  SessionState = "analyzing"
	SessionAsking     SessionState = "asking"
)

// IsTransient returns true for the states that only exist while a request is in flight.
func (s SessionState) IsTransient() bool {
	switch s {
	case SessionUploading, SessionAnalyzing, SessionAsking:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s SessionState) String() string {
	return string(s)
}

// DocumentSession holds the handle returned by the most recent successful
// upload. Analyze and ask operations require a Ready session.
type DocumentSession struct {
	// ID identifies the session (one per user, tab or CLI profile).
	ID string `json:"id"`

	// DocumentID is the handle issued by the analysis service.
	DocumentID string `json:"document_id,omitempty"`

	// DocumentType is the form type the service detected on upload.
	DocumentType string `json:"document_type,omitempty"`

	// PageCount is the number of pages reported on upload.
	PageCount int `json:"page_count,omitempty"`

	// State is the last persisted state; transient states are never stored.
	State SessionState `json:"state"`

	// UpdatedAt is when the session last changed.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDocumentSession creates an empty session with no document.
func NewDocumentSession(id string) *DocumentSession {
	return &DocumentSession{
		ID:    id,
		State: SessionNoDocument,
	}
}

// IsReady returns true if analyze and ask operations may run.
func (s *DocumentSession) IsReady() bool {
	return s != nil && s.State == SessionReady && s.DocumentID != ""
}

// Attach records a successful upload, overwriting any previous handle.
func (s *DocumentSession) Attach(result UploadResult, now time.Time) {
	s.DocumentID = result.DocumentID
	s.DocumentType = result.DocumentType
	s.PageCount = result.PageCount
	s.State = SessionReady
	s.UpdatedAt = now
}

// Clear drops the document handle.
func (s *DocumentSession) Clear(now time.Time) {
	s.DocumentID = ""
	s.DocumentType = ""
	s.PageCount = 0
	s.State = SessionNoDocument
	s.UpdatedAt = now
}
