package domain

import (
	"regexp"
	"strings"
)

// UnknownFormID is the id given to records whose name carries no form number.
const UnknownFormID = "unknown"

// formIDPattern matches USCIS form numbers such as "i-765", "n-400" or "g-1145".
var formIDPattern = regexp.MustCompile(`(?i)[ing]-\d+`)

// FormRecord is an external, read-only description of one government form.
// Records are loaded from the catalog data source and never mutated.
type FormRecord struct {
	// Name is the display name, e.g. "Form I-765 - Employment Authorization".
	Name string `json:"name"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// PDFs lists every downloadable document link, in catalog order.
	PDFs []string `json:"pdfs"`

	// DetailURL points to the form's landing page.
	DetailURL string `json:"detail_url,omitempty"`
}

// ID extracts the canonical form id from the record name.
func (r FormRecord) ID() string {
	return ExtractFormID(r.Name)
}

// ExtractFormID returns the first lowercase form id found in name, or
// UnknownFormID when none is present.
func ExtractFormID(name string) string {
	match := formIDPattern.FindString(name)
	if match == "" {
		return UnknownFormID
	}
	return strings.ToLower(match)
}

// Priority ranks how urgently a form should be completed.
type Priority string

// Available priorities.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid returns true if the priority is recognised.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p Priority) String() string {
	return string(p)
}

// FormStatus tracks the user's progress on a form.
type FormStatus string

// Available form statuses.
const (
	FormStatusPending    FormStatus = "pending"
	FormStatusInProgress FormStatus = "in-progress"
	FormStatusCompleted  FormStatus = "completed"
)

// Label returns the capitalised status with dashes replaced, e.g. "In progress".
func (s FormStatus) Label() string {
	if s == "" {
		return ""
	}
	text := strings.Replace(string(s), "-", " ", 1)
	return strings.ToUpper(text[:1]) + text[1:]
}

// ResolvedForm is the UI-ready structure derived from a FormRecord plus the
// static lookup tables. It is built on demand and never persisted.
type ResolvedForm struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      FormStatus `json:"status"`
	Fields      []string   `json:"fields"`
	Category    string     `json:"category"`
	Priority    Priority   `json:"priority"`
	Stage       string     `json:"stage"`

	// PDFURL is the main document link; empty when the record has no links.
	PDFURL string `json:"pdf_url,omitempty"`

	// AllPDFs is every link from the record, in catalog order.
	AllPDFs []string `json:"all_pdfs,omitempty"`

	DetailURL string `json:"detail_url,omitempty"`
}

// HasDocuments returns true if at least one document link is known.
func (f *ResolvedForm) HasDocuments() bool {
	return len(f.AllPDFs) > 0
}

// Basename returns the last path segment of a URL or path.
func Basename(url string) string {
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}
