package domain

import "math"

// AnalysisComprehensive is the analysis type used after an upload.
const AnalysisComprehensive = "comprehensive"

// UploadResult is returned by the analysis service for an accepted upload.
type UploadResult struct {
	DocumentID      string  `json:"document_id"`
	DocumentType    string  `json:"document_type"`
	PageCount       int     `json:"page_count"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// ConfidencePercent returns the confidence score as a rounded percentage.
func (r UploadResult) ConfidencePercent() int {
	return toPercent(r.ConfidenceScore)
}

// AnalysisRequest asks the service to analyse the session's document.
type AnalysisRequest struct {
	// AnalysisType selects the analysis, e.g. "comprehensive".
	AnalysisType string

	// Questions optionally focuses the analysis.
	Questions []string
}

// AnalysisResult is the service's analysis of a document.
type AnalysisResult struct {
	Summary         string            `json:"summary"`
	KeyInformation  map[string]string `json:"key_information,omitempty"`
	Recommendations string            `json:"recommendations,omitempty"`
}

// Answer is the service's answer to a question about a document.
type Answer struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
}

// ConfidencePercent returns the confidence as a rounded integer percentage.
func (a Answer) ConfidencePercent() int {
	return toPercent(a.Confidence)
}

func toPercent(v float64) int {
	return int(math.Round(v * 100))
}
