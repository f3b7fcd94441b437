// Package httpclient provides the analysis service adapter over HTTP.
//
// The service exposes four endpoints:
//
//	GET  /                  liveness probe
//	POST /upload-pdf        multipart upload, field "file"
//	POST /analyze-document  JSON {document_id, analysis_type, questions}
//	POST /ask-question      JSON {document_id, question}
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/immigraid/internal/core/domain"
	"github.com/custodia-labs/immigraid/internal/core/ports/driven"
	"github.com/custodia-labs/immigraid/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.AnalysisService = (*Client)(nil)

// DefaultBaseURL is where the analysis service listens by default.
const DefaultBaseURL = "http://localhost:8000"

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 4 << 10

// Config holds configuration for the analysis client.
type Config struct {
	// BaseURL is the service root (default: http://localhost:8000).
	BaseURL string

	// Timeout bounds each request. Zero means no client-side timeout.
	Timeout time.Duration

	// RequestsPerSecond throttles outbound calls. Zero disables throttling.
	RequestsPerSecond float64

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to the document analysis service.
type Client struct {
	client   *http.Client
	baseURL  string
	limiter  *rate.Limiter
}

// analyzeRequest is the /analyze-document request format.
type analyzeRequest struct {
	DocumentID   string   `json:"document_id"`
	AnalysisType string   `json:"analysis_type"`
	Questions    []string `json:"questions"`
}

// analyzeResponse is the /analyze-document response format.
type analyzeResponse struct {
	Analysis struct {
		Summary         string          `json:"summary"`
		KeyInformation  json.RawMessage `json:"key_information"`
		Recommendations json.RawMessage `json:"recommendations"`
	} `json:"analysis"`

	// Some service versions put recommendations beside the analysis.
	Recommendations json.RawMessage `json:"recommendations"`
}

// askRequest is the /ask-question request format.
type askRequest struct {
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
}

// NewClient creates a new analysis client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		client:   client,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		limiter:  newLimiter(cfg.RequestsPerSecond),
	}
}

// Ping checks that the service answers its root endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("analysis service not reachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("analysis service returned status %d", resp.StatusCode)
	}
	return nil
}

// Upload sends a document as multipart form data.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (*domain.UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finish form: %w", err)
	}

	var result domain.UploadResult
	if err := c.do(ctx, "/upload-pdf", writer.FormDataContentType(), &body, domain.ErrUploadFailed, &result); err != nil {
		return nil, err
	}

	logger.Debug("uploaded %s: document %s (%s)", filename, result.DocumentID, result.DocumentType)
	return &result, nil
}

// Analyze requests an analysis of an uploaded document.
func (c *Client) Analyze(
	ctx context.Context,
	documentID string,
	req domain.AnalysisRequest,
) (*domain.AnalysisResult, error) {
	questions := req.Questions
	if questions == nil {
		questions = []string{}
	}
	payload, err := json.Marshal(analyzeRequest{
		DocumentID:   documentID,
		AnalysisType: req.AnalysisType,
		Questions:    questions,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var resp analyzeResponse
	if err := c.do(ctx, "/analyze-document", "application/json", bytes.NewReader(payload),
		domain.ErrAnalysisFailed, &resp); err != nil {
		return nil, err
	}

	recommendations := decodeText(resp.Analysis.Recommendations)
	if recommendations == "" {
		recommendations = decodeText(resp.Recommendations)
	}

	return &domain.AnalysisResult{
		Summary:         resp.Analysis.Summary,
		KeyInformation:  decodeKeyInformation(resp.Analysis.KeyInformation),
		Recommendations: recommendations,
	}, nil
}

// Ask asks a question about an uploaded document.
func (c *Client) Ask(ctx context.Context, documentID, question string) (*domain.Answer, error) {
	payload, err := json.Marshal(askRequest{DocumentID: documentID, Question: question})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var answer domain.Answer
	if err := c.do(ctx, "/ask-question", "application/json", bytes.NewReader(payload),
		domain.ErrQuestionFailed, &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

// do posts body to path and decodes a JSON response into out. Non-2xx
// responses become a *domain.RemoteError of the given kind.
func (c *Client) do(ctx context.Context, path, contentType string, body io.Reader, kind error, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: send request: %v", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &domain.RemoteError{
			Kind:       kind,
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", kind, err)
	}
	return nil
}

// decodeKeyInformation accepts an object of scalar values or a list of
// strings; the service has returned both shapes.
func decodeKeyInformation(raw json.RawMessage) map[string]string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil {
		out := make(map[string]string, len(obj))
		for k, v := range obj {
			out[k] = stringify(v)
		}
		return out
	}

	var list []any
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make(map[string]string, len(list))
		for i, v := range list {
			out[fmt.Sprintf("%d", i+1)] = stringify(v)
		}
		return out
	}
	return map[string]string{"info": decodeText(raw)}
}

// decodeText accepts a string or a list of strings joined by newlines.
func decodeText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []any
	if err := json.Unmarshal(raw, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, v := range list {
			parts = append(parts, stringify(v))
		}
		return strings.Join(parts, "\n")
	}
	return string(raw)
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
