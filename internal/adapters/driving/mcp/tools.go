package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/immigraid/internal/core/domain"
)

// ListFormsInput is the input schema for the list_forms tool.
type ListFormsInput struct{}

// ListFormsOutput is the output schema for the list_forms tool.
type ListFormsOutput struct {
	Forms []FormOutput `json:"forms"`
	Count int          `json:"count"`
}

// FormOutput is one resolved form.
type FormOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Stage       string `json:"stage"`
	PDFURL      string `json:"pdf_url,omitempty"`
}

// FormDownloadInput is the input schema for the form_download tool.
type FormDownloadInput struct {
	FormID string `json:"form_id" jsonschema:"the USCIS form id, e.g. i-765"`
	Lang   string `json:"lang,omitempty" jsonschema:"preferred language code such as es or zh (default en)"`
}

// FormDownloadOutput is the output schema for the form_download tool.
type FormDownloadOutput struct {
	FormID      string          `json:"form_id"`
	URL         string          `json:"url,omitempty"`
	NeedsChoice bool            `json:"needs_choice"`
	Variants    []VariantOutput `json:"variants"`
}

// VariantOutput is one language variant of a form.
type VariantOutput struct {
	Language    string `json:"language"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Recommended bool   `json:"recommended"`
}

// UploadDocumentInput is the input schema for the upload_document tool.
type UploadDocumentInput struct {
	Path      string `json:"path" jsonschema:"local path of the PDF to analyse"`
	SessionID string `json:"session_id,omitempty" jsonschema:"existing session to attach the document to; a new one is created when empty"`
}

// UploadDocumentOutput is the output schema for the upload_document tool.
type UploadDocumentOutput struct {
	SessionID         string            `json:"session_id"`
	DocumentID        string            `json:"document_id"`
	DocumentType      string            `json:"document_type"`
	PageCount         int               `json:"page_count"`
	ConfidencePercent int               `json:"confidence_percent"`
	Summary           string            `json:"summary,omitempty"`
	KeyInformation    map[string]string `json:"key_information,omitempty"`
	Recommendations   string            `json:"recommendations,omitempty"`
}

// AskDocumentInput is the input schema for the ask_document tool.
type AskDocumentInput struct {
	SessionID string `json:"session_id" jsonschema:"session returned by upload_document"`
	Question  string `json:"question" jsonschema:"question about the uploaded document"`
}

// AskDocumentOutput is the output schema for the ask_document tool.
type AskDocumentOutput struct {
	Answer            string `json:"answer"`
	ConfidencePercent int    `json:"confidence_percent"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_forms",
		Description: "List the key USCIS immigration forms",
	}, s.handleListForms)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "form_download",
		Description: "Resolve the PDF download of a USCIS form in the user's language",
	}, s.handleFormDownload)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "upload_document",
		Description: "Upload a local PDF for analysis and return its summary",
	}, s.handleUploadDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_document",
		Description: "Ask a question about a previously uploaded document",
	}, s.handleAskDocument)
}

// handleListForms handles the list_forms tool invocation.
func (s *Server) handleListForms(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListFormsInput,
) (*mcp.CallToolResult, ListFormsOutput, error) {
	forms, err := s.ports.Catalog.List(ctx)
	if err != nil {
		return nil, ListFormsOutput{}, err
	}

	output := ListFormsOutput{
		Forms: make([]FormOutput, len(forms)),
		Count: len(forms),
	}
	for i := range forms {
		output.Forms[i] = FormOutput{
			ID:          forms[i].ID,
			Name:        forms[i].Name,
			Description: forms[i].Description,
			Category:    forms[i].Category,
			Priority:    forms[i].Priority.String(),
			Stage:       forms[i].Stage,
			PDFURL:      forms[i].PDFURL,
		}
	}

	return nil, output, nil
}

// handleFormDownload handles the form_download tool invocation.
func (s *Server) handleFormDownload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FormDownloadInput,
) (*mcp.CallToolResult, FormDownloadOutput, error) {
	formID := strings.ToLower(strings.TrimSpace(input.FormID))
	if formID == "" {
		return nil, FormDownloadOutput{}, fmt.Errorf("%w: form_id is required", domain.ErrInvalidInput)
	}
	lang := input.Lang
	if lang == "" {
		lang = domain.DefaultLanguage
	}

	plan, err := s.ports.Catalog.PlanDownload(ctx, formID, lang)
	if err != nil {
		return nil, FormDownloadOutput{}, err
	}

	output := FormDownloadOutput{
		FormID:      plan.FormID,
		URL:         plan.URL,
		NeedsChoice: plan.NeedsChoice,
		Variants:    make([]VariantOutput, len(plan.Variants)),
	}
	for i, v := range plan.Variants {
		output.Variants[i] = VariantOutput{
			Language:    v.Language,
			Name:        v.LanguageName,
			URL:         v.URL,
			Recommended: v.IsCurrentLanguage,
		}
	}

	return nil, output, nil
}

// handleUploadDocument handles the upload_document tool invocation.
func (s *Server) handleUploadDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadDocumentInput,
) (*mcp.CallToolResult, UploadDocumentOutput, error) {
	if s.ports.Assistant == nil {
		return nil, UploadDocumentOutput{}, domain.ErrServiceUnavailable
	}
	if input.Path == "" {
		return nil, UploadDocumentOutput{}, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	sessionID := input.SessionID
	if sessionID == "" {
		id, err := s.ports.Assistant.NewSession(ctx)
		if err != nil {
			return nil, UploadDocumentOutput{}, err
		}
		sessionID = id
	}

	f, err := os.Open(input.Path)
	if err != nil {
		return nil, UploadDocumentOutput{}, fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()

	report, err := s.ports.Assistant.UploadAndAnalyze(ctx, sessionID, filepath.Base(input.Path), f)
	if report == nil {
		return nil, UploadDocumentOutput{}, err
	}

	output := UploadDocumentOutput{
		SessionID:         sessionID,
		DocumentID:        report.Upload.DocumentID,
		DocumentType:      report.Upload.DocumentType,
		PageCount:         report.Upload.PageCount,
		ConfidencePercent: report.Upload.ConfidencePercent(),
	}
	if a := report.Analysis; a != nil {
		output.Summary = a.Summary
		output.KeyInformation = a.KeyInformation
		output.Recommendations = a.Recommendations
	}

	// The upload stands even when the follow-up analysis failed.
	return nil, output, nil
}

// handleAskDocument handles the ask_document tool invocation.
func (s *Server) handleAskDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskDocumentInput,
) (*mcp.CallToolResult, AskDocumentOutput, error) {
	if s.ports.Assistant == nil {
		return nil, AskDocumentOutput{}, domain.ErrServiceUnavailable
	}

	answer, err := s.ports.Assistant.Ask(ctx, input.SessionID, input.Question)
	if err != nil {
		return nil, AskDocumentOutput{}, err
	}

	return nil, AskDocumentOutput{
		Answer:            answer.Answer,
		ConfidencePercent: answer.ConfidencePercent(),
	}, nil
}
