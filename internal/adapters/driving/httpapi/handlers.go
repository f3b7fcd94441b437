package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/custodia-labs/immigraid/internal/core/domain"
	"github.com/custodia-labs/immigraid/internal/logger"
)

type healthResponse struct {
	Status          string `json:"status"`
	AnalysisService bool   `json:"analysis_service"`
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
}

type pathwayResponse struct {
	*domain.Pathway
	Availability domain.PathwayAvailability `json:"availability"`
}

type analyzeRequest struct {
	AnalysisType string   `json:"analysis_type"`
	Questions    []string `json:"questions"`
}

type askRequest struct {
	Question string `json:"question"`
}

type answerResponse struct {
	Answer            string  `json:"answer"`
	Confidence        float64 `json:"confidence"`
	ConfidencePercent int     `json:"confidence_percent"`
}

type chatRequest struct {
	Message string `json:"message"`
	Lang    string `json:"lang"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type uploadResponse struct {
	SessionID string                 `json:"session_id"`
	Upload    domain.UploadResult    `json:"upload"`
	Analysis  *domain.AnalysisResult `json:"analysis,omitempty"`
	Warning   string                 `json:"warning,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		AnalysisService: a.ports.Assistant.Probe(r.Context()),
	})
}

func (a *API) handleListForms(w http.ResponseWriter, r *http.Request) {
	forms, err := a.ports.Catalog.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, forms)
}

func (a *API) handleGetForm(w http.ResponseWriter, r *http.Request) {
	form, err := a.ports.Catalog.Get(r.Context(), formID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}

func (a *API) handleVariants(w http.ResponseWriter, r *http.Request) {
	lang, err := language(r)
	if err != nil {
		writeError(w, err)
		return
	}
	variants, err := a.ports.Catalog.Variants(r.Context(), formID(r), lang)
	if err != nil {
		writeError(w, err)
		return
	}
	if variants == nil {
		variants = []domain.LanguageVariant{}
	}
	writeJSON(w, http.StatusOK, variants)
}

func (a *API) handleDownload(w http.ResponseWriter, r *http.Request) {
	lang, err := language(r)
	if err != nil {
		writeError(w, err)
		return
	}
	plan, err := a.ports.Catalog.PlanDownload(r.Context(), formID(r), lang)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (a *API) handleListPathways(w http.ResponseWriter, r *http.Request) {
	if a.ports.Pathways == nil {
		writeError(w, domain.ErrServiceUnavailable)
		return
	}
	pathways, err := a.ports.Pathways.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]pathwayResponse, len(pathways))
	for i := range pathways {
		out[i] = pathwayResponse{Pathway: &pathways[i], Availability: pathways[i].Availability()}
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleGetPathway(w http.ResponseWriter, r *http.Request) {
	if a.ports.Pathways == nil {
		writeError(w, domain.ErrServiceUnavailable)
		return
	}
	pathway, err := a.ports.Pathways.Get(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pathwayResponse{Pathway: pathway, Availability: pathway.Availability()})
}

func (a *API) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, err := a.ports.Assistant.NewSession(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: id})
}

func (a *API) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := a.ports.Assistant.Session(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (a *API) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadBytes)
	if err := r.ParseMultipartForm(a.maxUploadBytes); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, fmt.Errorf("%w: missing file field", domain.ErrInvalidInput))
		return
	}
	defer file.Close()

	sid := sessionID(r)
	report, err := a.ports.Assistant.UploadAndAnalyze(r.Context(), sid, header.Filename, file)
	if report == nil {
		writeError(w, err)
		return
	}

	resp := uploadResponse{
		SessionID: sid,
		Upload:    report.Upload,
		Analysis:  report.Analysis,
	}
	if err != nil {
		logger.Warn("analysis after upload failed for session %s: %v", sid, err)
		resp.Warning = "document uploaded but analysis failed"
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	result, err := a.ports.Assistant.Analyze(r.Context(), sessionID(r), domain.AnalysisRequest{
		AnalysisType: req.AnalysisType,
		Questions:    req.Questions,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	answer, err := a.ports.Assistant.Ask(r.Context(), sessionID(r), req.Question)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answerResponse{
		Answer:            answer.Answer,
		Confidence:        answer.Confidence,
		ConfidencePercent: answer.ConfidencePercent(),
	})
}

func (a *API) handleChat(w http.ResponseWriter, r *http.Request) {
	if a.ports.Chat == nil {
		writeError(w, domain.ErrServiceUnavailable)
		return
	}
	var req chatRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, fmt.Errorf("%w: message is required", domain.ErrInvalidInput))
		return
	}
	lang := req.Lang
	if lang == "" {
		lang = domain.DefaultLanguage
	}
	reply, err := a.ports.Chat.Reply(r.Context(), sessionID(r), lang, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

func formID(r *http.Request) string {
	return strings.ToLower(mux.Vars(r)["id"])
}

func sessionID(r *http.Request) string {
	return mux.Vars(r)["sid"]
}

// language reads the lang query parameter, defaulting to English.
func language(r *http.Request) (string, error) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		return domain.DefaultLanguage, nil
	}
	if !domain.IsSupportedLanguage(lang) {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedLanguage, lang)
	}
	return lang, nil
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// statusFor maps core errors to HTTP status codes.
func statusFor(err error) int {
	var remote *domain.RemoteError
	switch {
	case errors.Is(err, domain.ErrNoDocumentSession):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoDocumentAvailable):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnsupportedLanguage),
		errors.Is(err, domain.ErrChoiceRequired):
		return http.StatusBadRequest
	case errors.As(err, &remote),
		errors.Is(err, domain.ErrUploadFailed),
		errors.Is(err, domain.ErrAnalysisFailed),
		errors.Is(err, domain.ErrQuestionFailed):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("http api: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("http api: encode response: %v", err)
	}
}
