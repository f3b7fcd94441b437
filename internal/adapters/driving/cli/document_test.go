package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/immigraid/internal/core/domain"
)

func writeDocument(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDocumentCmd_Use(t *testing.T) {
	assert.Equal(t, "doc", documentCmd.Use)
	assert.Contains(t, documentCmd.Aliases, "document")
}

func TestDocumentCmd_HasSubcommands(t *testing.T) {
	names := commandNames(documentCmd)

	assert.Contains(t, names, "probe")
	assert.Contains(t, names, "upload")
	assert.Contains(t, names, "analyze")
	assert.Contains(t, names, "ask")
	assert.Contains(t, names, "status")
	assert.Contains(t, names, "reset")
}

func TestDocumentUploadCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := execute(t, "doc", "upload")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestDocumentUploadCmd_ErrorsWithoutServices(t *testing.T) {
	clearServices(t)

	_, err := execute(t, "doc", "upload", "passport.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestDocumentProbeCmd(t *testing.T) {
	ts := setupTestServices(t)

	out, err := execute(t, "doc", "probe")
	require.NoError(t, err)
	assert.Contains(t, out, "Analysis service is reachable.")

	ts.analysis.pingErr = errors.New("connection refused")
	_, err = execute(t, "doc", "probe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not reachable")
}

func TestDocumentUploadCmd_Executes(t *testing.T) {
	ts := setupTestServices(t)
	path := writeDocument(t, "passport.pdf", "%PDF-1.7")

	out, err := execute(t, "doc", "upload", path)

	require.NoError(t, err)
	assert.Equal(t, "passport.pdf:%PDF-1.7", ts.analysis.uploaded)
	assert.Contains(t, out, "Uploading passport.pdf...")
	assert.Contains(t, out, "Document Analysis Complete!")
	assert.Contains(t, out, "Document Type: Passport")
	assert.Contains(t, out, "Pages: 2")
	assert.Contains(t, out, "Confidence: 91%")
	assert.Contains(t, out, "- expires: 2031-05-01")

	sid, err := ts.preferences.CurrentSession(context.Background())
	require.NoError(t, err)
	session, err := ts.assistant.Session(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, "doc-7", session.DocumentID)
}

func TestDocumentUploadCmd_AnalysisFailureKeepsDocument(t *testing.T) {
	ts := setupTestServices(t)
	ts.analysis.analyzeErr = &domain.RemoteError{Kind: domain.ErrAnalysisFailed, Status: 500, StatusText: "Internal Server Error"}
	path := writeDocument(t, "i-94.pdf", "%PDF")

	out, err := execute(t, "doc", "upload", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Document Type: Passport")
	assert.NotContains(t, out, "Summary:")
}

func TestDocumentUploadCmd_Rejected(t *testing.T) {
	ts := setupTestServices(t)
	ts.analysis.uploadErr = &domain.RemoteError{Kind: domain.ErrUploadFailed, Status: 413, StatusText: "Request Entity Too Large"}
	path := writeDocument(t, "huge.pdf", "%PDF")

	_, err := execute(t, "doc", "upload", path)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}

func TestDocumentUploadCmd_MissingFile(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "doc", "upload", filepath.Join(t.TempDir(), "missing.pdf"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open document")
}

func TestDocumentAskCmd_NoDocument(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "doc", "ask", "what", "is", "this?")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no document uploaded")
}

func TestDocumentAskAndAnalyze_AfterUpload(t *testing.T) {
	ts := setupTestServices(t)
	_, err := execute(t, "doc", "upload", writeDocument(t, "passport.pdf", "%PDF"))
	require.NoError(t, err)

	out, err := execute(t, "doc", "ask", "Who", "is", "the", "holder?")
	require.NoError(t, err)
	assert.Contains(t, out, "AI Analysis:")
	assert.Contains(t, out, "doc-7: Who is the holder?")
	assert.Contains(t, out, "Confidence: 75%")

	out, err = execute(t, "doc", "analyze", "--type", "summary", "-q", "Expiry?", "-q", "Name?")
	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisRequest{AnalysisType: "summary", Questions: []string{"Expiry?", "Name?"}}, ts.analysis.lastReq)
	assert.Contains(t, out, "Summary:\nValid US passport.")
	assert.Contains(t, out, "  name: Ana Lima")
	assert.Contains(t, out, "Recommendations:\nRenew six months before expiry.")

	// Flags do not leak into the next run.
	_, err = execute(t, "doc", "analyze")
	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisComprehensive, ts.analysis.lastReq.AnalysisType)
	assert.Empty(t, ts.analysis.lastReq.Questions)
}

func TestDocumentStatusCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "doc", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "State:    no_document")

	_, err = execute(t, "doc", "upload", writeDocument(t, "passport.pdf", "%PDF"))
	require.NoError(t, err)

	out, err = execute(t, "doc", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "State:    ready")
	assert.Contains(t, out, "Document: doc-7")
	assert.Contains(t, out, "Pages:    2")
}

func TestDocumentResetCmd(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	first, err := currentSession(ctx)
	require.NoError(t, err)

	out, err := execute(t, "doc", "reset")

	require.NoError(t, err)
	second, err := ts.preferences.CurrentSession(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Contains(t, out, second)
}
