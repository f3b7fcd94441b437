package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedLanguage", ErrUnsupportedLanguage},
		{"ErrNoDocumentAvailable", ErrNoDocumentAvailable},
		{"ErrChoiceRequired", ErrChoiceRequired},
		{"ErrNoDocumentSession", ErrNoDocumentSession},
		{"ErrUploadFailed", ErrUploadFailed},
		{"ErrAnalysisFailed", ErrAnalysisFailed},
		{"ErrQuestionFailed", ErrQuestionFailed},
		{"ErrServiceUnavailable", ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrNoDocumentSession(t *testing.T) {
	assert.Equal(t, "no document uploaded", ErrNoDocumentSession.Error())
	assert.True(t, errors.Is(fmt.Errorf("ask: %w", ErrNoDocumentSession), ErrNoDocumentSession))
	assert.False(t, errors.Is(ErrNoDocumentSession, ErrNoDocumentAvailable))
}

func TestRemoteError_Is(t *testing.T) {
	err := &RemoteError{Kind: ErrUploadFailed, Status: 500, StatusText: "Internal Server Error"}

	assert.True(t, errors.Is(err, ErrUploadFailed))
	assert.False(t, errors.Is(err, ErrAnalysisFailed))

	wrapped := fmt.Errorf("upload: %w", err)
	var remote *RemoteError
	assert.True(t, errors.As(wrapped, &remote))
	assert.Equal(t, 500, remote.Status)
}

func TestRemoteError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *RemoteError
		expected string
	}{
		{
			name:     "without body",
			err:      &RemoteError{Kind: ErrAnalysisFailed, Status: 404, StatusText: "Not Found"},
			expected: "analysis failed: Not Found (status 404)",
		},
		{
			name:     "with body",
			err:      &RemoteError{Kind: ErrQuestionFailed, Status: 400, StatusText: "Bad Request", Body: "No question provided"},
			expected: "question failed: Bad Request (status 400): No question provided",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}
