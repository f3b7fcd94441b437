package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/immigraid/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/immigraid/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, "en", bar.Language())
	assert.Equal(t, "", bar.Document())
}

func TestNewBar_NilArgs(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestBar_Init(t *testing.T) {
	assert.Nil(t, NewBar(nil, nil).Init())
}

func TestBar_Update_WindowSize(t *testing.T) {
	bar := NewBar(nil, nil)

	updated, cmd := bar.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Same(t, bar, updated)
	assert.Nil(t, cmd)
	assert.Equal(t, 120, bar.width)
}

func TestBar_View_States(t *testing.T) {
	tests := []struct {
		state State
		msg   string
		want  string
	}{
		{StateReady, "", "Ready"},
		{StateThinking, "", "Thinking..."},
		{StateUploading, "", "Uploading..."},
		{StateError, "", "Error"},
		{StateError, "service down", "Error: service down"},
	}

	for _, tt := range tests {
		t.Run(string(tt.state)+tt.msg, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(200)
			bar.SetState(tt.state)
			bar.SetMessage(tt.msg)

			assert.Contains(t, bar.View(), tt.want)
		})
	}
}

func TestBar_View_LanguageAndDocument(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(200)

	view := bar.View()
	assert.Contains(t, view, "English")
	assert.Contains(t, view, "No document")

	bar.SetLanguage("es")
	bar.SetDocument("passport")
	view = bar.View()
	assert.Contains(t, view, "Spanish")
	assert.Contains(t, view, "Document: passport")
}

func TestBar_View_ShowsChatHints(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(200)

	assert.Contains(t, bar.View(), "enter: send")
}
