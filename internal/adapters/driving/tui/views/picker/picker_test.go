package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/immigraid/internal/core/domain"
)

const formsBase = "https://www.uscis.gov/sites/default/files/document/forms/"

func testVariants() []domain.LanguageVariant {
	return []domain.LanguageVariant{
		{URL: formsBase + "i-765es.pdf", Language: "es", LanguageName: "Spanish", IsCurrentLanguage: true},
		{URL: formsBase + "i-765.pdf", Language: "en", LanguageName: "English"},
		{URL: formsBase + "i-765ch.pdf", Language: "zh", LanguageName: "Chinese"},
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewView(t *testing.T) {
	view := NewView(nil, "i-765", testVariants())

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Equal(t, 0, view.Selected())
	assert.Nil(t, view.Chosen())
	assert.Nil(t, view.Init())
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, "i-765", testVariants())

	_, cmd := view.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Nil(t, cmd)
	assert.Equal(t, 100, view.width)
	assert.Equal(t, 30, view.height)
}

func TestView_Update_Navigate(t *testing.T) {
	view := NewView(nil, "i-765", testVariants())

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Selected())

	view.Update(keyRune('j'))
	assert.Equal(t, 2, view.Selected())

	// Stays on the last entry.
	view.Update(keyRune('j'))
	assert.Equal(t, 2, view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	view.Update(keyRune('k'))
	assert.Equal(t, 0, view.Selected())

	// Stays on the first entry.
	view.Update(keyRune('k'))
	assert.Equal(t, 0, view.Selected())
}

func TestView_Update_SelectChoosesVariant(t *testing.T) {
	view := NewView(nil, "i-765", testVariants())
	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	require.NotNil(t, view.Chosen())
	assert.Equal(t, formsBase+"i-765.pdf", view.Chosen().URL)
	assert.Equal(t, "", view.View())
}

func TestView_Update_SelectWithNoVariants(t *testing.T) {
	view := NewView(nil, "i-765", nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Nil(t, view.Chosen())
}

func TestView_Update_Cancel(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}},
		{"q", keyRune('q')},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewView(nil, "i-765", testVariants())

			_, cmd := view.Update(tt.msg)

			assert.NotNil(t, cmd)
			assert.Nil(t, view.Chosen())
			assert.True(t, view.done)
		})
	}
}

func TestView_View(t *testing.T) {
	view := NewView(nil, "i-765", testVariants())

	out := view.View()

	assert.Contains(t, out, "Download I-765")
	assert.Contains(t, out, "> ")
	assert.Contains(t, out, "Spanish")
	assert.Contains(t, out, "(Recommended)")
	assert.Contains(t, out, "i-765ch.pdf")
	assert.Contains(t, out, "[enter] download")
}

func TestView_View_RecommendedOnlyOnCurrentLanguage(t *testing.T) {
	variants := testVariants()
	variants[0].IsCurrentLanguage = false

	out := NewView(nil, "i-765", variants).View()

	assert.NotContains(t, out, "(Recommended)")
}
