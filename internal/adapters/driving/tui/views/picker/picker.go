// Package picker provides the language chooser shown when a form exists in
// several languages.
package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/immigraid/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/immigraid/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/immigraid/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/immigraid/internal/core/domain"
)

// View lists the language variants of one form.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	formID   string
	variants []domain.LanguageVariant
	selected int
	chosen   *domain.LanguageVariant
	done     bool
	width    int
	height   int
}

// NewView creates a picker over variants. The cursor starts on the first
// entry, which is the user's own language when one was found.
func NewView(s *styles.Styles, formID string, variants []domain.LanguageVariant) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:   s,
		keymap:   keymap.DefaultKeyMap(),
		formID:   formID,
		variants: variants,
		width:    80,
		height:   24,
	}
}

// Init initialises the picker.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (v *View) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keymap.Up):
			if v.selected > 0 {
				v.selected--
			}
		case keymap.Matches(k, v.keymap.Down):
			if v.selected < len(v.variants)-1 {
				v.selected++
			}
		case keymap.Matches(k, v.keymap.Select):
			if len(v.variants) == 0 {
				return v, nil
			}
			chosen := v.variants[v.selected]
			v.chosen = &chosen
			v.done = true
			return v, tea.Sequence(
				func() tea.Msg { return messages.VariantChosen{Variant: chosen} },
				tea.Quit,
			)
		case keymap.Matches(k, v.keymap.Cancel), keymap.Matches(k, v.keymap.Quit):
			v.done = true
			return v, tea.Sequence(
				func() tea.Msg { return messages.PickerCancelled{} },
				tea.Quit,
			)
		}
	}

	return v, nil
}

// View renders the picker.
func (v *View) View() string {
	if v.done {
		return ""
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Download %s", strings.ToUpper(v.formID))))
	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("This form is available in several languages. Choose one:"))
	b.WriteString("\n\n")

	for i, variant := range v.variants {
		cursor := "  "
		label := v.styles.Normal.Render(variant.LanguageName)
		if i == v.selected {
			cursor = "> "
			label = v.styles.Selected.Render(variant.LanguageName)
		}
		b.WriteString(cursor)
		b.WriteString(label)
		if variant.IsCurrentLanguage {
			b.WriteString(" ")
			b.WriteString(v.styles.Recommended.Render("(Recommended)"))
		}
		b.WriteString(" ")
		b.WriteString(v.styles.Muted.Render(domain.Basename(variant.URL)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hints := make([]string, 0, 4)
	for _, binding := range v.keymap.PickerHelp() {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	b.WriteString(v.styles.Help.Render(strings.Join(hints, "  ")))

	return b.String()
}

// Selected returns the cursor index.
func (v *View) Selected() int {
	return v.selected
}

// Chosen returns the picked variant, or nil if the picker was cancelled.
func (v *View) Chosen() *domain.LanguageVariant {
	return v.chosen
}
