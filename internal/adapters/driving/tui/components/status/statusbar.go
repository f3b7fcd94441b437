// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/immigraid/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/immigraid/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/immigraid/internal/core/domain"
)

// State represents what the chat is currently doing.
type State string

const (
	StateReady     State = "ready"
	StateThinking  State = "thinking"
	StateUploading State = "uploading"
	StateError     State = "error"
)

// Bar displays the chat state, language and loaded document.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	language string
	document string
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles:   s,
		keymap:   km,
		state:    StateReady,
		language: domain.DefaultLanguage,
		width:    80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if m, ok := msg.(tea.WindowSizeMsg); ok {
		s.width = m.Width
	}
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	var state string
	switch s.state {
	case StateThinking:
		state = s.styles.Warning.Render("Thinking...")
	case StateUploading:
		state = s.styles.Warning.Render("Uploading...")
	case StateError:
		if s.message != "" {
			state = s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		} else {
			state = s.styles.Error.Render("Error")
		}
	default:
		state = s.styles.Muted.Render("Ready")
	}

	doc := s.styles.Muted.Render("No document")
	if s.document != "" {
		doc = s.styles.Success.Render("Document: " + s.document)
	}

	lang := s.styles.Muted.Render(domain.LanguageName(s.language))
	return strings.Join([]string{state, lang, doc}, s.styles.Muted.Render(" · "))
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ChatHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		hints = append(hints, helpHint(b))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

func helpHint(b key.Binding) string {
	h := b.Help()
	return fmt.Sprintf("%s: %s", h.Key, h.Desc)
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the error detail shown in StateError.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetLanguage sets the language code shown in the bar.
func (s *Bar) SetLanguage(code string) {
	s.language = code
}

// Language returns the displayed language code.
func (s *Bar) Language() string {
	return s.language
}

// SetDocument sets the loaded document label. Empty means none.
func (s *Bar) SetDocument(label string) {
	s.document = label
}

// Document returns the loaded document label.
func (s *Bar) Document() string {
	return s.document
}

// SetWidth sets the bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}
