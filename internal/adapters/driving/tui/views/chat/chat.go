// Package chat provides the interactive assistant conversation view.
package chat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/immigraid/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/immigraid/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/immigraid/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/immigraid/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/immigraid/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/immigraid/internal/core/ports/driving"
	"github.com/custodia-labs/immigraid/internal/core/services"
	"github.com/custodia-labs/immigraid/internal/logger"
)

const (
	uploadCommand = "/upload"

	welcome = "Hello! I'm your immigration assistant. Ask me about forms and pathways, " +
		"or upload a PDF with /upload <file.pdf> and ask questions about it."

	uploadFailed = "There was an error processing your document. Please try again."
	replyFailed  = "Sorry, I couldn't answer that right now. Please try again."
)

// Role identifies who wrote a transcript entry.
type Role int

const (
	RoleAssistant Role = iota
	RoleUser
)

// Entry is one line of the transcript.
type Entry struct {
	Role Role
	Text string
}

// View is a chat transcript with an input line and a status bar.
type View struct {
	ctx       context.Context
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.ChatInput
	bar       *status.Bar
	chat      driving.ChatService
	assistant driving.AssistantService
	sessionID string
	lang      string
	entries   []Entry
	busy      bool
	width     int
	height    int
}

// NewView creates a chat view bound to one document session.
func NewView(
	ctx context.Context,
	s *styles.Styles,
	chat driving.ChatService,
	assistant driving.AssistantService,
	sessionID, lang string,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)
	bar.SetLanguage(lang)

	return &View{
		ctx:       ctx,
		styles:    s,
		keymap:    km,
		input:     input.NewChatInput(s),
		bar:       bar,
		chat:      chat,
		assistant: assistant,
		sessionID: sessionID,
		lang:      lang,
		entries:   []Entry{{Role: RoleAssistant, Text: welcome}},
		width:     80,
		height:    24,
	}
}

// Init starts the cursor blinking.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.input.SetWidth(msg.Width)
		v.bar.SetWidth(msg.Width)
		return v, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keymap.Quit) {
			return v, tea.Quit
		}
		if keymap.Matches(msg.String(), v.keymap.Send) {
			return v, v.submit()
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd

	case messages.MessageSent:
		return v, v.reply(msg.Text)

	case messages.UploadRequested:
		return v, v.upload(msg.Path)

	case messages.ReplyReceived:
		v.busy = false
		if msg.Err != nil {
			logger.Warn("chat reply failed: %v", msg.Err)
			v.fail(replyFailed, msg.Err)
			return v, nil
		}
		v.bar.SetState(status.StateReady)
		v.append(RoleAssistant, msg.Reply)
		return v, nil

	case messages.UploadCompleted:
		v.busy = false
		if msg.Err != nil && msg.Report == nil {
			logger.Warn("upload of %s failed: %v", msg.Path, msg.Err)
			v.bar.SetDocument("")
			v.fail(uploadFailed, msg.Err)
			return v, nil
		}
		if msg.Err != nil {
			// Uploaded, but the follow-up analysis failed.
			logger.Warn("analysis of %s failed: %v", msg.Path, msg.Err)
		}
		v.bar.SetState(status.StateReady)
		v.bar.SetDocument(documentLabel(msg))
		v.append(RoleAssistant, services.FormatUploadReport(msg.Report))
		return v, nil

	case messages.ErrorOccurred:
		v.busy = false
		v.fail(msg.Err.Error(), msg.Err)
		return v, nil
	}

	return v, nil
}

// submit turns the input line into a chat message or an upload.
func (v *View) submit() tea.Cmd {
	text := strings.TrimSpace(v.input.Value())
	if text == "" || v.busy {
		return nil
	}
	v.input.Reset()
	v.append(RoleUser, text)

	if path, ok := uploadPath(text); ok {
		if path == "" {
			v.append(RoleAssistant, "Usage: /upload <file.pdf>")
			return nil
		}
		return func() tea.Msg { return messages.UploadRequested{Path: path} }
	}
	return func() tea.Msg { return messages.MessageSent{Text: text} }
}

func (v *View) reply(text string) tea.Cmd {
	v.busy = true
	v.bar.SetState(status.StateThinking)

	ctx, chat, sessionID, lang := v.ctx, v.chat, v.sessionID, v.lang
	return func() tea.Msg {
		reply, err := chat.Reply(ctx, sessionID, lang, text)
		return messages.ReplyReceived{Reply: reply, Err: err}
	}
}

func (v *View) upload(path string) tea.Cmd {
	v.busy = true
	v.bar.SetState(status.StateUploading)

	ctx, assistant, sessionID := v.ctx, v.assistant, v.sessionID
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return messages.UploadCompleted{Path: path, Err: fmt.Errorf("open document: %w", err)}
		}
		defer f.Close()

		report, err := assistant.UploadAndAnalyze(ctx, sessionID, filepath.Base(path), f)
		return messages.UploadCompleted{Path: path, Report: report, Err: err}
	}
}

func (v *View) fail(text string, err error) {
	v.bar.SetState(status.StateError)
	v.bar.SetMessage(err.Error())
	v.append(RoleAssistant, text)
}

func (v *View) append(role Role, text string) {
	v.entries = append(v.entries, Entry{Role: role, Text: text})
}

// View renders the transcript, input and status bar.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("immigraid assistant"))
	b.WriteString("\n\n")

	lines := v.transcript()
	// Title, input box and status bar take seven rows.
	if room := v.height - 7; room > 0 && len(lines) > room {
		lines = lines[len(lines)-room:]
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.input.View())
	b.WriteString("\n")
	b.WriteString(v.bar.View())

	return b.String()
}

func (v *View) transcript() []string {
	var lines []string
	for _, e := range v.entries {
		prefix := v.styles.AssistantMessage.Render("Assistant: ")
		if e.Role == RoleUser {
			prefix = v.styles.UserMessage.Render("You: ")
		}
		for i, line := range strings.Split(e.Text, "\n") {
			if i == 0 {
				lines = append(lines, prefix+line)
				continue
			}
			lines = append(lines, "  "+line)
		}
	}
	return lines
}

// Entries returns the transcript so far.
func (v *View) Entries() []Entry {
	return v.entries
}

// Busy reports whether a reply or upload is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// Bar returns the status bar.
func (v *View) Bar() *status.Bar {
	return v.bar
}

func uploadPath(text string) (string, bool) {
	if text != uploadCommand && !strings.HasPrefix(text, uploadCommand+" ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(text, uploadCommand)), true
}

func documentLabel(msg messages.UploadCompleted) string {
	if msg.Report != nil && msg.Report.Upload.DocumentType != "" {
		return msg.Report.Upload.DocumentType
	}
	return filepath.Base(msg.Path)
}
