package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/custodia-labs/immigraid/internal/core/domain"
	"github.com/custodia-labs/immigraid/internal/core/ports/driven"
	"github.com/custodia-labs/immigraid/internal/core/ports/driving"
	"github.com/custodia-labs/immigraid/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// helpTriggers route a message to the long essay question help.
var helpTriggers = []string{"help with", "explain question", "simplify question"}

// ChatService answers chat messages. Questions about an uploaded document
// go to the analysis service; everything else is answered from the
// response tables.
type ChatService struct {
	assistant driving.AssistantService
	responses driven.ResponseSource
	pick      func(n int) int
}

// NewChatService creates a chat service. assistant may be nil, in which
// case document questions are never forwarded.
func NewChatService(assistant driving.AssistantService, responses driven.ResponseSource) *ChatService {
	return &ChatService{
		assistant: assistant,
		responses: responses,
		pick:      rand.IntN,
	}
}

// Reply answers message in lang. The first applicable source wins:
// a document answer, long essay help, a keyword rule, a random default.
func (s *ChatService) Reply(ctx context.Context, sessionID, lang, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("%w: empty message", domain.ErrInvalidInput)
	}
	lower := strings.ToLower(message)

	if reply, ok := s.askDocument(ctx, sessionID, message); ok {
		return reply, nil
	}

	for _, trigger := range helpTriggers {
		if strings.Contains(lower, trigger) {
			return s.questionHelp(lower, lang), nil
		}
	}

	for _, rule := range s.responses.Rules() {
		if rule.Matches(lower) {
			return rule.Reply.In(lang), nil
		}
	}

	defaults := s.responses.Defaults()
	if len(defaults) == 0 {
		return "", nil
	}
	return defaults[s.pick(len(defaults))].In(lang), nil
}

// askDocument forwards questions when the session holds a document.
// Failures are logged and the caller falls through to canned replies.
func (s *ChatService) askDocument(ctx context.Context, sessionID, message string) (string, bool) {
	if s.assistant == nil || sessionID == "" || !strings.Contains(message, "?") {
		return "", false
	}

	session, err := s.assistant.Session(ctx, sessionID)
	if err != nil || !session.IsReady() {
		return "", false
	}

	answer, err := s.assistant.Ask(ctx, sessionID, message)
	if err != nil {
		logger.Warn("document question failed, using canned reply: %v", err)
		return "", false
	}
	return FormatAnswer(answer), true
}

// questionHelp lists the simplified questions for the form named in the
// message, or the forms that have help when none is named.
func (s *ChatService) questionHelp(lower, lang string) string {
	sets := s.responses.QuestionSets()

	for _, set := range sets {
		if !set.Matches(lower) {
			continue
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%s - Simplified Questions\n\n", set.Name)
		for i, q := range set.Questions {
			fmt.Fprintf(&b, "Question %d:\n", i+1)
			fmt.Fprintf(&b, "  Original: %s\n", q.Original)
			fmt.Fprintf(&b, "  Simplified: %s\n\n", q.Simplified.In(lang))
		}
		b.WriteString("Tip: I can help you answer these questions step by step. Just ask me about any specific question!")
		return b.String()
	}

	var b strings.Builder
	b.WriteString("Available Forms with Simplified Questions\n\n")
	for _, set := range sets {
		fmt.Fprintf(&b, "- %s - Ask me about %q questions\n", set.Name, set.FormID)
	}
	b.WriteString("\nHow to use: Say \"help with [form name]\" or \"explain [form name] questions\" " +
		"to get simplified versions of all questions for that form.")
	return b.String()
}

// FormatAnswer renders a document answer with its confidence.
func FormatAnswer(a *domain.Answer) string {
	return fmt.Sprintf("AI Analysis:\n\n%s\n\nConfidence: %d%%", a.Answer, a.ConfidencePercent())
}

// FormatUploadReport renders the chat message shown after an upload.
func FormatUploadReport(r *driving.UploadReport) string {
	var b strings.Builder
	b.WriteString("Document Analysis Complete!\n\n")
	fmt.Fprintf(&b, "Document Type: %s\n", r.Upload.DocumentType)
	fmt.Fprintf(&b, "Pages: %d\n", r.Upload.PageCount)
	fmt.Fprintf(&b, "Confidence: %d%%\n\n", r.Upload.ConfidencePercent())

	if a := r.Analysis; a != nil {
		fmt.Fprintf(&b, "Summary:\n%s\n\n", a.Summary)

		if len(a.KeyInformation) > 0 {
			keys := make([]string, 0, len(a.KeyInformation))
			for k := range a.KeyInformation {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			b.WriteString("Key Information:\n")
			for _, k := range keys {
				fmt.Fprintf(&b, "- %s: %s\n", k, a.KeyInformation[k])
			}
			b.WriteString("\n")
		}

		if a.Recommendations != "" {
			fmt.Fprintf(&b, "Recommendations:\n%s\n\n", a.Recommendations)
		}
	}

	b.WriteString("I can now answer specific questions about this document. What would you like to know?")
	return b.String()
}
