package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/immigraid/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/immigraid/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/immigraid/internal/adapters/driving/tui/views/picker"
	"github.com/custodia-labs/immigraid/internal/core/domain"
)

// PickVariant shows the language picker for formID and returns the chosen
// variant. Returns ErrSelectionCancelled if the user backs out.
func PickVariant(
	ctx context.Context,
	formID string,
	variants []domain.LanguageVariant,
	opts ...tea.ProgramOption,
) (domain.LanguageVariant, error) {
	if len(variants) == 0 {
		return domain.LanguageVariant{}, ErrNoVariants
	}

	view := picker.NewView(styles.DefaultStyles(), formID, variants)
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)

	final, err := tea.NewProgram(view, opts...).Run()
	if err != nil {
		return domain.LanguageVariant{}, fmt.Errorf("language picker: %w", err)
	}
	return chosenVariant(final)
}

func chosenVariant(final tea.Model) (domain.LanguageVariant, error) {
	view, ok := final.(*picker.View)
	if !ok || view.Chosen() == nil {
		return domain.LanguageVariant{}, ErrSelectionCancelled
	}
	return *view.Chosen(), nil
}

// RunChat runs the assistant chat for one session until the user quits.
func RunChat(ctx context.Context, ports *Ports, sessionID, lang string, opts ...tea.ProgramOption) error {
	if err := ports.Validate(); err != nil {
		return fmt.Errorf("creating chat: %w", err)
	}

	view := NewChat(ctx, ports, sessionID, lang)
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)

	if _, err := tea.NewProgram(view, opts...).Run(); err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	return nil
}

// NewChat builds the chat model without running it.
func NewChat(ctx context.Context, ports *Ports, sessionID, lang string) *chat.View {
	return chat.NewView(ctx, styles.DefaultStyles(), ports.Chat, ports.Assistant, sessionID, lang)
}
