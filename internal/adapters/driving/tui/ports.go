// Package tui provides the interactive terminal screens of immigraid: the
// language picker used by form downloads and the assistant chat.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/immigraid/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the chat.
type Ports struct {
	// Chat produces assistant replies.
	Chat driving.ChatService

	// Assistant uploads and analyses documents.
	Assistant driving.AssistantService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(chat driving.ChatService, assistant driving.AssistantService) *Ports {
	return &Ports{
		Chat:      chat,
		Assistant: assistant,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Assistant == nil {
		return ErrMissingAssistantService
	}
	return nil
}
