package tui

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("tui: chat service is required")

// ErrMissingAssistantService is returned when the assistant service is not provided.
var ErrMissingAssistantService = errors.New("tui: assistant service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")

// ErrNoVariants is returned when the picker has nothing to offer.
var ErrNoVariants = errors.New("tui: no language variants to choose from")

// ErrSelectionCancelled is returned when the user leaves the picker without choosing.
var ErrSelectionCancelled = errors.New("tui: selection cancelled")
