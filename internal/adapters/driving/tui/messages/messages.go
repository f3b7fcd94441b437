// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/immigraid/internal/core/domain"
	"github.com/custodia-labs/immigraid/internal/core/ports/driving"
)

// MessageSent is emitted when the user submits a chat line.
type MessageSent struct {
	Text string
}

// ReplyReceived carries the assistant's reply back to the chat.
type ReplyReceived struct {
	Reply string
	Err   error
}

// UploadRequested is a command to upload a local document.
type UploadRequested struct {
	Path string
}

// UploadCompleted carries the upload and analysis outcome.
type UploadCompleted struct {
	Path   string
	Report *driving.UploadReport
	Err    error
}

// VariantChosen is sent when the user picks a language variant.
type VariantChosen struct {
	Variant domain.LanguageVariant
}

// PickerCancelled is sent when the user leaves the picker without choosing.
type PickerCancelled struct{}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
