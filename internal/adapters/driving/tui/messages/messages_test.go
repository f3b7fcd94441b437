package messages

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/immigraid/internal/core/domain"
	"github.com/custodia-labs/immigraid/internal/core/ports/driving"
)

func TestReplyReceived(t *testing.T) {
	t.Run("with reply", func(t *testing.T) {
		msg := ReplyReceived{Reply: "Form I-130 is for relatives."}
		assert.Equal(t, "Form I-130 is for relatives.", msg.Reply)
		assert.NoError(t, msg.Err)
	})

	t.Run("with error", func(t *testing.T) {
		msg := ReplyReceived{Err: domain.ErrServiceUnavailable}
		assert.ErrorIs(t, msg.Err, domain.ErrServiceUnavailable)
	})
}

func TestUploadCompleted(t *testing.T) {
	report := &driving.UploadReport{Upload: domain.UploadResult{DocumentID: "doc-1", PageCount: 2}}

	msg := UploadCompleted{Path: "/tmp/i-130.pdf", Report: report}

	assert.Equal(t, "doc-1", msg.Report.Upload.DocumentID)
	assert.Equal(t, "/tmp/i-130.pdf", msg.Path)
}

func TestVariantChosen(t *testing.T) {
	v := domain.LanguageVariant{URL: "https://uscis.gov/i-765es.pdf", Language: "es"}

	msg := VariantChosen{Variant: v}

	assert.Equal(t, "es", msg.Variant.Language)
}

func TestMessagesAreTeaMessages(t *testing.T) {
	msgs := []tea.Msg{
		MessageSent{Text: "hi"},
		ReplyReceived{},
		UploadRequested{Path: "a.pdf"},
		UploadCompleted{},
		VariantChosen{},
		PickerCancelled{},
		ErrorOccurred{Err: errors.New("boom")},
	}

	for _, m := range msgs {
		assert.NotNil(t, m)
	}
}
