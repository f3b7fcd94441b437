package driven

import (
	"context"

	"github.com/custodia-labs/immigraid/internal/core/domain"
)

// StateStore is the local key-value store behind preferences, the user
// profile and per-form saved data. Values are opaque strings.
type StateStore interface {
	// Get retrieves a value. Returns domain.ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores or replaces a value.
	Set(ctx context.Context, key, value string) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists keys with the given prefix in lexical order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// SessionStore persists document sessions.
type SessionStore interface {
	// Get retrieves a session. Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.DocumentSession, error)

	// Save stores or replaces a session.
	Save(ctx context.Context, session *domain.DocumentSession) error

	// Delete removes a session.
	Delete(ctx context.Context, id string) error
}
