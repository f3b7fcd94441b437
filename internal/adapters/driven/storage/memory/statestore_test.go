package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/immigraid/internal/core/domain"
)

func TestStateStore_GetMissing(t *testing.T) {
	store := NewStateStore()

	_, err := store.Get(context.Background(), "preferredLanguage")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStateStore_SetGetDelete(t *testing.T) {
	store := NewStateStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "preferredLanguage", "es"))
	val, err := store.Get(ctx, "preferredLanguage")
	require.NoError(t, err)
	assert.Equal(t, "es", val)

	require.NoError(t, store.Set(ctx, "preferredLanguage", "fr"))
	val, _ = store.Get(ctx, "preferredLanguage")
	assert.Equal(t, "fr", val)

	require.NoError(t, store.Delete(ctx, "preferredLanguage"))
	require.NoError(t, store.Delete(ctx, "preferredLanguage"))
	_, err = store.Get(ctx, "preferredLanguage")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStateStore_Keys(t *testing.T) {
	store := NewStateStore()
	ctx := context.Background()

	_ = store.Set(ctx, "form_i-765", "{}")
	_ = store.Set(ctx, "form_i-130", "{}")
	_ = store.Set(ctx, "userProfile", "{}")

	keys, err := store.Keys(ctx, "form_")
	require.NoError(t, err)
	assert.Equal(t, []string{"form_i-130", "form_i-765"}, keys)

	all, err := store.Keys(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
