package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		want    []string
	}{
		{"quit", km.Quit, []string{"ctrl+c"}},
		{"cancel", km.Cancel, []string{"esc", "q"}},
		{"up", km.Up, []string{"up", "k"}},
		{"down", km.Down, []string{"down", "j"}},
		{"select", km.Select, []string{"enter"}},
		{"send", km.Send, []string{"enter"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.want {
				assert.Contains(t, tt.binding.Keys(), k)
			}
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_QuitDoesNotUseQ(t *testing.T) {
	// The chat input must accept the letter q.
	km := DefaultKeyMap()

	assert.NotContains(t, km.Quit.Keys(), "q")
}

func TestKeyMap_PickerHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.PickerHelp()

	require.Len(t, help, 4)
	assert.Equal(t, "download", help[2].Help().Desc)
}

func TestKeyMap_ChatHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.ChatHelp()

	require.Len(t, help, 2)
	assert.Equal(t, "send", help[0].Help().Desc)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("k", km.Up))
	assert.True(t, Matches("esc", km.Cancel))
	assert.False(t, Matches("x", km.Up))
	assert.False(t, Matches("", km.Select))
}
