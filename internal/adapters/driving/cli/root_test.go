package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/immigraid/internal/core/domain"
	"github.com/custodia-labs/immigraid/internal/logger"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "immigraid", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := commandNames(rootCmd)

	for _, want := range []string{
		"forms", "pathways", "doc", "profile", "lang", "chat", "config", "serve", "mcp", "version",
	} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("lang"))
}

func TestRootCmd_VerboseFlag(t *testing.T) {
	defer logger.SetVerbose(false)

	_, err := execute(t, "version", "--verbose")
	require.NoError(t, err)
	assert.True(t, logger.IsVerbose())

	_, err = execute(t, "version")
	require.NoError(t, err)
	assert.False(t, logger.IsVerbose())
}

func TestExecute(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	err := Execute(context.Background())

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "immigraid version")
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("1.2.3")

	assert.Equal(t, "1.2.3", version)
}

func TestLanguage(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	defer func() { langFlag = "" }()

	lang, err := language(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultLanguage, lang)

	require.NoError(t, ts.preferences.SetLanguage(ctx, "fr"))
	lang, err = language(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fr", lang)

	langFlag = "so"
	lang, err = language(ctx)
	require.NoError(t, err)
	assert.Equal(t, "so", lang)

	langFlag = "xx"
	_, err = language(ctx)
	assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
}

func TestLanguage_WithoutPreferences(t *testing.T) {
	clearServices(t)

	lang, err := language(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultLanguage, lang)
}

func TestCurrentSession_CreatedOnceThenReused(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	first, err := currentSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	stored, err := ts.preferences.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, stored)

	second, err := currentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
