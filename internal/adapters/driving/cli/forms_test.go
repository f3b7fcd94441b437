package cli

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/immigraid/internal/adapters/driving/tui"
	"github.com/custodia-labs/immigraid/internal/core/domain"
)

func TestFormsCmd_Use(t *testing.T) {
	assert.Equal(t, "forms", formsCmd.Use)
}

func TestFormsCmd_HasSubcommands(t *testing.T) {
	names := commandNames(formsCmd)

	assert.Contains(t, names, "list")
	assert.Contains(t, names, "show")
	assert.Contains(t, names, "variants")
	assert.Contains(t, names, "download")
	assert.Contains(t, names, "fill")
	assert.Contains(t, names, "saved")
}

func TestFormsListCmd_ErrorsWithoutService(t *testing.T) {
	clearServices(t)

	_, err := execute(t, "forms", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestFormsListCmd_Executes(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "forms", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Key forms:")
	assert.Contains(t, out, "i-765")
	assert.Contains(t, out, "Form I-130, Petition for Alien Relative")
	assert.Contains(t, out, "family · high priority · Pending")
	assert.Contains(t, out, "Total: 3 forms")
}

func TestFormsShowCmd_RequiresExactlyOneArg(t *testing.T) {
	_, err := execute(t, "forms", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestFormsShowCmd_Executes(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "forms", "show", "I-765")

	require.NoError(t, err)
	assert.Contains(t, out, "Form: I-765")
	assert.Contains(t, out, "Category:    employment")
	assert.Contains(t, out, "Fields:      personalInfo, immigrationStatus")
	assert.Contains(t, out, "Document:    "+formsBase+"i-765.pdf")
	assert.Contains(t, out, "3 documents available")
}

func TestFormsShowCmd_UnknownForm(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "forms", "show", "i-999")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFormsVariantsCmd_UsesLangFlag(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "forms", "variants", "i-765", "--lang", "es")

	require.NoError(t, err)
	assert.Contains(t, out, "I-765 is available in 3 languages:")
	assert.Contains(t, out, "1. Spanish (Recommended)")
	assert.Contains(t, out, "2. English")
	assert.Contains(t, out, "3. Chinese")
}

func TestFormsVariantsCmd_UsesSavedLanguage(t *testing.T) {
	ts := setupTestServices(t)
	require.NoError(t, ts.preferences.SetLanguage(context.Background(), "zh"))

	out, err := execute(t, "forms", "variants", "i-765")

	require.NoError(t, err)
	assert.Contains(t, out, "1. Chinese (Recommended)")
}

func TestFormsVariantsCmd_RejectsUnknownLanguage(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "forms", "variants", "i-765", "--lang", "xx")

	assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
}

func TestFormsVariantsCmd_NoDocuments(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "forms", "variants", "n-400")

	require.NoError(t, err)
	assert.Contains(t, out, "No language versions found for N-400.")
}

func TestFormsDownloadCmd_SingleDocument(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "forms", "download", "i-130")

	require.NoError(t, err)
	assert.Contains(t, out, "Downloading I-130 from "+formsBase+"i-130.pdf")
}

func TestFormsDownloadCmd_ListsChoicesWithoutTerminal(t *testing.T) {
	setupTestServices(t)
	pickVariant = func(context.Context, string, []domain.LanguageVariant, ...tea.ProgramOption) (domain.LanguageVariant, error) {
		t.Fatal("picker must not open without a terminal")
		return domain.LanguageVariant{}, nil
	}

	out, err := execute(t, "forms", "download", "i-765", "--lang", "es")

	require.NoError(t, err)
	assert.Contains(t, out, "1. Spanish (Recommended)")
	assert.Contains(t, out, "Re-run with --choice N")
	assert.NotContains(t, out, "Downloading")
}

func TestFormsDownloadCmd_Choice(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "forms", "download", "i-765", "--lang", "es", "--choice", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "Downloading I-765 (English) from "+formsBase+"i-765.pdf")
}

func TestFormsDownloadCmd_ChoiceOutOfRange(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "forms", "download", "i-765", "--choice", "9")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "out of range (1-3)")
}

func TestFormsDownloadCmd_Picker(t *testing.T) {
	setupTestServices(t)
	isTerminal = func() bool { return true }

	var offered []domain.LanguageVariant
	pickVariant = func(
		_ context.Context, formID string, variants []domain.LanguageVariant, _ ...tea.ProgramOption,
	) (domain.LanguageVariant, error) {
		assert.Equal(t, "i-765", formID)
		offered = variants
		return variants[2], nil
	}

	out, err := execute(t, "forms", "download", "i-765")

	require.NoError(t, err)
	require.Len(t, offered, 3)
	assert.True(t, offered[0].IsCurrentLanguage)
	assert.Contains(t, out, "Downloading I-765 (Chinese) from "+formsBase+"i-765_CH.pdf")
}

func TestFormsDownloadCmd_PickerCancelled(t *testing.T) {
	setupTestServices(t)
	isTerminal = func() bool { return true }
	pickVariant = func(context.Context, string, []domain.LanguageVariant, ...tea.ProgramOption) (domain.LanguageVariant, error) {
		return domain.LanguageVariant{}, tui.ErrSelectionCancelled
	}

	out, err := execute(t, "forms", "download", "i-765")

	require.NoError(t, err)
	assert.Contains(t, out, "Download cancelled.")
}

func TestFormsDownloadCmd_NoDocumentWithoutSavedData(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "forms", "download", "n-400")

	require.NoError(t, err)
	assert.Contains(t, out, fillFormFirst)
}

func TestFormsDownloadCmd_UnknownFormFallsBackToSavedData(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "forms", "download", "i-999")

	require.NoError(t, err)
	assert.Contains(t, out, fillFormFirst)
}

func TestFormsDownloadCmd_UnknownFormWithSavedData(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "forms", "fill", "i-999", "fullName=Ana Lima")
	require.NoError(t, err)

	out, err := execute(t, "forms", "download", "i-999")

	require.NoError(t, err)
	assert.Contains(t, out, "Downloading I-999...")
	assert.Contains(t, out, `"fullName": "Ana Lima"`)
}

func TestFormsFillThenDownload(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "forms", "fill", "N-400", "fullName=Ana Lima", "yearsResident=6")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 2 answers for N-400.")

	_, err = execute(t, "forms", "fill", "n-400", "yearsResident=7")
	require.NoError(t, err)

	out, err = execute(t, "forms", "download", "n-400")
	require.NoError(t, err)
	assert.Contains(t, out, "Downloading N-400...")
	assert.Contains(t, out, `"fullName": "Ana Lima"`)
	assert.Contains(t, out, `"yearsResident": "7"`)

	out, err = execute(t, "forms", "saved")
	require.NoError(t, err)
	assert.Contains(t, out, "n-400")
}

func TestFormsFillCmd_RejectsMalformedAssignment(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "forms", "fill", "n-400", "fullName")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFormsSavedCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "forms", "saved")

	require.NoError(t, err)
	assert.Contains(t, out, "No saved answers yet.")
}

func TestParseAssignments(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    map[string]string
		wantErr bool
	}{
		{"single", []string{"a=1"}, map[string]string{"a": "1"}, false},
		{"value with equals", []string{"url=a=b"}, map[string]string{"url": "a=b"}, false},
		{"empty value", []string{"a="}, map[string]string{"a": ""}, false},
		{"trims", []string{" a = 1 "}, map[string]string{"a": "1"}, false},
		{"missing equals", []string{"a"}, nil, true},
		{"missing key", []string{"=1"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAssignments(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
