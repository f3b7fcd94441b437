package domain

// DefaultLanguage is the language used when no preference is stored.
const DefaultLanguage = "en"

// LanguageCode ties a language to the filename tokens that identify it.
type LanguageCode struct {
	// Code is the ISO-639-1-like language code (e.g. "es").
	Code string

	// Token is the uppercase filename fragment (e.g. "ES").
	Token string

	// Name is the English display name (e.g. "Spanish").
	Name string
}

// Tokens returns the substrings tested against a filename, in match order.
func (l LanguageCode) Tokens() []string {
	return []string{l.Token, l.Name}
}

// languageCodes is the fixed filename code table, in declaration order.
// Matching order matters: variants are discovered in this order.
var languageCodes = []LanguageCode{
	{Code: "es", Token: "ES", Name: "Spanish"},
	{Code: "zh", Token: "CH", Name: "Chinese"},
	{Code: "ar", Token: "AR", Name: "Arabic"},
	{Code: "hi", Token: "HC", Name: "Hindi"},
	{Code: "pt", Token: "PT", Name: "Portuguese"},
	{Code: "ru", Token: "RU", Name: "Russian"},
	{Code: "fr", Token: "FR", Name: "French"},
	{Code: "so", Token: "SO", Name: "Somali"},
	{Code: "vi", Token: "VI", Name: "Vietnamese"},
	{Code: "tr", Token: "TUR", Name: "Turkish"},
	{Code: "ps", Token: "PSH", Name: "Pashto"},
	{Code: "dar", Token: "DAR", Name: "Dari"},
}

// LanguageCodes returns a copy of the filename code table.
func LanguageCodes() []LanguageCode {
	out := make([]LanguageCode, len(languageCodes))
	copy(out, languageCodes)
	return out
}

// LanguageName returns the display name for a code, "English" for the
// default language, or the code itself when unknown.
func LanguageName(code string) string {
	if code == DefaultLanguage {
		return "English"
	}
	for _, l := range languageCodes {
		if l.Code == code {
			return l.Name
		}
	}
	return code
}

// IsSupportedLanguage returns true for English and every code in the table.
func IsSupportedLanguage(code string) bool {
	if code == DefaultLanguage {
		return true
	}
	for _, l := range languageCodes {
		if l.Code == code {
			return true
		}
	}
	return false
}

// LanguageVariant is one candidate document link tagged with a detected language.
type LanguageVariant struct {
	URL               string `json:"url"`
	Language          string `json:"language"`
	LanguageName      string `json:"language_name"`
	IsCurrentLanguage bool   `json:"is_current_language"`
}

// Label returns the display name, marked as recommended for the current language.
func (v LanguageVariant) Label() string {
	if v.IsCurrentLanguage {
		return v.LanguageName + " (Recommended)"
	}
	return v.LanguageName
}
