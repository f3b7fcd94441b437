package domain

import "strings"

// LocalizedText maps language codes to translations of one message.
type LocalizedText map[string]string

// In returns the text for lang, falling back to English.
func (t LocalizedText) In(lang string) string {
	if s, ok := t[lang]; ok && s != "" {
		return s
	}
	return t[DefaultLanguage]
}

// ResponseRule is a canned chat reply triggered by any of its keywords.
type ResponseRule struct {
	Keywords []string      `yaml:"keywords"`
	Reply    LocalizedText `yaml:"reply"`
}

// Matches returns true if the lowercase message contains any keyword.
func (r ResponseRule) Matches(message string) bool {
	for _, k := range r.Keywords {
		if strings.Contains(message, k) {
			return true
		}
	}
	return false
}

// SimplifiedQuestion pairs a long-essay form question with a plain-language version.
type SimplifiedQuestion struct {
	Original   string        `yaml:"original"`
	Simplified LocalizedText `yaml:"simplified"`
}

// QuestionSet is the long-essay help content for one form.
type QuestionSet struct {
	FormID    string               `yaml:"form_id"`
	Name      string               `yaml:"name"`
	Aliases   []string             `yaml:"aliases"`
	Questions []SimplifiedQuestion `yaml:"questions"`
}

// Matches returns true if the lowercase message names the form or an alias.
func (q QuestionSet) Matches(message string) bool {
	if strings.Contains(message, q.FormID) {
		return true
	}
	for _, a := range q.Aliases {
		if strings.Contains(message, a) {
			return true
		}
	}
	return false
}
