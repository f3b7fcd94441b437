package services

import (
	"strings"

	"github.com/custodia-labs/immigraid/internal/core/domain"
)

// defaultDescription is used for catalog records without a description.
const defaultDescription = "Official USCIS form"

// LookupTables hold the static per-form metadata keyed by form id.
type LookupTables struct {
	Fields   map[string][]string
	Category map[string]string
	Priority map[string]domain.Priority
	Stage    map[string]string
}

// Defaults applied to ids absent from the lookup tables.
var (
	defaultFields   = []string{"personalInfo", "supportingDocuments"}
	defaultCategory = "general"
	defaultPriority = domain.PriorityMedium
	defaultStage    = "general"
)

// FieldsFor returns the field list for id, or the default list.
func (t LookupTables) FieldsFor(id string) []string {
	fields, ok := t.Fields[id]
	if !ok {
		fields = defaultFields
	}
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// CategoryFor returns the category for id, or "general".
func (t LookupTables) CategoryFor(id string) string {
	if c, ok := t.Category[id]; ok {
		return c
	}
	return defaultCategory
}

// PriorityFor returns the priority for id, or medium.
func (t LookupTables) PriorityFor(id string) domain.Priority {
	if p, ok := t.Priority[id]; ok {
		return p
	}
	return defaultPriority
}

// StageFor returns the stage for id, or "general".
func (t LookupTables) StageFor(id string) string {
	if s, ok := t.Stage[id]; ok {
		return s
	}
	return defaultStage
}

// DeriveResolvedForm builds the display structure for a catalog record.
// Missing lookup entries and optional record fields degrade to defaults.
func DeriveResolvedForm(record domain.FormRecord, tables LookupTables) domain.ResolvedForm {
	id := record.ID()

	description := record.Description
	if description == "" {
		description = defaultDescription
	}

	var all []string
	if len(record.PDFs) > 0 {
		all = make([]string, len(record.PDFs))
		copy(all, record.PDFs)
	}

	return domain.ResolvedForm{
		ID:          id,
		Name:        record.Name,
		Description: description,
		Status:      domain.FormStatusPending,
		Fields:      tables.FieldsFor(id),
		Category:    tables.CategoryFor(id),
		Priority:    tables.PriorityFor(id),
		Stage:       tables.StageFor(id),
		PDFURL:      mainDocument(record.PDFs, id),
		AllPDFs:     all,
		DetailURL:   record.DetailURL,
	}
}

// mainDocument returns the first link whose filename names the form,
// else the first link, else "".
func mainDocument(urls []string, formID string) string {
	needle := formID + ".pdf"
	for _, u := range urls {
		if strings.Contains(domain.Basename(u), needle) {
			return u
		}
	}
	if len(urls) > 0 {
		return urls[0]
	}
	return ""
}

// ResolveLanguageVariants detects the language of each document link from
// its filename and returns the variants with requested-language entries
// first. Each URL appears at most once; within a group, the first candidate
// discovered for a URL wins.
//
// Detection is a substring heuristic. A code fragment that appears by
// coincidence in a filename (e.g. "ar" in "form_card.pdf") produces a
// variant for that language.
func ResolveLanguageVariants(pdfURLs []string, requested string) []domain.LanguageVariant {
	codes := domain.LanguageCodes()
	candidates := make([]domain.LanguageVariant, 0, len(pdfURLs))

	for _, u := range pdfURLs {
		filename := strings.ToLower(domain.Basename(u))

		for _, lc := range codes {
			for _, token := range lc.Tokens() {
				if strings.Contains(filename, strings.ToLower(token)) {
					candidates = append(candidates, domain.LanguageVariant{
						URL:               u,
						Language:          lc.Code,
						LanguageName:      lc.Name,
						IsCurrentLanguage: lc.Code == requested,
					})
				}
			}
		}

		if isDefaultDocument(filename) {
			candidates = append(candidates, domain.LanguageVariant{
				URL:               u,
				Language:          domain.DefaultLanguage,
				LanguageName:      domain.LanguageName(domain.DefaultLanguage),
				IsCurrentLanguage: requested == domain.DefaultLanguage,
			})
		}
	}

	seen := make(map[string]bool, len(candidates))
	variants := make([]domain.LanguageVariant, 0, len(candidates))
	for _, current := range []bool{true, false} {
		for _, c := range candidates {
			if c.IsCurrentLanguage != current || seen[c.URL] {
				continue
			}
			seen[c.URL] = true
			variants = append(variants, c)
		}
	}
	return variants
}

// isDefaultDocument reports whether a lowercase filename looks like the
// English original rather than a translation or a watermarked copy.
func isDefaultDocument(filename string) bool {
	return strings.HasSuffix(filename, ".pdf") &&
		!strings.Contains(filename, "_") &&
		!strings.Contains(filename, "watermark")
}

// SelectDownloadTarget picks the document to open. A single variant is
// used directly. With no variants the fallback links are searched for the
// form's own filename. Two or more variants return domain.ErrChoiceRequired
// so the caller can present them.
func SelectDownloadTarget(variants []domain.LanguageVariant, fallbackURLs []string, formID string) (string, error) {
	switch {
	case len(variants) == 1:
		return variants[0].URL, nil
	case len(variants) > 1:
		return "", domain.ErrChoiceRequired
	}

	if target := mainDocument(fallbackURLs, formID); target != "" {
		return target, nil
	}
	return "", domain.ErrNoDocumentAvailable
}
