package services

import "github.com/custodia-labs/immigraid/internal/core/domain"

// keyForms are the catalog forms surfaced to the user, in display order.
var keyForms = []string{
	"i-130", "i-140", "i-485", "n-400", "i-90", "i-751", "i-601",
	"i-821", "i-765", "g-1145", "i-821d", "i-131", "i-589",
}

// KeyForms returns the ids of the forms the catalog exposes.
func KeyForms() []string {
	out := make([]string, len(keyForms))
	copy(out, keyForms)
	return out
}

func isKeyForm(id string) bool {
	for _, k := range keyForms {
		if k == id {
			return true
		}
	}
	return false
}

// DefaultLookupTables returns the built-in metadata for the key forms.
func DefaultLookupTables() LookupTables {
	return LookupTables{
		Fields: map[string][]string{
			"i-130":  {"petitionerInfo", "beneficiaryInfo", "relationshipEvidence", "supportingDocuments"},
			"i-140":  {"employerInfo", "workerInfo", "jobOffer", "qualifications", "laborCertification"},
			"i-485":  {"personalInfo", "immigrationHistory", "familyInfo", "criminalHistory", "medicalExam"},
			"n-400":  {"personalInfo", "residenceHistory", "employmentHistory", "criminalHistory", "englishTest", "civicsTest"},
			"i-90":   {"personalInfo", "cardInfo", "reasonForReplacement", "supportingDocuments"},
			"i-751":  {"personalInfo", "marriageInfo", "relationshipEvidence", "supportingDocuments"},
			"i-601":  {"personalInfo", "inadmissibilityGrounds", "hardshipEvidence", "supportingDocuments"},
			"i-821":  {"personalInfo", "countryOfOrigin", "entryDate", "supportingDocuments"},
			"i-765":  {"personalInfo", "immigrationStatus", "employmentHistory", "supportingDocuments"},
			"g-1145": {"personalInfo", "contactInfo", "applicationDetails"},
			"i-821d": {"personalInfo", "arrivalInfo", "educationInfo", "criminalHistory", "economicNecessity"},
			"i-131":  {"personalInfo", "travelPurpose", "travelDates", "supportingEvidence"},
			"i-589":  {"personalInfo", "asylumReason", "persecutionDetails", "supportingEvidence"},
		},
		Category: map[string]string{
			"i-130":  "family",
			"i-140":  "employment",
			"i-485":  "permanent_resident",
			"n-400":  "citizenship",
			"i-90":   "permanent_resident",
			"i-751":  "permanent_resident",
			"i-601":  "waiver",
			"i-821":  "tps",
			"i-765":  "employment",
			"g-1145": "notification",
			"i-821d": "daca",
			"i-131":  "travel",
			"i-589":  "asylum",
		},
		Priority: map[string]domain.Priority{
			"i-130":  domain.PriorityHigh,
			"i-140":  domain.PriorityHigh,
			"i-485":  domain.PriorityHigh,
			"n-400":  domain.PriorityHigh,
			"i-90":   domain.PriorityMedium,
			"i-751":  domain.PriorityHigh,
			"i-601":  domain.PriorityHigh,
			"i-821":  domain.PriorityHigh,
			"i-765":  domain.PriorityHigh,
			"g-1145": domain.PriorityLow,
			"i-821d": domain.PriorityHigh,
			"i-131":  domain.PriorityMedium,
			"i-589":  domain.PriorityHigh,
		},
		Stage: map[string]string{
			"i-130":  "family-based",
			"i-140":  "employment-based",
			"i-485":  "family-based",
			"n-400":  "naturalization",
			"i-90":   "maintenance",
			"i-751":  "maintenance",
			"i-601":  "relief",
			"i-821":  "relief",
			"i-765":  "supportive",
			"g-1145": "supportive",
			"i-821d": "relief",
			"i-131":  "supportive",
			"i-589":  "relief",
		},
	}
}

// FallbackForms returns the four forms shown when no catalog is available.
// They carry no document links.
func FallbackForms() []domain.ResolvedForm {
	tables := DefaultLookupTables()
	forms := []struct {
		id, name, description string
	}{
		{"i-130", "Form I-130 - Petition for Alien Relative",
			"Petition filed by U.S. citizen or LPR to establish family relationship for immigrant status"},
		{"i-485", "Form I-485 - Adjustment of Status",
			"Application to register permanent residence or adjust status to lawful permanent resident"},
		{"n-400", "Form N-400 - Application for Naturalization",
			"Application for lawful permanent residents to become U.S. citizens"},
		{"i-821d", "Form I-821D - DACA Application",
			"Application for Deferred Action for Childhood Arrivals"},
	}

	out := make([]domain.ResolvedForm, 0, len(forms))
	for _, f := range forms {
		out = append(out, domain.ResolvedForm{
			ID:          f.id,
			Name:        f.name,
			Description: f.description,
			Status:      domain.FormStatusPending,
			Fields:      tables.FieldsFor(f.id),
			Category:    tables.CategoryFor(f.id),
			Priority:    tables.PriorityFor(f.id),
			Stage:       tables.StageFor(f.id),
		})
	}
	return out
}
