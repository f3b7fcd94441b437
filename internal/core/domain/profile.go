package domain

// ProfileSteps is the number of onboarding steps tracked by Progress.
const ProfileSteps = 3

// Profile is the user's self-reported data, keyed by form field name.
type Profile map[string]string

// FormData is saved answers for one form, keyed by field id.
type FormData map[string]string

// Progress summarises onboarding completion.
type Progress struct {
	Completed int
	Remaining int
	Percent   int
}

// NewProgress builds a Progress from the number of completed steps.
func NewProgress(completed int) Progress {
	if completed < 0 {
		completed = 0
	}
	if completed > ProfileSteps {
		completed = ProfileSteps
	}
	return Progress{
		Completed: completed,
		Remaining: ProfileSteps - completed,
		Percent:   toPercent(float64(completed) / ProfileSteps),
	}
}
