package domain

import "strings"

// RequiredForm is a form a pathway asks the user to complete.
type RequiredForm struct {
	ID       string     `yaml:"id" json:"id"`
	Name     string     `yaml:"name" json:"name"`
	Priority Priority   `yaml:"priority" json:"priority"`
	Status   FormStatus `yaml:"status" json:"status"`
}

// Pathway describes one immigration route and the forms it requires.
type Pathway struct {
	Key           string         `yaml:"key" json:"key"`
	Name          string         `yaml:"name" json:"name"`
	Description   string         `yaml:"description" json:"description"`
	Status        string         `yaml:"status" json:"status"`
	Eligibility   string         `yaml:"eligibility" json:"eligibility"`
	Risks         string         `yaml:"risks" json:"risks"`
	RequiredForms []RequiredForm `yaml:"required_forms" json:"required_forms"`
}

// PathwayAvailability classifies a pathway's status text.
type PathwayAvailability string

// Availability classes.
const (
	AvailabilityAvailable  PathwayAvailability = "available"
	AvailabilityLimited    PathwayAvailability = "limited"
	AvailabilityRestricted PathwayAvailability = "restricted"
)

// Availability derives the class from the status text. "limited" and
// "court" take precedence over "cap" and "restricted".
func (p *Pathway) Availability() PathwayAvailability {
	switch {
	case strings.Contains(p.Status, "limited") || strings.Contains(p.Status, "court"):
		return AvailabilityLimited
	case strings.Contains(p.Status, "cap") || strings.Contains(p.Status, "restricted"):
		return AvailabilityRestricted
	default:
		return AvailabilityAvailable
	}
}
