// internal/domain/models/helptype.go
package models

import "fmt"

// HelpType selects which side of the help relation an operation works on.
// It is the only place the discipline-side and user-side field names are
// mapped; call sites must never spell those strings themselves.
type HelpType string

const (
	OfferHelp HelpType = "offer_help" // user tutors the discipline
	SeekHelp  HelpType = "seek_help"  // user wants tutoring in the discipline
)

// ParseHelpType validates a wire value ("offer_help" | "seek_help").
func ParseHelpType(s string) (HelpType, error) {
	switch HelpType(s) {
	case OfferHelp, SeekHelp:
		return HelpType(s), nil
	}
	return "", fmt.Errorf("unknown help type %q", s)
}

// DisciplineField is the membership-set field on the discipline document.
func (t HelpType) DisciplineField() string {
	if t == OfferHelp {
		return "helpers"
	}
	return "seekers"
}

// UserField is the discipline-list field on the user document.
func (t HelpType) UserField() string {
	if t == OfferHelp {
		return "helpers_disciplines"
	}
	return "seekers_disciplines"
}

// DisciplineList returns the user-side list for this help type.
func (t HelpType) DisciplineList(u User) []string {
	if t == OfferHelp {
		return u.HelperDisciplines
	}
	return u.SeekerDisciplines
}

// Members returns the discipline-side membership set for this help type.
func (t HelpType) Members(d Discipline) []string {
	if t == OfferHelp {
		return d.Helpers
	}
	return d.Seekers
}
