// internal/domain/models/discipline.go
package models

import "time"

// Discipline is a subject inside a course (or, rarely, a free-standing one).
//
// Helpers and Seekers are sets of user IDs denormalized onto the discipline
// document. Each user document mirrors them in helpers_disciplines /
// seekers_disciplines; the membership synchronizer owns every write that
// touches either side so the two stay symmetric.
type Discipline struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	NameCI   string `json:"-"` // lowercase, diacritics-stripped
	Code     string `json:"code"`
	Semester int    `json:"semester"` // > 0

	Helpers []string `json:"helpers,omitempty"`
	Seekers []string `json:"seekers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
