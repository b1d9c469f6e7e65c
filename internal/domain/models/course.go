// internal/domain/models/course.go
package models

import "time"

// Course is a top-level program of study (e.g. "Systems Analysis", code "ADS").
// Disciplines live in a subcollection scoped under the course document.
//
// ID is assigned by the document store on creation and is never supplied by
// clients for new courses. The same value is also persisted as an `id` field
// inside the document body, so listings read it without extra lookups.
type Course struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameCI string `json:"-"` // lowercase, diacritics-stripped
	Code   string `json:"code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
