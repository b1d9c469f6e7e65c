// internal/domain/models/user.go
package models

import "time"

// Roles. Authorization is a predicate over the role field; there is no
// separate admin type.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// IsValidRole reports whether role is one of the supported roles.
func IsValidRole(role string) bool {
	return role == RoleStudent || role == RoleAdmin
}

// User represents students and admins.
//
// HelperDisciplines / SeekerDisciplines are the user-side mirror of the
// discipline membership sets. Duplicates must never accumulate; all writes
// go through atomic set union / difference at the store, never a plain
// read-then-overwrite.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	NameCI       string `json:"-"` // lowercase, diacritics-stripped
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"` // student | admin
	Phone        string `json:"phone,omitempty"`

	HelperDisciplines []string `json:"helpers_disciplines,omitempty"`
	SeekerDisciplines []string `json:"seekers_disciplines,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user may manage courses and disciplines.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
