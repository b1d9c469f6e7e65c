package assignments

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// assignmentRequest is the shared payload for assigning, replacing, and
// removing a user's disciplines for one help type within a course.
type assignmentRequest struct {
	UserID      string   `json:"user_id" validate:"required"`
	CourseID    string   `json:"course_id" validate:"required"`
	TypeHelp    string   `json:"type_help" validate:"required,oneof=offer_help seek_help"`
	Disciplines []string `json:"discipline_ids" validate:"required"`
}
