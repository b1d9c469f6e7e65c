package admin

import "github.com/go-playground/validator/v10"

var validate = validator.New()

type createCourseRequest struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code,omitempty"`
}

type updateCourseRequest struct {
	Name string `json:"name,omitempty"`
	Code string `json:"code,omitempty"`
}

// createDisciplineRequest optionally carries an explicit id so imports from
// an external academic system can keep their identifiers.
type createDisciplineRequest struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name" validate:"required"`
	Code     string `json:"code,omitempty"`
	Semester int    `json:"semester,omitempty" validate:"omitempty,min=1"`
}

type updateDisciplineRequest struct {
	Name     string `json:"name,omitempty"`
	Code     string `json:"code,omitempty"`
	Semester int    `json:"semester,omitempty" validate:"omitempty,min=1"`
}
