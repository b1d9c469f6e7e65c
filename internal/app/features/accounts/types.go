package accounts

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// registerRequest is the self-registration payload. Role is not accepted
// here: new accounts are always students, and only an admin can promote one.
type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=student admin"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}
