package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"bootcamp-backend/internal/shared/auth"
)

const minPasswordLength = 6

// ========================================
// AUTH DTOs
// ========================================

// RegisterRequest creates a user or publisher account. Admins are created by admins.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("Please add a name")),
		validation.Field(&r.Email,
			validation.Required.Error("Please add an email"),
			is.EmailFormat.Error("Please add a valid email"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("Please add a password"),
			validation.Length(minPasswordLength, 0),
		),
		validation.Field(&r.Role,
			validation.In(string(auth.RoleUser), string(auth.RolePublisher)).Error("role must be user or publisher"),
		),
	)
}

// RoleOrDefault returns the requested role, user when omitted
func (r RegisterRequest) RoleOrDefault() auth.Role {
	if r.Role == "" {
		return auth.RoleUser
	}
	return auth.Role(r.Role)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Complete reports whether both credentials were supplied
func (r LoginRequest) Complete() bool {
	return strings.TrimSpace(r.Email) != "" && r.Password != ""
}

type UpdateDetailsRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (r UpdateDetailsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty),
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.EmailFormat),
	)
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r UpdatePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(minPasswordLength, 0)),
	)
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r ForgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
	)
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required, validation.Length(minPasswordLength, 0)),
	)
}

// ========================================
// ADMIN DTOs
// ========================================

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required, validation.Length(minPasswordLength, 0)),
		validation.Field(&r.Role, validation.In(
			string(auth.RoleUser), string(auth.RolePublisher), string(auth.RoleAdmin),
		)),
	)
}

type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty),
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.EmailFormat),
		validation.Field(&r.Role, validation.NilOrNotEmpty, validation.In(
			string(auth.RoleUser), string(auth.RolePublisher), string(auth.RoleAdmin),
		)),
	)
}
