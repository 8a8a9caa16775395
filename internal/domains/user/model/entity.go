package model

import (
	"time"

	"github.com/google/uuid"

	"bootcamp-backend/internal/shared/auth"
)

// User is an account that can publish bootcamps or write reviews
type User struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Role                auth.Role  `json:"role"`
	PasswordHash        string     `json:"-"`
	ResetPasswordToken  *string    `json:"-"`
	ResetPasswordExpire *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// Principal returns the identity attached to authenticated requests
func (u *User) Principal() *auth.Principal {
	return &auth.Principal{ID: u.ID, Role: u.Role}
}

// ClearResetToken drops any pending password reset
func (u *User) ClearResetToken() {
	u.ResetPasswordToken = nil
	u.ResetPasswordExpire = nil
}

// AuthResponse is returned by register, login and password changes
type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}
