package service

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"

	"bootcamp-backend/internal/domains/user/model"
	"bootcamp-backend/internal/query"
	"bootcamp-backend/internal/shared/auth"
	"bootcamp-backend/pkg/token"
)

// =====================================================
// COLLABORATORS
// =====================================================

// TokenIssuer signs session tokens
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// ResetTokens issues and checks password reset tokens
type ResetTokens interface {
	Issue() (token.ResetToken, error)
	Verify(plain, storedHash string, storedExpiry time.Time) bool
}

// =====================================================
// USER SERVICE INTERFACE
// =====================================================

type Service interface {
	// ========================================
	// AUTH
	// ========================================

	Register(ctx context.Context, req model.RegisterRequest) (string, error)
	Login(ctx context.Context, req model.LoginRequest) (string, error)
	Me(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, req model.UpdateDetailsRequest) (*model.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, req model.UpdatePasswordRequest) (string, error)

	// ForgotPassword mails a reset link. Stored reset fields are cleared if delivery fails.
	ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, plainToken string, req model.ResetPasswordRequest) (string, error)

	// LoadPrincipal resolves a token subject for the auth middleware
	LoadPrincipal(ctx context.Context, id uuid.UUID) (*auth.Principal, error)

	// ========================================
	// ADMIN
	// ========================================

	ListUsers(ctx context.Context, params url.Values) (*query.Result, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
