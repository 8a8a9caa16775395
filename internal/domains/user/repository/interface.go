package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bootcamp-backend/internal/domains/user/model"
	"bootcamp-backend/internal/query"
)

// =====================================================
// USER REPOSITORY INTERFACE
// =====================================================

type Repository interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByResetToken finds the user holding the hashed reset token
	GetByResetToken(ctx context.Context, hash string) (*model.User, error)

	// Update writes name, email and role
	Update(ctx context.Context, u *model.User) error

	// UpdatePassword stores a new hash and clears any pending reset
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// SetResetToken stores or clears (nil, nil) the reset token fields
	SetResetToken(ctx context.Context, id uuid.UUID, hash *string, expire *time.Time) error

	Delete(ctx context.Context, id uuid.UUID) error

	// Collection backs the admin listing
	Collection() query.Collection
}
