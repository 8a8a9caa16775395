package repository

import (
	"context"

	"github.com/google/uuid"

	"bootcamp-backend/internal/domains/review/model"
	"bootcamp-backend/internal/query"
)

// =====================================================
// REVIEW REPOSITORY INTERFACE
// =====================================================

// Repository writes recompute the bootcamp's average rating in the same transaction
type Repository interface {
	// Create returns ErrAlreadyReviewed when the user reviewed the bootcamp before
	Create(ctx context.Context, r *model.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	Update(ctx context.Context, r *model.Review) error
	Delete(ctx context.Context, r *model.Review) error
	Collection() query.Collection
}
