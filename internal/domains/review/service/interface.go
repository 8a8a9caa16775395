package service

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	bootcampmodel "bootcamp-backend/internal/domains/bootcamp/model"
	"bootcamp-backend/internal/domains/review/model"
	"bootcamp-backend/internal/query"
	"bootcamp-backend/internal/shared/auth"
)

// BootcampFinder loads the reviewed bootcamp
type BootcampFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*bootcampmodel.Bootcamp, error)
}

// =====================================================
// REVIEW SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// ListReviews lists all reviews, or one bootcamp's when bootcampID is set
	ListReviews(ctx context.Context, bootcampID *uuid.UUID, params url.Values) (*query.Result, error)

	// GetReview gets review by ID
	GetReview(ctx context.Context, id uuid.UUID) (*model.Review, error)

	// CreateReview adds the principal's single review of a bootcamp
	CreateReview(ctx context.Context, p *auth.Principal, bootcampID uuid.UUID, req model.CreateReviewRequest) (*model.Review, error)

	// UpdateReview updates the principal's review
	UpdateReview(ctx context.Context, p *auth.Principal, id uuid.UUID, req model.UpdateReviewRequest) (*model.Review, error)

	// DeleteReview deletes the principal's review
	DeleteReview(ctx context.Context, p *auth.Principal, id uuid.UUID) error
}
