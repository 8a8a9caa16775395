package service

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	bootcampmodel "bootcamp-backend/internal/domains/bootcamp/model"
	"bootcamp-backend/internal/domains/review/model"
	"bootcamp-backend/internal/domains/review/repository"
	"bootcamp-backend/internal/ownership"
	"bootcamp-backend/internal/query"
	"bootcamp-backend/internal/shared/apperror"
	"bootcamp-backend/internal/shared/auth"
)

const resourceName = "review"

// =====================================================
// REVIEW SERVICE
// =====================================================

type reviewService struct {
	repo      repository.Repository
	bootcamps BootcampFinder
	guard     *ownership.Guard
	now       func() time.Time
}

func NewReviewService(repo repository.Repository, bootcamps BootcampFinder, guard *ownership.Guard) ServiceInterface {
	return &reviewService{
		repo:      repo,
		bootcamps: bootcamps,
		guard:     guard,
		now:       time.Now,
	}
}

func (s *reviewService) ListReviews(ctx context.Context, bootcampID *uuid.UUID, params url.Values) (*query.Result, error) {
	opts := query.Options{Expand: bootcampmodel.Summary}
	if bootcampID != nil {
		opts.Scope = []query.Predicate{query.Eq("bootcamp", bootcampID.String())}
	}
	return query.Run(ctx, s.repo.Collection(), model.Schema, params, opts)
}

func (s *reviewService) GetReview(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, id)
	}
	return review, nil
}

func (s *reviewService) CreateReview(ctx context.Context, p *auth.Principal, bootcampID uuid.UUID, req model.CreateReviewRequest) (*model.Review, error) {
	if p == nil {
		return nil, apperror.Unauthorized("Not authorized to access this route")
	}

	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation("%s", err.Error())
	}

	// Step 2: Bootcamp must exist
	if _, err := s.bootcamps.GetByID(ctx, bootcampID); err != nil {
		if errors.Is(err, bootcampmodel.ErrBootcampNotFound) {
			return nil, apperror.NotFound("No bootcamp with the id of %s", bootcampID)
		}
		return nil, apperror.Internal(err)
	}

	// Step 3: Insert, the store enforces one review per user and bootcamp
	review := &model.Review{
		ID:         uuid.New(),
		BootcampID: bootcampID,
		UserID:     p.ID,
		Title:      req.Title,
		Text:       req.Text,
		Rating:     req.Rating,
		CreatedAt:  s.now(),
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, mapRepoError(err, review.ID)
	}

	log.Info().
		Str("review_id", review.ID.String()).
		Str("bootcamp_id", bootcampID.String()).
		Int("rating", review.Rating).
		Msg("Review created")
	return review, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, p *auth.Principal, id uuid.UUID, req model.UpdateReviewRequest) (*model.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation("%s", err.Error())
	}

	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, id)
	}
	if err := s.guard.Authorize(p, ownership.ActionUpdate, resourceName, review); err != nil {
		return nil, err
	}

	req.Apply(review)
	if err := s.repo.Update(ctx, review); err != nil {
		return nil, mapRepoError(err, id)
	}
	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, p *auth.Principal, id uuid.UUID) error {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapRepoError(err, id)
	}
	if err := s.guard.Authorize(p, ownership.ActionDelete, resourceName, review); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, review); err != nil {
		return mapRepoError(err, id)
	}
	return nil
}

func mapRepoError(err error, id uuid.UUID) error {
	switch {
	case errors.Is(err, model.ErrReviewNotFound):
		return apperror.NotFound("No review found with the id of %s", id)
	case errors.Is(err, model.ErrAlreadyReviewed):
		return apperror.Wrap(apperror.KindValidation, "Duplicate field value entered", err)
	default:
		return apperror.Internal(err)
	}
}
