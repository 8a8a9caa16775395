package service

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	bootcampmodel "bootcamp-backend/internal/domains/bootcamp/model"
	"bootcamp-backend/internal/domains/course/model"
	"bootcamp-backend/internal/domains/course/repository"
	"bootcamp-backend/internal/ownership"
	"bootcamp-backend/internal/query"
	"bootcamp-backend/internal/shared/apperror"
	"bootcamp-backend/internal/shared/auth"
)

const resourceName = "course"

type courseService struct {
	repo      repository.Repository
	bootcamps BootcampFinder
	guard     *ownership.Guard
	now       func() time.Time
}

func NewService(repo repository.Repository, bootcamps BootcampFinder, guard *ownership.Guard) Service {
	return &courseService{
		repo:      repo,
		bootcamps: bootcamps,
		guard:     guard,
		now:       time.Now,
	}
}

func (s *courseService) ListCourses(ctx context.Context, bootcampID *uuid.UUID, params url.Values) (*query.Result, error) {
	opts := query.Options{Expand: bootcampmodel.Summary}
	if bootcampID != nil {
		opts.Scope = []query.Predicate{query.Eq("bootcamp", bootcampID.String())}
	}
	return query.Run(ctx, s.repo.Collection(), model.Schema, params, opts)
}

func (s *courseService) GetCourse(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, id)
	}
	return c, nil
}

func (s *courseService) CreateCourse(ctx context.Context, p *auth.Principal, bootcampID uuid.UUID, req model.CreateCourseRequest) (*model.Course, error) {
	if p == nil {
		return nil, apperror.Unauthorized("Not authorized to access this route")
	}
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation("%s", err.Error())
	}

	// Step 1: parent bootcamp must exist
	b, err := s.bootcamps.GetByID(ctx, bootcampID)
	if err != nil {
		if errors.Is(err, bootcampmodel.ErrBootcampNotFound) {
			return nil, apperror.NotFound("No bootcamp with the id of %s", bootcampID)
		}
		return nil, apperror.Internal(err)
	}

	// Step 2: only the bootcamp owner adds courses
	if !s.guard.CanMutate(p, ownership.ActionCreate, b) {
		return nil, apperror.Forbidden("User %s is not authorized to add a course to bootcamp %s", p.ID, b.ID)
	}

	c := &model.Course{
		ID:                   uuid.New(),
		BootcampID:           b.ID,
		UserID:               p.ID,
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
		CreatedAt:            s.now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, mapRepoError(err, c.ID)
	}

	log.Info().Str("course_id", c.ID.String()).Str("bootcamp_id", b.ID.String()).Msg("Course created")
	return c, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, p *auth.Principal, id uuid.UUID, req model.UpdateCourseRequest) (*model.Course, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation("%s", err.Error())
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, id)
	}
	if err := s.guard.Authorize(p, ownership.ActionUpdate, resourceName, c); err != nil {
		return nil, err
	}

	req.Apply(c)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, mapRepoError(err, id)
	}
	return c, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, p *auth.Principal, id uuid.UUID) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapRepoError(err, id)
	}
	if err := s.guard.Authorize(p, ownership.ActionDelete, resourceName, c); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, c); err != nil {
		return mapRepoError(err, id)
	}
	return nil
}

func mapRepoError(err error, id uuid.UUID) error {
	if errors.Is(err, model.ErrCourseNotFound) {
		return apperror.NotFound("No course with the id of %s", id)
	}
	return apperror.Internal(err)
}
