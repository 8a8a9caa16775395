package service

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	bootcampmodel "bootcamp-backend/internal/domains/bootcamp/model"
	"bootcamp-backend/internal/domains/course/model"
	"bootcamp-backend/internal/query"
	"bootcamp-backend/internal/shared/auth"
)

// BootcampFinder loads the parent bootcamp of a course
type BootcampFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*bootcampmodel.Bootcamp, error)
}

// =====================================================
// COURSE SERVICE INTERFACE
// =====================================================

type Service interface {
	// ListCourses lists all courses, or one bootcamp's when bootcampID is set
	ListCourses(ctx context.Context, bootcampID *uuid.UUID, params url.Values) (*query.Result, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*model.Course, error)

	// CreateCourse requires ownership of the bootcamp
	CreateCourse(ctx context.Context, p *auth.Principal, bootcampID uuid.UUID, req model.CreateCourseRequest) (*model.Course, error)
	UpdateCourse(ctx context.Context, p *auth.Principal, id uuid.UUID, req model.UpdateCourseRequest) (*model.Course, error)
	DeleteCourse(ctx context.Context, p *auth.Principal, id uuid.UUID) error
}
