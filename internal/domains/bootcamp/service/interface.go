package service

import (
	"context"
	"io"
	"net/url"

	"github.com/google/uuid"

	"bootcamp-backend/internal/domains/bootcamp/model"
	"bootcamp-backend/internal/query"
	"bootcamp-backend/internal/shared/auth"
)

// =====================================================
// BOOTCAMP SERVICE INTERFACE
// =====================================================

type Service interface {
	ListBootcamps(ctx context.Context, params url.Values) (*query.Result, error)
	GetBootcamp(ctx context.Context, id uuid.UUID) (*model.Bootcamp, error)

	// GetWithinRadius finds bootcamps within distance miles of a zipcode
	GetWithinRadius(ctx context.Context, zipcode string, distance float64) ([]*model.Bootcamp, error)

	// CreateBootcamp allows one bootcamp per publisher unless elevated
	CreateBootcamp(ctx context.Context, p *auth.Principal, req model.CreateBootcampRequest) (*model.Bootcamp, error)
	UpdateBootcamp(ctx context.Context, p *auth.Principal, id uuid.UUID, req model.UpdateBootcampRequest) (*model.Bootcamp, error)
	DeleteBootcamp(ctx context.Context, p *auth.Principal, id uuid.UUID) error
	UploadPhoto(ctx context.Context, p *auth.Principal, id uuid.UUID, file io.Reader) (*model.PhotoResponse, error)
}
