package repository

import (
	"context"

	"github.com/google/uuid"

	"bootcamp-backend/internal/domains/bootcamp/model"
	"bootcamp-backend/internal/query"
)

// =====================================================
// BOOTCAMP REPOSITORY INTERFACE
// =====================================================

type Repository interface {
	Create(ctx context.Context, b *model.Bootcamp) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Bootcamp, error)

	// ExistsByOwner reports whether the user already published a bootcamp
	ExistsByOwner(ctx context.Context, userID uuid.UUID) (bool, error)

	Update(ctx context.Context, b *model.Bootcamp) error
	UpdatePhoto(ctx context.Context, id uuid.UUID, photo string) error

	// Delete removes the bootcamp with its courses and reviews
	Delete(ctx context.Context, id uuid.UUID) error

	// WithinRadius returns bootcamps whose great-circle distance from
	// (lat, lng) is at most radius, expressed in radians
	WithinRadius(ctx context.Context, lat, lng, radius float64) ([]*model.Bootcamp, error)

	Collection() query.Collection
}
