package repository

import (
	"context"

	"github.com/google/uuid"

	"bootcamp-backend/internal/domains/course/model"
	"bootcamp-backend/internal/query"
)

// =====================================================
// COURSE REPOSITORY INTERFACE
// =====================================================

// Repository writes recompute the parent bootcamp's average cost
// in the same transaction.
type Repository interface {
	Create(ctx context.Context, c *model.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	Update(ctx context.Context, c *model.Course) error
	Delete(ctx context.Context, c *model.Course) error
	Collection() query.Collection
}
