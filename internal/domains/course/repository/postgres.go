package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"bootcamp-backend/internal/domains/course/model"
	"bootcamp-backend/internal/query"
	"bootcamp-backend/pkg/database"
)

const courseColumns = `
	id, bootcamp_id, user_id, title, description, weeks,
	tuition, minimum_skill, scholarship_available, created_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Collection() query.Collection {
	return query.NewPgCollection(r.pool)
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresRepository) Create(ctx context.Context, c *model.Course) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		const q = `
			INSERT INTO courses (
				id, bootcamp_id, user_id, title, description, weeks,
				tuition, minimum_skill, scholarship_available, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`
		_, err := tx.Exec(ctx, q,
			c.ID, c.BootcampID, c.UserID, c.Title, c.Description, c.Weeks,
			c.Tuition, c.MinimumSkill, c.ScholarshipAvailable, c.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create course: %w", err)
		}
		return recomputeAverageCost(ctx, tx, c.BootcampID)
	})
}

// =====================================================
// READ
// =====================================================

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	var c model.Course
	err := r.pool.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id).Scan(
		&c.ID, &c.BootcampID, &c.UserID, &c.Title, &c.Description, &c.Weeks,
		&c.Tuition, &c.MinimumSkill, &c.ScholarshipAvailable, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return &c, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresRepository) Update(ctx context.Context, c *model.Course) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		const q = `
			UPDATE courses SET
				title = $2, description = $3, weeks = $4, tuition = $5,
				minimum_skill = $6, scholarship_available = $7
			WHERE id = $1
		`
		tag, err := tx.Exec(ctx, q,
			c.ID, c.Title, c.Description, c.Weeks, c.Tuition, c.MinimumSkill, c.ScholarshipAvailable,
		)
		if err != nil {
			return fmt.Errorf("failed to update course: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrCourseNotFound
		}
		return recomputeAverageCost(ctx, tx, c.BootcampID)
	})
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresRepository) Delete(ctx context.Context, c *model.Course) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, c.ID)
		if err != nil {
			return fmt.Errorf("failed to delete course: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrCourseNotFound
		}
		return recomputeAverageCost(ctx, tx, c.BootcampID)
	})
}

// recomputeAverageCost stores the rounded mean tuition on the bootcamp
func recomputeAverageCost(ctx context.Context, tx pgx.Tx, bootcampID uuid.UUID) error {
	var mean decimal.NullDecimal
	if err := tx.QueryRow(ctx, `SELECT AVG(tuition) FROM courses WHERE bootcamp_id = $1`, bootcampID).Scan(&mean); err != nil {
		return fmt.Errorf("failed to average tuition: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE bootcamps SET average_cost = $2 WHERE id = $1`,
		bootcampID, model.AverageCost(mean)); err != nil {
		return fmt.Errorf("failed to update average cost: %w", err)
	}
	return nil
}
