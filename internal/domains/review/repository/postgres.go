package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"bootcamp-backend/internal/domains/review/model"
	infradb "bootcamp-backend/internal/infrastructure/database"
	"bootcamp-backend/internal/query"
	"bootcamp-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresReviewRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresReviewRepository(pool *pgxpool.Pool) Repository {
	return &postgresReviewRepository{pool: pool}
}

func (r *postgresReviewRepository) Collection() query.Collection {
	return query.NewPgCollection(r.pool)
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresReviewRepository) Create(ctx context.Context, review *model.Review) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		const q = `
			INSERT INTO reviews (id, bootcamp_id, user_id, title, text, rating, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := tx.Exec(ctx, q,
			review.ID,
			review.BootcampID,
			review.UserID,
			review.Title,
			review.Text,
			review.Rating,
			review.CreatedAt,
		)
		if err != nil {
			// Check unique constraint violation
			if infradb.IsUniqueViolation(err) {
				return model.ErrAlreadyReviewed
			}
			return fmt.Errorf("failed to create review: %w", err)
		}
		return recomputeAverageRating(ctx, tx, review.BootcampID)
	})
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	q := `
		SELECT id, bootcamp_id, user_id, title, text, rating, created_at
		FROM reviews
		WHERE id = $1
	`

	var review model.Review
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&review.ID,
		&review.BootcampID,
		&review.UserID,
		&review.Title,
		&review.Text,
		&review.Rating,
		&review.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return &review, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresReviewRepository) Update(ctx context.Context, review *model.Review) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE reviews SET title = $2, text = $3, rating = $4 WHERE id = $1`,
			review.ID, review.Title, review.Text, review.Rating,
		)
		if err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrReviewNotFound
		}
		return recomputeAverageRating(ctx, tx, review.BootcampID)
	})
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresReviewRepository) Delete(ctx context.Context, review *model.Review) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, review.ID)
		if err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrReviewNotFound
		}
		return recomputeAverageRating(ctx, tx, review.BootcampID)
	})
}

// =====================================================
// AGGREGATES
// =====================================================

func recomputeAverageRating(ctx context.Context, tx pgx.Tx, bootcampID uuid.UUID) error {
	var mean decimal.NullDecimal
	if err := tx.QueryRow(ctx,
		`SELECT ROUND(AVG(rating), 2) FROM reviews WHERE bootcamp_id = $1`, bootcampID,
	).Scan(&mean); err != nil {
		return fmt.Errorf("failed to average rating: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE bootcamps SET average_rating = $2 WHERE id = $1`, bootcampID, mean); err != nil {
		return fmt.Errorf("failed to update average rating: %w", err)
	}
	return nil
}
