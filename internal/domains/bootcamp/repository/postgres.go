package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bootcamp-backend/internal/domains/bootcamp/model"
	"bootcamp-backend/internal/infrastructure/database"
	"bootcamp-backend/internal/query"
	pkgdb "bootcamp-backend/pkg/database"
)

const bootcampColumns = `
	id, user_id, name, slug, description, website, phone, email, address,
	latitude, longitude, formatted_address, street, city, state, zipcode, country,
	careers, average_rating, average_cost, photo,
	housing, job_assistance, job_guarantee, accept_gi, created_at`

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

func (r *postgresRepository) Create(ctx context.Context, b *model.Bootcamp) error {
	const q = `
		INSERT INTO bootcamps (
			id, user_id, name, slug, description, website, phone, email, address,
			latitude, longitude, formatted_address, street, city, state, zipcode, country,
			careers, photo, housing, job_assistance, job_guarantee, accept_gi, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24
		)
	`
	_, err := r.pool.Exec(ctx, q,
		b.ID, b.UserID, b.Name, b.Slug, b.Description, b.Website, b.Phone, b.Email, b.Address,
		b.Latitude, b.Longitude, b.FormattedAddress, b.Street, b.City, b.State, b.Zipcode, b.Country,
		b.Careers, b.Photo, b.Housing, b.JobAssistance, b.JobGuarantee, b.AcceptGi, b.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return model.ErrDuplicateName
		}
		return fmt.Errorf("failed to create bootcamp: %w", err)
	}
	return nil
}

// =====================================================
// READ
// =====================================================

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Bootcamp, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+bootcampColumns+` FROM bootcamps WHERE id = $1`, id)

	b, err := scanBootcamp(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBootcampNotFound
		}
		return nil, fmt.Errorf("failed to get bootcamp: %w", err)
	}
	return b, nil
}

func (r *postgresRepository) ExistsByOwner(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bootcamps WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check bootcamp owner: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) WithinRadius(ctx context.Context, lat, lng, radius float64) ([]*model.Bootcamp, error) {
	// haversine central angle
	q := `
		SELECT ` + bootcampColumns + `
		FROM bootcamps
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
		  AND 2 * ASIN(SQRT(
				POWER(SIN(RADIANS(latitude - $1) / 2), 2) +
				COS(RADIANS($1)) * COS(RADIANS(latitude)) *
				POWER(SIN(RADIANS(longitude - $2) / 2), 2)
			)) <= $3
		ORDER BY created_at DESC, id ASC
	`
	rows, err := r.pool.Query(ctx, q, lat, lng, radius)
	if err != nil {
		return nil, fmt.Errorf("failed to query bootcamps in radius: %w", err)
	}
	defer rows.Close()

	var bootcamps []*model.Bootcamp
	for rows.Next() {
		b, err := scanBootcamp(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bootcamp: %w", err)
		}
		bootcamps = append(bootcamps, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bootcamps: %w", err)
	}
	return bootcamps, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresRepository) Update(ctx context.Context, b *model.Bootcamp) error {
	const q = `
		UPDATE bootcamps SET
			name = $2, slug = $3, description = $4, website = $5, phone = $6, email = $7, address = $8,
			latitude = $9, longitude = $10, formatted_address = $11, street = $12, city = $13,
			state = $14, zipcode = $15, country = $16, careers = $17,
			housing = $18, job_assistance = $19, job_guarantee = $20, accept_gi = $21
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, q,
		b.ID, b.Name, b.Slug, b.Description, b.Website, b.Phone, b.Email, b.Address,
		b.Latitude, b.Longitude, b.FormattedAddress, b.Street, b.City,
		b.State, b.Zipcode, b.Country, b.Careers,
		b.Housing, b.JobAssistance, b.JobGuarantee, b.AcceptGi,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return model.ErrDuplicateName
		}
		return fmt.Errorf("failed to update bootcamp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBootcampNotFound
	}
	return nil
}

func (r *postgresRepository) UpdatePhoto(ctx context.Context, id uuid.UUID, photo string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE bootcamps SET photo = $2 WHERE id = $1`, id, photo)
	if err != nil {
		return fmt.Errorf("failed to update bootcamp photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBootcampNotFound
	}
	return nil
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM reviews WHERE bootcamp_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete bootcamp reviews: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM courses WHERE bootcamp_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete bootcamp courses: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM bootcamps WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete bootcamp: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrBootcampNotFound
		}
		return nil
	})
}

func scanBootcamp(row pgx.Row) (*model.Bootcamp, error) {
	var b model.Bootcamp
	err := row.Scan(
		&b.ID, &b.UserID, &b.Name, &b.Slug, &b.Description, &b.Website, &b.Phone, &b.Email, &b.Address,
		&b.Latitude, &b.Longitude, &b.FormattedAddress, &b.Street, &b.City, &b.State, &b.Zipcode, &b.Country,
		&b.Careers, &b.AverageRating, &b.AverageCost, &b.Photo,
		&b.Housing, &b.JobAssistance, &b.JobGuarantee, &b.AcceptGi, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
