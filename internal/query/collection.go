package query

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Record is one projected row keyed by API field name
type Record map[string]any

// Collection executes compiled queries
type Collection interface {
	Count(ctx context.Context, q *Query) (int, error)
	Find(ctx context.Context, q *Query) ([]Record, error)
}

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgCollection runs queries against Postgres
type PgCollection struct {
	db DBTX
}

func NewPgCollection(db DBTX) *PgCollection {
	return &PgCollection{db: db}
}

func (c *PgCollection) Count(ctx context.Context, q *Query) (int, error) {
	sql, args := q.CountSQL()

	var total int
	if err := c.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", q.table, err)
	}
	return total, nil
}

func (c *PgCollection) Find(ctx context.Context, q *Query) ([]Record, error) {
	sql, args := q.SelectSQL()

	rows, err := c.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", q.table, err)
	}

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", q.table, err)
	}

	records := make([]Record, len(maps))
	for i, m := range maps {
		records[i] = m
	}
	return records, nil
}
