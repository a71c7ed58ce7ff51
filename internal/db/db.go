// Package db provides PostgreSQL access for candidates, opportunities,
// match scores, and applications.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors returned by store methods. Callers match them with
// errors.Is and map them onto API responses.
var (
	ErrCandidateNotFound    = errors.New("candidate not found")
	ErrOpportunityNotFound  = errors.New("opportunity not found")
	ErrDuplicateApplication = errors.New("application already exists")
)

// Postgres error codes we branch on explicitly.
const (
	pgUniqueViolation        = "23505"
	pgInvalidColumnReference = "42P10" // ON CONFLICT target has no matching unique index
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// pgErrCode extracts the SQLSTATE code from a pgx error, or "" when the
// error did not originate in Postgres.
func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
