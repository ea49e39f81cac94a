// Package postgres implements repository.Store on PostgreSQL with pgx.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ChatterBot_Go/internal/domain"
	"github.com/osse101/ChatterBot_Go/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store is the PostgreSQL backend. Every mutation is a single statement.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps an open pool. Migrations must already be applied.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Ping checks database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return domain.StoreError(OpPing, s.pool.Ping(ctx))
}

// Close closes the pool
func (s *Store) Close(_ context.Context) error {
	s.pool.Close()
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
