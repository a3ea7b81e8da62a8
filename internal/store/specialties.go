package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SpecialtyStore returns the specialty tags for candidates, keyed by
// profile slug. A missing key in the result means "no data" for that
// candidate, never "no specialties".
type SpecialtyStore interface {
	SpecialtiesFor(ctx context.Context, slugs []string) (map[string][]string, error)
}

// PGSpecialtyStore is the PostgreSQL-backed specialty store. Lookups are
// batched: one query covers every candidate in a pool.
type PGSpecialtyStore struct {
	pool *pgxpool.Pool
}

// ConnectSpecialtyStore establishes a connection pool to the specialty
// database and verifies it.
func ConnectSpecialtyStore(ctx context.Context, databaseURL string) (*PGSpecialtyStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to specialty database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping specialty database: %w", err)
	}
	return &PGSpecialtyStore{pool: pool}, nil
}

// SpecialtiesFor fetches specialty tags for the given slugs in one query.
func (s *PGSpecialtyStore) SpecialtiesFor(ctx context.Context, slugs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(slugs))
	if len(slugs) == 0 {
		return result, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT profile_slug, specialties
		 FROM candidate_specialties
		 WHERE profile_slug = ANY($1)`,
		slugs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query specialties: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var slug string
		var specialties []string
		if err := rows.Scan(&slug, &specialties); err != nil {
			return nil, fmt.Errorf("failed to scan specialty row: %w", err)
		}
		result[slug] = specialties
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read specialty rows: %w", err)
	}
	return result, nil
}

// Close closes the connection pool.
func (s *PGSpecialtyStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
