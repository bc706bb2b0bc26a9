// Package repository provides suggestion queries over the catalog tables.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Suggestion is one typeahead hit.
type Suggestion struct {
	ID    int64  `db:"id"`
	Type  string `db:"type"` // "service" or "provider"
	Label string `db:"label"`
}

// Repository provides database operations for suggestions.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new search repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Suggest returns services and providers whose names contain the query,
// services first, capped at limit.
func (r *Repository) Suggest(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	sql := `
		SELECT id, 'service' AS type, title AS label
		FROM services
		WHERE active AND title ILIKE '%' || $1 || '%'
		UNION ALL
		SELECT id, 'provider' AS type, name AS label
		FROM providers
		WHERE active AND name ILIKE '%' || $1 || '%'
		ORDER BY type DESC, label
		LIMIT $2`

	rows, err := r.pool.Query(ctx, sql, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []Suggestion
	for rows.Next() {
		var s Suggestion
		if err := rows.Scan(&s.ID, &s.Type, &s.Label); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		suggestions = append(suggestions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read suggestions: %w", err)
	}

	return suggestions, nil
}
