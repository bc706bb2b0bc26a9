// Package service provides typeahead suggestions over the catalog.
package service

import (
	"context"
	"strings"

	"booking_portal_backend/internal/search/repository"
	"booking_portal_backend/internal/search/transport"
)

const defaultLimit = 10

// Suggester queries suggestion rows. Satisfied by *repository.Repository.
type Suggester interface {
	Suggest(ctx context.Context, query string, limit int) ([]repository.Suggestion, error)
}

// Service handles suggestion lookups.
type Service struct {
	repo Suggester
}

// New creates a new search service.
func New(repo Suggester) *Service {
	return &Service{repo: repo}
}

// Suggest returns service and provider suggestions for a partial query.
func (s *Service) Suggest(ctx context.Context, query transport.SuggestionsQuery) ([]transport.SuggestionResponse, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.repo.Suggest(ctx, strings.TrimSpace(query.Q), limit)
	if err != nil {
		return nil, err
	}

	out := make([]transport.SuggestionResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, transport.SuggestionResponse{ID: row.ID, Type: row.Type, Label: row.Label})
	}
	return out, nil
}
