package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"booking_portal_backend/internal/booking/domain"
	"booking_portal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const draftKeyPrefix = "booking:draft:"

const draftNotFoundMsg = "draft not found or expired"

// Session is the wizard session envelope stored in Redis. It carries the
// draft plus the seeding read models so every merge can restore identity and
// provenance without re-reading the catalog.
type Session struct {
	UserID   uuid.UUID       `json:"userId"`
	Draft    domain.Draft    `json:"draft"`
	Service  domain.Service  `json:"service"`
	Provider domain.Provider `json:"provider"`
	Quote    *domain.Quote   `json:"quote,omitempty"`
	Step     domain.Step     `json:"step"`
}

// MergeContext builds the merge context from the session's seed data.
func (s *Session) MergeContext() domain.MergeContext {
	return domain.MergeContext{
		Service:  s.Service,
		Provider: s.Provider,
		Quote:    s.Quote,
	}
}

// Store is the Redis-backed draft session store. Sessions are TTL-scoped:
// every save refreshes the clock, an untouched session expires on its own.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore creates a draft session store with the given session TTL.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// TTL returns the configured session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Save writes the session under its draft ID and (re)arms the TTL.
func (s *Store) Save(ctx context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.rdb.Set(ctx, draftKey(session.Draft.ID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get loads a session by draft ID. Missing or expired sessions yield a
// not-found error.
func (s *Store) Get(ctx context.Context, draftID uuid.UUID) (*Session, error) {
	payload, err := s.rdb.Get(ctx, draftKey(draftID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound(draftNotFoundMsg)
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete removes a session. Deleting an absent session is not an error.
func (s *Store) Delete(ctx context.Context, draftID uuid.UUID) error {
	if err := s.rdb.Del(ctx, draftKey(draftID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func draftKey(draftID uuid.UUID) string {
	return draftKeyPrefix + draftID.String()
}
