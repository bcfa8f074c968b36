package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/expensedesk/reimbursement-service/internal/domain"
)

// ErrSessionNotFound is returned for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

const sessionKeyPrefix = "session:"

// SessionStore persists login sessions.
type SessionStore interface {
	Create(ctx context.Context, principal domain.Principal) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

type sessionRecord struct {
	Principal domain.Principal `json:"principal"`
	IssuedAt  time.Time        `json:"issuedAt"`
	ExpiresAt time.Time        `json:"expiresAt"`
}

// RedisSessionStore keeps one key per session and lets redis expire it.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisSessionStore builds a store whose sessions live for ttl.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl, now: time.Now}
}

func (s *RedisSessionStore) Create(ctx context.Context, principal domain.Principal) (*domain.Session, error) {
	issued := s.now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		Principal: principal,
		IssuedAt:  issued,
		ExpiresAt: issued.Add(s.ttl),
	}

	raw, err := json.Marshal(sessionRecord{Principal: principal, IssuedAt: session.IssuedAt, ExpiresAt: session.ExpiresAt})
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.ID, raw, s.ttl).Err(); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &domain.Session{ID: id, Principal: rec.Principal, IssuedAt: rec.IssuedAt, ExpiresAt: rec.ExpiresAt}, nil
}

// Delete is idempotent.
func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKeyPrefix+id).Err()
}
