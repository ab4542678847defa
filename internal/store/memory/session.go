package memory

import (
	"context"
	"sync"
	"time"

	"github.com/skilltrack/tms-api/internal/models"
	"github.com/skilltrack/tms-api/internal/store"
)

// sessionStore keeps refresh tokens in-process. It carries its own lock so
// session churn never contends with entity reads.
type sessionStore struct {
	mu     sync.RWMutex
	tokens map[string]*models.RefreshToken
}

var _ store.SessionStore = (*sessionStore)(nil)

func newSessionStore() *sessionStore {
	return &sessionStore{tokens: make(map[string]*models.RefreshToken)}
}

func (s *sessionStore) CreateRefreshToken(ctx context.Context, token models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := token
	s.tokens[token.ID] = &cp
	return nil
}

func (s *sessionStore) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tokens {
		if t.Token == token {
			cp := *t
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *sessionStore) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[id]
	if !ok {
		return store.ErrNotFound
	}
	t.Revoked = true
	t.RevokedAt = &revokedAt
	return nil
}

func (s *sessionStore) RevokeUserRefreshTokens(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, t := range s.tokens {
		if t.UserID == userID && !t.Revoked {
			t.Revoked = true
			revokedAt := now
			t.RevokedAt = &revokedAt
		}
	}
	return nil
}
