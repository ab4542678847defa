package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/skilltrack/tms-api/internal/models"
	"github.com/skilltrack/tms-api/internal/store"
)

// sessionStore persists refresh tokens in the refresh_tokens table.
type sessionStore struct {
	db *sqlx.DB
}

var _ store.SessionStore = (*sessionStore)(nil)

func (s *sessionStore) CreateRefreshToken(ctx context.Context, token models.RefreshToken) error {
	const query = `INSERT INTO refresh_tokens (id, user_id, token, expires_at, created_at, revoked, revoked_at)
		VALUES (:id, :user_id, :token, :expires_at, :created_at, :revoked, :revoked_at)`
	if _, err := s.db.NamedExecContext(ctx, query, token); err != nil {
		return translateErr("create refresh token", err)
	}
	return nil
}

func (s *sessionStore) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var stored models.RefreshToken
	if err := s.db.GetContext(ctx, &stored, "SELECT * FROM refresh_tokens WHERE token = $1", token); err != nil {
		return nil, translateErr("find refresh token", err)
	}
	return &stored, nil
}

func (s *sessionStore) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	if _, err := s.db.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $2 WHERE id = $1", id, revokedAt); err != nil {
		return translateErr("revoke refresh token", err)
	}
	return nil
}

func (s *sessionStore) RevokeUserRefreshTokens(ctx context.Context, userID int64) error {
	if _, err := s.db.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked = TRUE, revoked_at = NOW() WHERE user_id = $1 AND NOT revoked", userID); err != nil {
		return translateErr("revoke user refresh tokens", err)
	}
	return nil
}
