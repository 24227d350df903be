package postgresql

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/auth"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/database"
)

type JWTRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error
	IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, olderThanDays int) (int64, error)
}

type jwtRepositoryImpl struct {
	db *database.DB
}

// NewJWTRepository creates a new instance of JWTRepository.
func NewJWTRepository(db *database.DB) JWTRepository {
	return &jwtRepositoryImpl{db: db}
}

// hashToken stores only a SHA256 of the refresh token; a leaked table does
// not leak usable tokens.
func (j *jwtRepositoryImpl) hashToken(input string) string {
	hash := sha256.Sum256([]byte(input))
	return base64.StdEncoding.EncodeToString(hash[:])
}

func (j *jwtRepositoryImpl) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error {
	q := GetQuerier(ctx, j.db)

	query := `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at, user_agent, ip_address)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := q.Exec(ctx, query,
		userID,
		j.hashToken(token),
		time.Unix(expiresAt, 0).UTC(),
		sessionReq.UserAgent,
		sessionReq.IPAddress,
	)
	return err
}

// IsRefreshTokenRevoked reports whether the session behind the token was
// revoked or has expired. An unknown token surfaces as pgx.ErrNoRows.
func (j *jwtRepositoryImpl) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	q := GetQuerier(ctx, j.db)

	query := `
		SELECT revoked_at IS NOT NULL OR expires_at <= NOW()
		FROM refresh_tokens
		WHERE token_hash = $1
		ORDER BY expires_at DESC
		LIMIT 1
	`

	var revoked bool
	if err := q.QueryRow(ctx, query, j.hashToken(token)).Scan(&revoked); err != nil {
		return false, err
	}
	return revoked, nil
}

func (j *jwtRepositoryImpl) RevokeRefreshToken(ctx context.Context, token string) error {
	q := GetQuerier(ctx, j.db)

	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE token_hash = $1 AND revoked_at IS NULL
	`
	_, err := q.Exec(ctx, query, j.hashToken(token))
	return err
}

// DeleteExpired drops sessions that expired or were revoked more than
// olderThanDays ago. Rows inside the window stay visible to revocation
// checks from stale clients.
func (j *jwtRepositoryImpl) DeleteExpired(ctx context.Context, olderThanDays int) (int64, error) {
	q := GetQuerier(ctx, j.db)

	query := `
		DELETE FROM refresh_tokens
		WHERE expires_at < NOW() - ($1 || ' days')::INTERVAL
		   OR (revoked_at IS NOT NULL AND revoked_at < NOW() - ($1 || ' days')::INTERVAL)
	`

	tag, err := q.Exec(ctx, query, olderThanDays)
	if err != nil {
		return 0, fmt.Errorf("failed to prune refresh tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}
