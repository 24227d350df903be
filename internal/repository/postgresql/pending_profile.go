package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/profile"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type pendingProfileRepositoryImpl struct {
	db *database.DB
}

// NewPendingProfileRepository creates a new pending profile repository instance
func NewPendingProfileRepository(db *database.DB) profile.PendingProfileRepository {
	return &pendingProfileRepositoryImpl{db: db}
}

// Upsert implements profile.PendingProfileRepository.
// Re-submitting sign-up for the same email replaces the staged record
// instead of stacking a second one.
func (r *pendingProfileRepositoryImpl) Upsert(ctx context.Context, p profile.PendingProfile) (profile.PendingProfile, error) {
	q := GetQuerier(ctx, r.db)

	var timeLogJSON []byte
	if p.TimeLog != nil {
		var err error
		timeLogJSON, err = json.Marshal(p.TimeLog)
		if err != nil {
			return profile.PendingProfile{}, fmt.Errorf("failed to marshal staged time log: %w", err)
		}
	}

	query := `
		INSERT INTO pending_profiles (email, full_name, display_name, bio, location, time_log)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE
		SET full_name = EXCLUDED.full_name,
			display_name = EXCLUDED.display_name,
			bio = EXCLUDED.bio,
			location = EXCLUDED.location,
			time_log = EXCLUDED.time_log,
			created_at = NOW()
		RETURNING id, email, full_name, display_name, bio, location, time_log, created_at
	`

	var created profile.PendingProfile
	var createdTimeLogJSON []byte
	err := q.QueryRow(ctx, query,
		p.Email, p.FullName, p.DisplayName, p.Bio, p.Location, timeLogJSON,
	).Scan(
		&created.ID, &created.Email, &created.FullName, &created.DisplayName,
		&created.Bio, &created.Location, &createdTimeLogJSON, &created.CreatedAt,
	)
	if err != nil {
		return profile.PendingProfile{}, fmt.Errorf("failed to upsert pending profile: %w", err)
	}

	if createdTimeLogJSON != nil {
		created.TimeLog = &profile.StagedTimeLog{}
		json.Unmarshal(createdTimeLogJSON, created.TimeLog)
	}

	return created, nil
}

// GetByEmail implements profile.PendingProfileRepository.
func (r *pendingProfileRepositoryImpl) GetByEmail(ctx context.Context, email string) (profile.PendingProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, full_name, display_name, bio, location, time_log, created_at
		FROM pending_profiles
		WHERE email = $1
	`

	var found profile.PendingProfile
	var timeLogJSON []byte
	err := q.QueryRow(ctx, query, email).Scan(
		&found.ID, &found.Email, &found.FullName, &found.DisplayName,
		&found.Bio, &found.Location, &timeLogJSON, &found.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return profile.PendingProfile{}, profile.ErrPendingProfileNotFound
		}
		return profile.PendingProfile{}, fmt.Errorf("failed to get pending profile: %w", err)
	}

	if timeLogJSON != nil {
		found.TimeLog = &profile.StagedTimeLog{}
		json.Unmarshal(timeLogJSON, found.TimeLog)
	}

	return found, nil
}

// DeleteByEmail implements profile.PendingProfileRepository.
func (r *pendingProfileRepositoryImpl) DeleteByEmail(ctx context.Context, email string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM pending_profiles WHERE email = $1`

	_, err := q.Exec(ctx, query, email)
	if err != nil {
		return fmt.Errorf("failed to delete pending profile: %w", err)
	}

	return nil
}

// DeleteOlderThan implements profile.PendingProfileRepository.
func (r *pendingProfileRepositoryImpl) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM pending_profiles WHERE created_at < NOW() - ($1 || ' days')::INTERVAL`

	tag, err := q.Exec(ctx, query, days)
	if err != nil {
		return 0, fmt.Errorf("failed to purge pending profiles: %w", err)
	}

	return tag.RowsAffected(), nil
}
