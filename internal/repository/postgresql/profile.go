package postgresql

import (
	"context"
	"fmt"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/profile"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type profileRepositoryImpl struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository instance
func NewProfileRepository(db *database.DB) profile.ProfileRepository {
	return &profileRepositoryImpl{db: db}
}

// Create implements profile.ProfileRepository.
func (r *profileRepositoryImpl) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO profiles (user_id, email, full_name, display_name, bio, location, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, email, full_name, display_name, bio, location,
				  avatar_url, balance_hours, created_at, updated_at
	`

	var created profile.Profile
	err := q.QueryRow(ctx, query,
		p.UserID, p.Email, p.FullName, p.DisplayName, p.Bio, p.Location, p.AvatarURL,
	).Scan(
		&created.ID, &created.UserID, &created.Email, &created.FullName,
		&created.DisplayName, &created.Bio, &created.Location, &created.AvatarURL,
		&created.BalanceHours, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}

	return created, nil
}

// GetByID implements profile.ProfileRepository.
func (r *profileRepositoryImpl) GetByID(ctx context.Context, id string) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, email, full_name, display_name, bio, location,
			   avatar_url, balance_hours, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var found profile.Profile
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID, &found.UserID, &found.Email, &found.FullName,
		&found.DisplayName, &found.Bio, &found.Location, &found.AvatarURL,
		&found.BalanceHours, &found.CreatedAt, &found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return profile.Profile{}, profile.ErrProfileNotFound
		}
		return profile.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	return found, nil
}

// GetByUserID implements profile.ProfileRepository.
func (r *profileRepositoryImpl) GetByUserID(ctx context.Context, userID string) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, email, full_name, display_name, bio, location,
			   avatar_url, balance_hours, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var found profile.Profile
	err := q.QueryRow(ctx, query, userID).Scan(
		&found.ID, &found.UserID, &found.Email, &found.FullName,
		&found.DisplayName, &found.Bio, &found.Location, &found.AvatarURL,
		&found.BalanceHours, &found.CreatedAt, &found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return profile.Profile{}, profile.ErrProfileNotFound
		}
		return profile.Profile{}, fmt.Errorf("failed to get profile by user: %w", err)
	}

	return found, nil
}

// GetByEmail implements profile.ProfileRepository.
func (r *profileRepositoryImpl) GetByEmail(ctx context.Context, email string) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, email, full_name, display_name, bio, location,
			   avatar_url, balance_hours, created_at, updated_at
		FROM profiles
		WHERE email = $1
	`

	var found profile.Profile
	err := q.QueryRow(ctx, query, email).Scan(
		&found.ID, &found.UserID, &found.Email, &found.FullName,
		&found.DisplayName, &found.Bio, &found.Location, &found.AvatarURL,
		&found.BalanceHours, &found.CreatedAt, &found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return profile.Profile{}, profile.ErrProfileNotFound
		}
		return profile.Profile{}, fmt.Errorf("failed to get profile by email: %w", err)
	}

	return found, nil
}

// Update implements profile.ProfileRepository.
func (r *profileRepositoryImpl) Update(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE profiles
		SET full_name = $1, display_name = $2, bio = $3, location = $4,
			avatar_url = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING id, user_id, email, full_name, display_name, bio, location,
				  avatar_url, balance_hours, created_at, updated_at
	`

	var updated profile.Profile
	err := q.QueryRow(ctx, query,
		p.FullName, p.DisplayName, p.Bio, p.Location, p.AvatarURL, p.ID,
	).Scan(
		&updated.ID, &updated.UserID, &updated.Email, &updated.FullName,
		&updated.DisplayName, &updated.Bio, &updated.Location, &updated.AvatarURL,
		&updated.BalanceHours, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return profile.Profile{}, profile.ErrProfileNotFound
		}
		return profile.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return updated, nil
}

// Search implements profile.ProfileRepository.
func (r *profileRepositoryImpl) Search(ctx context.Context, search string, limit int) ([]profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, email, full_name, display_name, bio, location,
			   avatar_url, balance_hours, created_at, updated_at
		FROM profiles
		WHERE display_name ILIKE '%' || $1 || '%'
		   OR full_name ILIKE '%' || $1 || '%'
		   OR email ILIKE '%' || $1 || '%'
		ORDER BY display_name
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, search, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}
	defer rows.Close()

	var profiles []profile.Profile
	for rows.Next() {
		var p profile.Profile
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Email, &p.FullName,
			&p.DisplayName, &p.Bio, &p.Location, &p.AvatarURL,
			&p.BalanceHours, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return profiles, nil
}

// RecomputeBalance implements profile.ProfileRepository.
// The balance is always rederived from the confirmed ledger in one
// statement, never adjusted incrementally, so concurrent confirmations
// cannot drift it.
func (r *profileRepositoryImpl) RecomputeBalance(ctx context.Context, profileID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE profiles
		SET balance_hours = COALESCE((
			SELECT SUM(CASE WHEN giver_id = $1 THEN hours ELSE -hours END)
			FROM time_transactions
			WHERE status = 'confirmed' AND (giver_id = $1 OR receiver_id = $1)
		), 0),
			updated_at = NOW()
		WHERE id = $1
	`

	_, err := q.Exec(ctx, query, profileID)
	if err != nil {
		return fmt.Errorf("failed to recompute balance: %w", err)
	}

	return nil
}
