package postgresql

import (
	"context"
	"fmt"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/bounty"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type bountyRepositoryImpl struct {
	db *database.DB
}

// NewBountyRepository creates a new bounty repository instance
func NewBountyRepository(db *database.DB) bounty.BountyRepository {
	return &bountyRepositoryImpl{db: db}
}

// Create implements bounty.BountyRepository.
func (r *bountyRepositoryImpl) Create(ctx context.Context, b bounty.Bounty) (bounty.Bounty, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO bounties (poster_profile_id, title, description, hours_offered, service_type, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, poster_profile_id, title, description, hours_offered, service_type,
				  status, created_at, updated_at
	`

	var created bounty.Bounty
	err := q.QueryRow(ctx, query,
		b.PosterProfileID, b.Title, b.Description, b.HoursOffered, b.ServiceType, b.Status,
	).Scan(
		&created.ID, &created.PosterProfileID, &created.Title, &created.Description,
		&created.HoursOffered, &created.ServiceType, &created.Status,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return bounty.Bounty{}, fmt.Errorf("failed to create bounty: %w", err)
	}

	return created, nil
}

// GetByID implements bounty.BountyRepository.
func (r *bountyRepositoryImpl) GetByID(ctx context.Context, id string) (bounty.Bounty, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.id, b.poster_profile_id, b.title, b.description, b.hours_offered,
			   b.service_type, b.status, b.created_at, b.updated_at,
			   p.display_name AS poster_name
		FROM bounties b
		JOIN profiles p ON p.id = b.poster_profile_id
		WHERE b.id = $1
	`

	var found bounty.Bounty
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID, &found.PosterProfileID, &found.Title, &found.Description,
		&found.HoursOffered, &found.ServiceType, &found.Status,
		&found.CreatedAt, &found.UpdatedAt, &found.PosterName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return bounty.Bounty{}, bounty.ErrBountyNotFound
		}
		return bounty.Bounty{}, fmt.Errorf("failed to get bounty: %w", err)
	}

	return found, nil
}

// ListOpen implements bounty.BountyRepository.
func (r *bountyRepositoryImpl) ListOpen(ctx context.Context, serviceType *string, limit int) ([]bounty.Bounty, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.id, b.poster_profile_id, b.title, b.description, b.hours_offered,
			   b.service_type, b.status, b.created_at, b.updated_at,
			   p.display_name AS poster_name
		FROM bounties b
		JOIN profiles p ON p.id = b.poster_profile_id
		WHERE b.status = 'open'
		  AND ($1::TEXT IS NULL OR b.service_type = $1)
		ORDER BY b.created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, serviceType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list open bounties: %w", err)
	}
	defer rows.Close()

	var bounties []bounty.Bounty
	for rows.Next() {
		var b bounty.Bounty
		err := rows.Scan(
			&b.ID, &b.PosterProfileID, &b.Title, &b.Description,
			&b.HoursOffered, &b.ServiceType, &b.Status,
			&b.CreatedAt, &b.UpdatedAt, &b.PosterName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bounty: %w", err)
		}
		bounties = append(bounties, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return bounties, nil
}

// CloseOpen implements bounty.BountyRepository.
func (r *bountyRepositoryImpl) CloseOpen(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE bounties
		SET status = 'closed', updated_at = NOW()
		WHERE id = $1 AND status = 'open'
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to close bounty: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
