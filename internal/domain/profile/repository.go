package profile

import "context"

// ProfileRepository defines data access for member profiles
type ProfileRepository interface {
	// Create inserts a new profile
	Create(ctx context.Context, p Profile) (Profile, error)

	// GetByID retrieves a profile by id
	GetByID(ctx context.Context, id string) (Profile, error)

	// GetByUserID retrieves the profile owned by a user account
	GetByUserID(ctx context.Context, userID string) (Profile, error)

	// GetByEmail performs an exact-match lookup by email. Zero rows returns
	// ErrProfileNotFound; the contact resolver treats that as a normal
	// outcome, not a failure.
	GetByEmail(ctx context.Context, email string) (Profile, error)

	// Update applies editable profile fields (name, bio, location, avatar)
	Update(ctx context.Context, p Profile) (Profile, error)

	// Search matches display name, full name, or email fragments for the
	// member directory
	Search(ctx context.Context, query string, limit int) ([]Profile, error)

	// RecomputeBalance rewrites balance_hours from the confirmed ledger:
	// sum of hours given minus sum of hours received
	RecomputeBalance(ctx context.Context, profileID string) error
}

// PendingProfileRepository defines data access for sign-up staging records
type PendingProfileRepository interface {
	// Upsert stages profile fields by email, replacing any previous staging
	// for the same address
	Upsert(ctx context.Context, p PendingProfile) (PendingProfile, error)

	// GetByEmail retrieves the staged record for an email
	GetByEmail(ctx context.Context, email string) (PendingProfile, error)

	// DeleteByEmail removes the staged record once it has been consumed
	DeleteByEmail(ctx context.Context, email string) error

	// DeleteOlderThan purges staged records that never converted
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}
