package postgresql

import (
	"context"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/user"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			email, password_hash, oauth_provider, oauth_provider_id,
			email_verified, email_verification_token, email_verification_sent_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, email, password_hash, oauth_provider, oauth_provider_id,
				  email_verified, email_verification_token, email_verification_sent_at,
				  created_at, updated_at
	`

	var created user.User
	err := q.QueryRow(ctx, query,
		newUser.Email,
		newUser.PasswordHash,
		newUser.OAuthProvider,
		newUser.OAuthProviderID,
		newUser.EmailVerified,
		newUser.EmailVerificationToken,
		newUser.EmailVerificationSentAt,
	).Scan(
		&created.ID,
		&created.Email,
		&created.PasswordHash,
		&created.OAuthProvider,
		&created.OAuthProviderID,
		&created.EmailVerified,
		&created.EmailVerificationToken,
		&created.EmailVerificationSentAt,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}

	return created, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, password_hash, oauth_provider, oauth_provider_id,
			   email_verified, email_verification_token, email_verification_sent_at,
			   created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var found user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.Email,
		&found.PasswordHash,
		&found.OAuthProvider,
		&found.OAuthProviderID,
		&found.EmailVerified,
		&found.EmailVerificationToken,
		&found.EmailVerificationSentAt,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}

	return found, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, password_hash, oauth_provider, oauth_provider_id,
			   email_verified, email_verification_token, email_verification_sent_at,
			   created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var found user.User
	err := q.QueryRow(ctx, query, email).Scan(
		&found.ID,
		&found.Email,
		&found.PasswordHash,
		&found.OAuthProvider,
		&found.OAuthProviderID,
		&found.EmailVerified,
		&found.EmailVerificationToken,
		&found.EmailVerificationSentAt,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}

	return found, nil
}

// GetByEmailVerificationToken implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmailVerificationToken(ctx context.Context, token string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, email, password_hash, oauth_provider, oauth_provider_id,
			   email_verified, email_verification_token, email_verification_sent_at,
			   created_at, updated_at
		FROM users
		WHERE email_verification_token = $1
	`

	var found user.User
	err := q.QueryRow(ctx, query, token).Scan(
		&found.ID,
		&found.Email,
		&found.PasswordHash,
		&found.OAuthProvider,
		&found.OAuthProviderID,
		&found.EmailVerified,
		&found.EmailVerificationToken,
		&found.EmailVerificationSentAt,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}

	return found, nil
}

// ExistsByEmail implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	err := q.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// LinkGoogleAccount implements user.UserRepository.
func (r *userRepositoryImpl) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE users
		SET oauth_provider = $1, oauth_provider_id = $2, updated_at = NOW()
		WHERE email = $3
		RETURNING id, email, password_hash, oauth_provider, oauth_provider_id,
				  email_verified, email_verification_token, email_verification_sent_at,
				  created_at, updated_at
	`

	var updated user.User
	err := q.QueryRow(ctx, updateQuery, "google", googleID, email).Scan(
		&updated.ID,
		&updated.Email,
		&updated.PasswordHash,
		&updated.OAuthProvider,
		&updated.OAuthProviderID,
		&updated.EmailVerified,
		&updated.EmailVerificationToken,
		&updated.EmailVerificationSentAt,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}

	return updated, nil
}

// VerifyEmail implements user.UserRepository.
func (r *userRepositoryImpl) VerifyEmail(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET email_verified = TRUE, email_verification_token = NULL, updated_at = NOW()
		WHERE id = $1
	`

	_, err := q.Exec(ctx, query, userID)
	return err
}
