package user

import "time"

// User is the account identity record. Everything social lives on the
// linked Profile; a User only authenticates.
type User struct {
	ID                      string
	Email                   string
	PasswordHash            *string
	OAuthProvider           *string
	OAuthProviderID         *string
	EmailVerified           bool
	EmailVerificationToken  *string
	EmailVerificationSentAt *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// HasPassword reports whether the account can use password login. OAuth-only
// accounts carry no hash.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
