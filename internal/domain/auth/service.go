package auth

import (
	"context"
)

type AuthService interface {
	// SignUp creates an unverified account with a staged pending profile
	// and sends the verification email
	SignUp(ctx context.Context, req SignUpRequest) (SignUpResponse, error)

	// VerifyEmail marks the account verified, materializes the profile from
	// its pending record, and replays any staged time log
	VerifyEmail(ctx context.Context, req VerifyEmailRequest) (VerifyEmailResponse, error)

	Login(ctx context.Context, req LoginRequest, tracking SessionTrackingRequest) (TokenResponse, error)

	// LoginWithGoogle signs in (or signs up) a user from verified Google
	// account info. OAuth accounts skip email verification, so the profile
	// materializes here on the first login.
	LoginWithGoogle(ctx context.Context, googleEmail, googleID, googleName string, tracking SessionTrackingRequest) (TokenResponse, error)

	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
}
