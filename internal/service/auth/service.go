package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aleenavigoda/yardso-sub000/internal/config"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/auth"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/profile"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/timelog"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/user"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/database"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/email"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/jwt"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/token"
	"github.com/aleenavigoda/yardso-sub000/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db  *database.DB
	cfg *config.Config
	user.UserRepository
	jwt.Service
	postgresql.JWTRepository
	profileRepo        profile.ProfileRepository
	pendingProfileRepo profile.PendingProfileRepository
	emailService       email.EmailService
	timeLogService     timelog.TimeLogService
}

func NewAuthService(
	db *database.DB,
	cfg *config.Config,
	userRepository user.UserRepository,
	jwtService jwt.Service,
	jwtRepository postgresql.JWTRepository,
	profileRepository profile.ProfileRepository,
	pendingProfileRepository profile.PendingProfileRepository,
	emailService email.EmailService,
	timeLogService timelog.TimeLogService,
) auth.AuthService {
	return &AuthServiceImpl{
		db:                 db,
		cfg:                cfg,
		UserRepository:     userRepository,
		Service:            jwtService,
		JWTRepository:      jwtRepository,
		profileRepo:        profileRepository,
		pendingProfileRepo: pendingProfileRepository,
		emailService:       emailService,
		timeLogService:     timeLogService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	if password == "" {
		return "", nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	hashed := string(hash)
	return hashed, nil
}

// localPart falls back to the email's local part when no display name was
// ever captured for the account.
func localPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

// SignUp implements auth.AuthService.
func (a *AuthServiceImpl) SignUp(ctx context.Context, req auth.SignUpRequest) (auth.SignUpResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.SignUpResponse{}, err
	}

	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := a.UserRepository.ExistsByEmail(ctx, emailAddr)
	if err != nil {
		return auth.SignUpResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return auth.SignUpResponse{}, auth.ErrEmailTaken
	}

	hashedPassword, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.SignUpResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	verificationToken, err := token.NewOpaque()
	if err != nil {
		return auth.SignUpResponse{}, fmt.Errorf("failed to generate verification token: %w", err)
	}
	now := time.Now()

	var created user.User
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err = a.UserRepository.Create(txCtx, user.User{
			Email:                   emailAddr,
			PasswordHash:            &hashedPassword,
			EmailVerified:           false,
			EmailVerificationToken:  &verificationToken,
			EmailVerificationSentAt: &now,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		// Profile fields wait in staging until the email is verified
		pending := profile.PendingProfile{
			Email:       emailAddr,
			FullName:    req.FullName,
			DisplayName: req.DisplayName,
			Bio:         req.Bio,
			Location:    req.Location,
		}
		if req.TimeLog != nil {
			pending.TimeLog = &profile.StagedTimeLog{
				ContactEmail: strings.ToLower(strings.TrimSpace(req.TimeLog.ContactEmail)),
				ContactName:  req.TimeLog.ContactName,
				Mode:         req.TimeLog.Mode,
				Hours:        req.TimeLog.Hours,
				Description:  req.TimeLog.Description,
				ServiceType:  req.TimeLog.ServiceType,
			}
		}
		if _, err := a.pendingProfileRepo.Upsert(txCtx, pending); err != nil {
			return fmt.Errorf("failed to stage pending profile: %w", err)
		}

		return nil
	})
	if err != nil {
		return auth.SignUpResponse{}, err
	}

	slog.Info("Account created, awaiting verification",
		"user_id", created.ID,
		"staged_time_log", req.TimeLog != nil)

	go a.sendVerificationEmail(created.Email, req.DisplayName, verificationToken)

	return auth.SignUpResponse{
		UserID:  created.ID,
		Email:   created.Email,
		Message: "check your email to verify your account",
	}, nil
}

func (a *AuthServiceImpl) sendVerificationEmail(to, name, verificationToken string) {
	link := a.cfg.VerificationURL(verificationToken)
	if err := a.emailService.SendVerification(to, name, link); err != nil {
		slog.Warn("Failed to send verification email", "email", to, "error", err)
	}
}

// VerifyEmail implements auth.AuthService.
func (a *AuthServiceImpl) VerifyEmail(ctx context.Context, req auth.VerifyEmailRequest) (auth.VerifyEmailResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.VerifyEmailResponse{}, err
	}

	// Verification nulls the stored token, so a reused link simply finds
	// no user and fails here
	userData, err := a.UserRepository.GetByEmailVerificationToken(ctx, req.Token)
	if err != nil {
		if err == pgx.ErrNoRows {
			return auth.VerifyEmailResponse{}, auth.ErrInvalidToken
		}
		return auth.VerifyEmailResponse{}, fmt.Errorf("failed to get user by verification token: %w", err)
	}

	var createdProfile profile.Profile
	var staged *profile.StagedTimeLog

	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := a.UserRepository.VerifyEmail(txCtx, userData.ID); err != nil {
			return fmt.Errorf("failed to mark email verified: %w", err)
		}

		pending, err := a.pendingProfileRepo.GetByEmail(txCtx, userData.Email)
		if err != nil {
			if !errors.Is(err, profile.ErrPendingProfileNotFound) {
				return fmt.Errorf("failed to get pending profile: %w", err)
			}
			// The staged record was purged before the user verified, fall
			// back to a minimal profile
			pending = profile.PendingProfile{
				Email:       userData.Email,
				FullName:    localPart(userData.Email),
				DisplayName: localPart(userData.Email),
			}
		}

		createdProfile, err = a.profileRepo.Create(txCtx, profile.Profile{
			UserID:      userData.ID,
			Email:       userData.Email,
			FullName:    pending.FullName,
			DisplayName: pending.DisplayName,
			Bio:         pending.Bio,
			Location:    pending.Location,
		})
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
				return profile.ErrProfileAlreadyExists
			}
			return fmt.Errorf("failed to create profile: %w", err)
		}

		staged = pending.TimeLog

		if err := a.pendingProfileRepo.DeleteByEmail(txCtx, userData.Email); err != nil {
			return fmt.Errorf("failed to consume pending profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.VerifyEmailResponse{}, err
	}

	slog.Info("Email verified, profile materialized",
		"user_id", userData.ID,
		"profile_id", createdProfile.ID)

	// Replay the staged log now that the ledger has a profile to write
	// against. A failed replay never rolls back the verification.
	if staged != nil {
		a.replayStagedLog(ctx, createdProfile.ID, staged)
	}

	var tokens auth.TokenResponse
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		profileID := createdProfile.ID
		tokens.AccessToken, tokens.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, &profileID)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokens.RefreshToken, tokens.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		err = a.CreateRefreshToken(txCtx, userData.ID, tokens.RefreshToken, tokens.RefreshTokenExpiresIn, auth.SessionTrackingRequest{})
		if err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.VerifyEmailResponse{}, err
	}

	return auth.VerifyEmailResponse{
		ProfileID: createdProfile.ID,
		Tokens:    tokens,
	}, nil
}

// replayStagedLog pushes the sign-up exchange through the regular ledger
// writer. The contact may or may not be a member by now; either branch is
// fine.
func (a *AuthServiceImpl) replayStagedLog(ctx context.Context, profileID string, staged *profile.StagedTimeLog) {
	result, err := a.timeLogService.LogTime(ctx, profileID, timelog.LogTimeRequest{
		Contact:     staged.ContactEmail,
		Name:        staged.ContactName,
		Hours:       staged.Hours,
		Mode:        timelog.Mode(staged.Mode),
		Description: staged.Description,
		ServiceType: staged.ServiceType,
	})
	if err != nil {
		slog.Warn("Failed to replay staged time log",
			"profile_id", profileID, "error", err)
		return
	}
	slog.Info("Replayed staged time log",
		"profile_id", profileID, "kind", result.Kind)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse

	userData, err := a.UserRepository.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(loginReq.Email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	// OAuth-only accounts have no hash and cannot use password login
	if !userData.HasPassword() {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if !userData.EmailVerified {
		return auth.TokenResponse{}, auth.ErrEmailNotVerified
	}

	profileID, err := a.lookupProfileID(ctx, userData.ID)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, profileID)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		err = a.CreateRefreshToken(txCtx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, sessionTrackReq)
		if err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, googleEmail, googleID, googleName string, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse
	var userExists bool

	emailAddr := strings.ToLower(strings.TrimSpace(googleEmail))

	userData, err := a.UserRepository.GetByEmail(ctx, emailAddr)
	if err != nil {
		if err == pgx.ErrNoRows {
			userExists = false
		} else {
			return auth.TokenResponse{}, fmt.Errorf("failed to get user data by email: %w", err)
		}
	}

	if userData.ID != "" {
		userExists = true
	}

	// User does not exist so we create one
	if !userExists {
		newUser := user.User{
			Email:           emailAddr,
			PasswordHash:    nil,
			OAuthProvider:   func(s string) *string { return &s }("google"),
			OAuthProviderID: &googleID,
			EmailVerified:   true,
		}
		userData, err = a.UserRepository.Create(ctx, newUser)
		if err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to create user: %w", err)
		}
	}

	// If user exists, link google account
	if userData.OAuthProvider == nil || userData.OAuthProviderID == nil {
		userData, err = a.UserRepository.LinkGoogleAccount(ctx, googleID, userData.Email)
		if err != nil {
			return auth.TokenResponse{}, err
		}
	}

	profileID, err := a.ensureProfile(ctx, userData, googleName)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	// Generate token
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, profileID)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		err = a.CreateRefreshToken(txCtx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, sessionTrackReq)
		if err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// ensureProfile returns the user's profile id, creating the profile on the
// spot for OAuth accounts that never went through email verification.
func (a *AuthServiceImpl) ensureProfile(ctx context.Context, userData user.User, displayName string) (*string, error) {
	profileData, err := a.profileRepo.GetByUserID(ctx, userData.ID)
	if err == nil {
		return &profileData.ID, nil
	}
	if !errors.Is(err, profile.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to get profile by user id: %w", err)
	}

	name := strings.TrimSpace(displayName)
	if name == "" {
		name = localPart(userData.Email)
	}

	created, err := a.profileRepo.Create(ctx, profile.Profile{
		UserID:      userData.ID,
		Email:       userData.Email,
		FullName:    name,
		DisplayName: name,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			// Lost a race with a concurrent sign-in materializing the same
			// profile, use the row that won
			existing, lookupErr := a.profileRepo.GetByUserID(ctx, userData.ID)
			if lookupErr != nil {
				return nil, fmt.Errorf("failed to get profile after duplicate create: %w", lookupErr)
			}
			return &existing.ID, nil
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	slog.Info("Profile materialized from Google sign-in",
		"user_id", userData.ID,
		"profile_id", created.ID)

	return &created.ID, nil
}

func (a *AuthServiceImpl) lookupProfileID(ctx context.Context, userID string) (*string, error) {
	profileData, err := a.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile by user id: %w", err)
	}
	return &profileData.ID, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	err := postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		isRevoked, err := a.JWTRepository.IsRefreshTokenRevoked(txCtx, refreshToken)
		if err != nil {
			if err == pgx.ErrNoRows {
				return auth.ErrInvalidToken
			}
			return fmt.Errorf("failed to check if refresh token is revoked: %w", err)
		}
		if !isRevoked {
			if err := a.JWTRepository.RevokeRefreshToken(txCtx, refreshToken); err != nil {
				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		}
		return nil
	})

	if err != nil {
		return err
	}

	return nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	var accessTokenResponse auth.AccessTokenResponse

	// 1. Verify JWT signature and expiry
	verified, err := jwtauth.VerifyToken(a.JWTAuth(), req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 2. Check token type is "refresh"
	claims, err := verified.AsMap(ctx)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "refresh" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 3. Check DB for revocation/expiry (pass raw token, not hash)
	isRevoked, err := a.JWTRepository.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if isRevoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	// 4. Get user
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrUserNotFound
	}

	profileID, err := a.lookupProfileID(ctx, userData.ID)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}

	// 5. Generate new access token
	accessTokenResponse.AccessToken, accessTokenResponse.AccessTokenExpiresIn, err =
		a.Service.GenerateAccessToken(userData.ID, userData.Email, profileID)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessTokenResponse, nil
}
