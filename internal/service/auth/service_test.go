package auth

import (
	"context"
	"testing"

	"github.com/aleenavigoda/yardso-sub000/internal/config"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/auth"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/profile"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/timelog"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/user"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/jwt"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret     = "test-secret-key-for-jwt"
	testAccessExp  = "1h"
	testRefreshExp = "168h"
)

type fakeUserRepo struct {
	byEmail map[string]user.User
	byID    map[string]user.User
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return user.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return user.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	newUser.ID = "user-created"
	r.byEmail[newUser.Email] = newUser
	r.byID[newUser.ID] = newUser
	return newUser, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	u := r.byEmail[email]
	provider := "google"
	u.OAuthProvider = &provider
	u.OAuthProviderID = &googleID
	r.byEmail[email] = u
	r.byID[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) VerifyEmail(ctx context.Context, userID string) error {
	return nil
}

func (r *fakeUserRepo) GetByEmailVerificationToken(ctx context.Context, token string) (user.User, error) {
	for _, u := range r.byEmail {
		if u.EmailVerificationToken != nil && *u.EmailVerificationToken == token {
			return u, nil
		}
	}
	return user.User{}, pgx.ErrNoRows
}

type fakeJWTRepo struct {
	revoked map[string]bool
}

func (r *fakeJWTRepo) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error {
	return nil
}

func (r *fakeJWTRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	return r.revoked[token], nil
}

func (r *fakeJWTRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	r.revoked[token] = true
	return nil
}

func (r *fakeJWTRepo) DeleteExpired(ctx context.Context, olderThanDays int) (int64, error) {
	return 0, nil
}

type fakeAuthProfileRepo struct {
	byUserID map[string]profile.Profile
}

func (r *fakeAuthProfileRepo) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	p.ID = "profile-created"
	r.byUserID[p.UserID] = p
	return p, nil
}

func (r *fakeAuthProfileRepo) GetByID(ctx context.Context, id string) (profile.Profile, error) {
	for _, p := range r.byUserID {
		if p.ID == id {
			return p, nil
		}
	}
	return profile.Profile{}, profile.ErrProfileNotFound
}

func (r *fakeAuthProfileRepo) GetByUserID(ctx context.Context, userID string) (profile.Profile, error) {
	p, ok := r.byUserID[userID]
	if !ok {
		return profile.Profile{}, profile.ErrProfileNotFound
	}
	return p, nil
}

func (r *fakeAuthProfileRepo) GetByEmail(ctx context.Context, email string) (profile.Profile, error) {
	return profile.Profile{}, profile.ErrProfileNotFound
}

func (r *fakeAuthProfileRepo) Update(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	return p, nil
}

func (r *fakeAuthProfileRepo) Search(ctx context.Context, query string, limit int) ([]profile.Profile, error) {
	return nil, nil
}

func (r *fakeAuthProfileRepo) RecomputeBalance(ctx context.Context, profileID string) error {
	return nil
}

type stubPendingProfileRepo struct{}

func (s *stubPendingProfileRepo) Upsert(ctx context.Context, p profile.PendingProfile) (profile.PendingProfile, error) {
	return p, nil
}

func (s *stubPendingProfileRepo) GetByEmail(ctx context.Context, email string) (profile.PendingProfile, error) {
	return profile.PendingProfile{}, profile.ErrPendingProfileNotFound
}

func (s *stubPendingProfileRepo) DeleteByEmail(ctx context.Context, email string) error {
	return nil
}

func (s *stubPendingProfileRepo) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	return 0, nil
}

type stubEmailSender struct{}

func (s *stubEmailSender) SendInvitation(to string, inviteeName *string, inviterName string, hours float64, description, invitationLink, expiresAt string) error {
	return nil
}

func (s *stubEmailSender) SendVerification(to, name, verificationLink string) error {
	return nil
}

func (s *stubEmailSender) SendConfirmationRequest(to, recipientName, loggerName string, hours float64, description string) error {
	return nil
}

func (s *stubEmailSender) SendNudge(to, recipientName, loggerName string, hours float64, description string) error {
	return nil
}

type stubTimeLogService struct{}

func (s *stubTimeLogService) LogTime(ctx context.Context, actorProfileID string, req timelog.LogTimeRequest) (timelog.LogTimeResult, error) {
	return timelog.LogTimeResult{}, nil
}

func (s *stubTimeLogService) GetTransaction(ctx context.Context, actorProfileID, transactionID string) (timelog.TransactionResponse, error) {
	return timelog.TransactionResponse{}, nil
}

func (s *stubTimeLogService) ListTransactions(ctx context.Context, actorProfileID string, status *timelog.Status, limit int) ([]timelog.TransactionResponse, error) {
	return nil, nil
}

func (s *stubTimeLogService) Confirm(ctx context.Context, actorProfileID, transactionID string) (timelog.TransactionResponse, error) {
	return timelog.TransactionResponse{}, nil
}

func (s *stubTimeLogService) Dispute(ctx context.Context, actorProfileID, transactionID string, req timelog.DisputeRequest) (timelog.TransactionResponse, error) {
	return timelog.TransactionResponse{}, nil
}

func (s *stubTimeLogService) Cancel(ctx context.Context, actorProfileID, transactionID string) (timelog.TransactionResponse, error) {
	return timelog.TransactionResponse{}, nil
}

func (s *stubTimeLogService) Nudge(ctx context.Context, actorProfileID, transactionID string) error {
	return nil
}

func (s *stubTimeLogService) LogAgentTime(ctx context.Context, actorProfileID string, req timelog.LogAgentTimeRequest) (timelog.AgentTransactionResponse, error) {
	return timelog.AgentTransactionResponse{}, nil
}

type authFixture struct {
	users      *fakeUserRepo
	jwtRepo    *fakeJWTRepo
	profiles   *fakeAuthProfileRepo
	jwtService jwt.Service
	svc        auth.AuthService
}

// newAuthFixture wires the service against in-memory fakes and a real JWT
// signer. The db handle stays nil, so tests must stop short of paths that
// open a real transaction.
func newAuthFixture() *authFixture {
	users := &fakeUserRepo{
		byEmail: make(map[string]user.User),
		byID:    make(map[string]user.User),
	}
	jwtRepo := &fakeJWTRepo{revoked: make(map[string]bool)}
	profiles := &fakeAuthProfileRepo{byUserID: make(map[string]profile.Profile)}
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)

	svc := NewAuthService(
		nil,
		&config.Config{},
		users,
		jwtService,
		jwtRepo,
		profiles,
		&stubPendingProfileRepo{},
		&stubEmailSender{},
		&stubTimeLogService{},
	)

	return &authFixture{
		users:      users,
		jwtRepo:    jwtRepo,
		profiles:   profiles,
		jwtService: jwtService,
		svc:        svc,
	}
}

// seedAccount stores a password account; profileID may be empty for accounts
// that never verified their email.
func (fx *authFixture) seedAccount(userID, profileID, email, password string, verified bool) {
	u := user.User{ID: userID, Email: email, EmailVerified: verified}
	if password != "" {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		hashed := string(hash)
		u.PasswordHash = &hashed
	}
	fx.users.byEmail[email] = u
	fx.users.byID[userID] = u

	if profileID != "" {
		fx.profiles.byUserID[userID] = profile.Profile{
			ID:          profileID,
			UserID:      userID,
			Email:       email,
			FullName:    "Maya Chen",
			DisplayName: "Maya",
		}
	}
}

func TestAuthService_Login_UnknownEmailRejected(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	// Act
	_, err := fx.svc.Login(ctx, auth.LoginRequest{Email: "ghost@example.com", Password: "password123"}, auth.SessionTrackingRequest{})

	// Assert
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPasswordRejected(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()
	fx.seedAccount("user-1", "profile-1", "maya@example.com", "password123", true)

	// Act
	_, err := fx.svc.Login(ctx, auth.LoginRequest{Email: "maya@example.com", Password: "wrong-password"}, auth.SessionTrackingRequest{})

	// Assert
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_OAuthOnlyAccountRejected(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()
	// No password hash, the account only ever signed in through Google
	fx.seedAccount("user-1", "profile-1", "maya@example.com", "", true)

	// Act
	_, err := fx.svc.Login(ctx, auth.LoginRequest{Email: "maya@example.com", Password: "password123"}, auth.SessionTrackingRequest{})

	// Assert
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UnverifiedEmailRejected(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()
	fx.seedAccount("user-1", "", "maya@example.com", "password123", false)

	// Act
	_, err := fx.svc.Login(ctx, auth.LoginRequest{Email: "maya@example.com", Password: "password123"}, auth.SessionTrackingRequest{})

	// Assert
	assert.ErrorIs(t, err, auth.ErrEmailNotVerified)
}

func TestAuthService_Login_NormalizesEmail(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()
	fx.seedAccount("user-1", "", "maya@example.com", "password123", false)

	// Act: reaching the verification check proves the padded uppercase email
	// resolved to the stored account and the password matched
	_, err := fx.svc.Login(ctx, auth.LoginRequest{Email: "  MAYA@Example.COM ", Password: "password123"}, auth.SessionTrackingRequest{})

	// Assert
	assert.ErrorIs(t, err, auth.ErrEmailNotVerified)
}

func TestAuthService_SignUp_RejectsInvalidRequest(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	// Act
	_, err := fx.svc.SignUp(ctx, auth.SignUpRequest{})

	// Assert
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := errs.ToMap()
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "full_name")
	assert.Contains(t, fields, "display_name")
}

func TestAuthService_SignUp_RejectsInvalidStagedLog(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	// Act
	_, err := fx.svc.SignUp(ctx, auth.SignUpRequest{
		Email:           "maya@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		FullName:        "Maya Chen",
		DisplayName:     "maya",
		TimeLog: &auth.StagedTimeLogRequest{
			ContactEmail: "not-an-email",
			Mode:         "mentored",
			Hours:        0,
			Description:  "",
		},
	})

	// Assert
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := errs.ToMap()
	assert.Contains(t, fields, "time_log.contact_email")
	assert.Contains(t, fields, "time_log.mode")
	assert.Contains(t, fields, "time_log.hours")
	assert.Contains(t, fields, "time_log.description")
}

func TestAuthService_SignUp_RejectsTakenEmail(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()
	fx.seedAccount("user-1", "profile-1", "taken@example.com", "password123", true)

	// Act
	_, err := fx.svc.SignUp(ctx, auth.SignUpRequest{
		Email:           "Taken@Example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		FullName:        "Taken User",
		DisplayName:     "Taken",
	})

	// Assert
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestAuthService_RefreshToken_IssuesNewAccessToken(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()
	fx.seedAccount("user-1", "profile-1", "maya@example.com", "password123", true)

	refreshToken, _, err := fx.jwtService.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	// Act
	resp, err := fx.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: refreshToken})

	// Assert
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	assert.Greater(t, resp.AccessTokenExpiresIn, int64(0))

	verified, err := jwtauth.VerifyToken(fx.jwtService.JWTAuth(), resp.AccessToken)
	require.NoError(t, err)
	claims, err := verified.AsMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access", claims["type"])
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "profile-1", claims["profile_id"])
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()
	fx.seedAccount("user-1", "profile-1", "maya@example.com", "password123", true)

	accessToken, _, err := fx.jwtService.GenerateAccessToken("user-1", "maya@example.com", nil)
	require.NoError(t, err)

	// Act: an access token is signed with the same key but carries the wrong
	// type claim
	_, err = fx.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: accessToken})

	// Assert
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_RefreshToken_RejectsGarbage(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	// Act
	_, err := fx.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: "not-a-jwt"})

	// Assert
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_RefreshToken_RejectsRevokedToken(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()
	fx.seedAccount("user-1", "profile-1", "maya@example.com", "password123", true)

	refreshToken, _, err := fx.jwtService.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	fx.jwtRepo.revoked[refreshToken] = true

	// Act
	_, err = fx.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: refreshToken})

	// Assert
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestAuthService_RefreshToken_RejectsUnknownUser(t *testing.T) {
	fx := newAuthFixture()
	ctx := context.Background()

	// Token is valid but the account behind it is gone
	refreshToken, _, err := fx.jwtService.GenerateRefreshToken("user-deleted")
	require.NoError(t, err)

	// Act
	_, err = fx.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: refreshToken})

	// Assert
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}
