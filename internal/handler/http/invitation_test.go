package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/invitation"
	"github.com/aleenavigoda/yardso-sub000/internal/handler/http/middleware"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret     = "test-secret-key-for-jwt"
	handlerTestAccessExp  = "1h"
	handlerTestRefreshExp = "168h"

	handlerInviteToken = "9f2c4e6a8b0d1f3a5c7e9b2d4f6a8c0e9f2c4e6a8b0d1f3a5c7e9b2d4f6a8c0e"
)

// stubInvitationService feeds canned results through the HTTP seam so the
// tests cover routing, auth middleware, status mapping and envelope shape
// without a database.
type stubInvitationService struct {
	detail        invitation.InvitationDetailResponse
	detailErr     error
	detailCalls   int
	acceptResult  invitation.AcceptResponse
	acceptErr     error
	acceptToken   string
	acceptProfile string
	cancelErr     error
}

func (s *stubInvitationService) CreateAndSend(ctx context.Context, req invitation.CreateRequest) (invitation.CreateResult, error) {
	return invitation.CreateResult{}, nil
}

func (s *stubInvitationService) GetByToken(ctx context.Context, token string) (invitation.InvitationDetailResponse, error) {
	s.detailCalls++
	if s.detailErr != nil {
		return invitation.InvitationDetailResponse{}, s.detailErr
	}
	return s.detail, nil
}

func (s *stubInvitationService) Accept(ctx context.Context, token, newProfileID string) (invitation.AcceptResponse, error) {
	s.acceptToken = token
	s.acceptProfile = newProfileID
	if s.acceptErr != nil {
		return invitation.AcceptResponse{}, s.acceptErr
	}
	return s.acceptResult, nil
}

func (s *stubInvitationService) Cancel(ctx context.Context, actorProfileID, invitationID string) error {
	return s.cancelErr
}

func (s *stubInvitationService) ListByInviter(ctx context.Context, inviterProfileID string) ([]invitation.SentInvitationResponse, error) {
	return nil, nil
}

func (s *stubInvitationService) ExpireOverdue(ctx context.Context) (int64, error) {
	return 0, nil
}

func newHandlerJWTService() jwt.Service {
	return jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp)
}

// invitationTestMux mounts the invitation routes behind the same middleware
// stack the real router uses.
func invitationTestMux(svc invitation.InvitationService, jwtSvc jwt.Service) *chi.Mux {
	handler := NewInvitationHandler(svc)
	r := chi.NewRouter()
	r.Get("/invitations/{token}", handler.GetByToken)
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtSvc.JWTAuth()))
		r.Use(middleware.AuthRequired(jwtSvc.JWTAuth()))
		r.Use(middleware.ProfileRequired())
		r.Post("/invitations/{token}/accept", handler.Accept)
		r.Post("/invitations/{id}/cancel", handler.Cancel)
	})
	return r
}

func mintAccessToken(t *testing.T, jwtSvc jwt.Service, profileID *string) string {
	t.Helper()
	token, _, err := jwtSvc.GenerateAccessToken("user-1", "maya@example.com", profileID)
	require.NoError(t, err)
	return token
}

func TestInvitationHandler_GetByToken_ReturnsInvitation(t *testing.T) {
	svc := &stubInvitationService{detail: invitation.InvitationDetailResponse{
		Token:       handlerInviteToken,
		InviterName: "Maya Chen",
		Status:      "pending",
	}}
	mux := invitationTestMux(svc, newHandlerJWTService())

	req := httptest.NewRequest(http.MethodGet, "/invitations/"+handlerInviteToken, nil)
	w := httptest.NewRecorder()

	// Act
	mux.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp["success"].(bool))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "Maya Chen", data["inviter_name"])
	assert.Equal(t, "pending", data["status"])
}

func TestInvitationHandler_GetByToken_MalformedTokenIsNotFound(t *testing.T) {
	svc := &stubInvitationService{}
	mux := invitationTestMux(svc, newHandlerJWTService())

	req := httptest.NewRequest(http.MethodGet, "/invitations/not-a-real-token", nil)
	w := httptest.NewRecorder()

	// Act
	mux.ServeHTTP(w, req)

	// Assert - malformed tokens never reach the service
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, svc.detailCalls)
}

func TestInvitationHandler_GetByToken_ExpiredMapsToGone(t *testing.T) {
	svc := &stubInvitationService{detailErr: invitation.ErrInvitationExpired}
	mux := invitationTestMux(svc, newHandlerJWTService())

	req := httptest.NewRequest(http.MethodGet, "/invitations/"+handlerInviteToken, nil)
	w := httptest.NewRecorder()

	// Act
	mux.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusGone, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp["success"].(bool))
	errDetail := resp["error"].(map[string]interface{})
	assert.Equal(t, "GONE", errDetail["code"])
}

func TestInvitationHandler_Accept_RequiresAuth(t *testing.T) {
	svc := &stubInvitationService{}
	mux := invitationTestMux(svc, newHandlerJWTService())

	req := httptest.NewRequest(http.MethodPost, "/invitations/"+handlerInviteToken+"/accept", nil)
	w := httptest.NewRecorder()

	// Act
	mux.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInvitationHandler_Accept_RejectsAccountWithoutProfile(t *testing.T) {
	svc := &stubInvitationService{}
	jwtSvc := newHandlerJWTService()
	mux := invitationTestMux(svc, jwtSvc)

	// Tokens minted before email verification carry a null profile_id
	accessToken := mintAccessToken(t, jwtSvc, nil)

	req := httptest.NewRequest(http.MethodPost, "/invitations/"+handlerInviteToken+"/accept", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w := httptest.NewRecorder()

	// Act
	mux.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestInvitationHandler_Accept_ClaimsForAuthenticatedProfile(t *testing.T) {
	transactionID := "tx-1"
	svc := &stubInvitationService{acceptResult: invitation.AcceptResponse{
		Message:          "invitation accepted",
		InvitationID:     "inv-1",
		TransactionID:    &transactionID,
		InviterProfileID: "p-alice",
	}}
	jwtSvc := newHandlerJWTService()
	mux := invitationTestMux(svc, jwtSvc)

	profileID := "p-new"
	accessToken := mintAccessToken(t, jwtSvc, &profileID)

	req := httptest.NewRequest(http.MethodPost, "/invitations/"+handlerInviteToken+"/accept", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w := httptest.NewRecorder()

	// Act
	mux.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, handlerInviteToken, svc.acceptToken)
	assert.Equal(t, "p-new", svc.acceptProfile)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp["success"].(bool))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "inv-1", data["invitation_id"])
	assert.Equal(t, "tx-1", data["transaction_id"])
}

func TestInvitationHandler_Cancel_NotInviterIsForbidden(t *testing.T) {
	svc := &stubInvitationService{cancelErr: invitation.ErrNotInviter}
	jwtSvc := newHandlerJWTService()
	mux := invitationTestMux(svc, jwtSvc)

	profileID := "p-intruder"
	accessToken := mintAccessToken(t, jwtSvc, &profileID)

	req := httptest.NewRequest(http.MethodPost, "/invitations/inv-9/cancel", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	w := httptest.NewRecorder()

	// Act
	mux.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, w.Code)
}
