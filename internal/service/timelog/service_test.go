package timelog

import (
	"context"
	"mime/multipart"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/agent"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/invitation"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/notification"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/profile"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/timelog"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/validator"
)

type fakeTransactionRepo struct {
	mu            sync.Mutex
	transactions  map[string]timelog.TimeTransaction
	nextID        int
	nudgeAllowed  bool
	rejectFlips   bool
	lastListLimit int
}

func newFakeTransactionRepo(seed ...timelog.TimeTransaction) *fakeTransactionRepo {
	r := &fakeTransactionRepo{
		transactions: make(map[string]timelog.TimeTransaction),
		nudgeAllowed: true,
	}
	for _, tx := range seed {
		r.transactions[tx.ID] = tx
	}
	return r
}

func (r *fakeTransactionRepo) Create(ctx context.Context, tx timelog.TimeTransaction) (timelog.TimeTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	tx.ID = "tx-" + strconv.Itoa(r.nextID)
	tx.CreatedAt = time.Now()
	tx.UpdatedAt = tx.CreatedAt
	r.transactions[tx.ID] = tx
	return tx, nil
}

func (r *fakeTransactionRepo) GetByID(ctx context.Context, id string) (timelog.TimeTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.transactions[id]
	if !ok {
		return timelog.TimeTransaction{}, timelog.ErrTransactionNotFound
	}
	return tx, nil
}

// flip applies mutate only while the row is still pending, mirroring the
// conditional UPDATE the real repository issues.
func (r *fakeTransactionRepo) flip(id string, mutate func(*timelog.TimeTransaction)) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.transactions[id]
	if !ok || tx.Status != timelog.StatusPending || r.rejectFlips {
		return false, nil
	}
	mutate(&tx)
	tx.UpdatedAt = time.Now()
	r.transactions[id] = tx
	return true, nil
}

func (r *fakeTransactionRepo) ConfirmPending(ctx context.Context, id, actorID string) (bool, error) {
	return r.flip(id, func(tx *timelog.TimeTransaction) {
		now := time.Now()
		tx.Status = timelog.StatusConfirmed
		tx.ConfirmedBy = &actorID
		tx.ConfirmedAt = &now
	})
}

func (r *fakeTransactionRepo) DisputePending(ctx context.Context, id, actorID, reason string) (bool, error) {
	return r.flip(id, func(tx *timelog.TimeTransaction) {
		now := time.Now()
		tx.Status = timelog.StatusDisputed
		tx.DisputeReason = &reason
		tx.DisputedAt = &now
	})
}

func (r *fakeTransactionRepo) CancelPending(ctx context.Context, id string) (bool, error) {
	return r.flip(id, func(tx *timelog.TimeTransaction) {
		now := time.Now()
		tx.Status = timelog.StatusCancelled
		tx.CancelledAt = &now
	})
}

func (r *fakeTransactionRepo) RecordNudge(ctx context.Context, id string, minInterval time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.nudgeAllowed {
		return false, nil
	}
	tx := r.transactions[id]
	now := time.Now()
	tx.NudgeCount++
	tx.LastNudgedAt = &now
	r.transactions[id] = tx
	return true, nil
}

func (r *fakeTransactionRepo) ListByProfile(ctx context.Context, profileID string, status *timelog.Status, limit int) ([]timelog.TimeTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastListLimit = limit
	var out []timelog.TimeTransaction
	for _, tx := range r.transactions {
		if tx.GiverID != profileID && tx.ReceiverID != profileID {
			continue
		}
		if status != nil && tx.Status != *status {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func (r *fakeTransactionRepo) get(id string) timelog.TimeTransaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transactions[id]
}

func (r *fakeTransactionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.transactions)
}

type fakeAgentTransactionRepo struct {
	mu      sync.Mutex
	created []timelog.AgentTransaction
}

func (r *fakeAgentTransactionRepo) Create(ctx context.Context, tx timelog.AgentTransaction) (timelog.AgentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx.ID = "agent-tx-" + strconv.Itoa(len(r.created)+1)
	tx.CreatedAt = time.Now()
	tx.UpdatedAt = tx.CreatedAt
	r.created = append(r.created, tx)
	return tx, nil
}

func (r *fakeAgentTransactionRepo) ListByProfile(ctx context.Context, profileID string, limit int) ([]timelog.AgentTransaction, error) {
	return nil, nil
}

type fakeAgentRepo struct {
	agents map[string]agent.Agent
}

func (r *fakeAgentRepo) GetByID(ctx context.Context, id string) (agent.Agent, error) {
	a, ok := r.agents[id]
	if !ok {
		return agent.Agent{}, agent.ErrAgentNotFound
	}
	return a, nil
}

func (r *fakeAgentRepo) List(ctx context.Context, serviceType *string, limit int) ([]agent.Agent, error) {
	return nil, nil
}

type fakeProfileRepo struct {
	profiles map[string]profile.Profile
}

func (r *fakeProfileRepo) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	return p, nil
}

func (r *fakeProfileRepo) GetByID(ctx context.Context, id string) (profile.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return profile.Profile{}, profile.ErrProfileNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (profile.Profile, error) {
	return profile.Profile{}, profile.ErrProfileNotFound
}

func (r *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (profile.Profile, error) {
	for _, p := range r.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return profile.Profile{}, profile.ErrProfileNotFound
}

func (r *fakeProfileRepo) Update(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	return p, nil
}

func (r *fakeProfileRepo) Search(ctx context.Context, query string, limit int) ([]profile.Profile, error) {
	return nil, nil
}

func (r *fakeProfileRepo) RecomputeBalance(ctx context.Context, profileID string) error {
	return nil
}

type fakeProfileService struct {
	contacts map[string]profile.ResolvedContact
}

func (s *fakeProfileService) GetMe(ctx context.Context, userID string) (profile.ProfileResponse, error) {
	return profile.ProfileResponse{}, nil
}

func (s *fakeProfileService) GetByID(ctx context.Context, profileID string) (profile.PublicProfileResponse, error) {
	return profile.PublicProfileResponse{}, nil
}

func (s *fakeProfileService) Update(ctx context.Context, userID string, req profile.UpdateProfileRequest) (profile.ProfileResponse, error) {
	return profile.ProfileResponse{}, nil
}

func (s *fakeProfileService) UploadAvatar(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (profile.ProfileResponse, error) {
	return profile.ProfileResponse{}, nil
}

func (s *fakeProfileService) Search(ctx context.Context, query string, limit int) ([]profile.PublicProfileResponse, error) {
	return nil, nil
}

func (s *fakeProfileService) ResolveContact(ctx context.Context, email string) profile.ResolvedContact {
	if c, ok := s.contacts[email]; ok {
		return c
	}
	return profile.ResolvedContact{Found: false, Email: email}
}

type fakeInvitationService struct {
	requests []invitation.CreateRequest
	result   invitation.CreateResult
}

func (s *fakeInvitationService) CreateAndSend(ctx context.Context, req invitation.CreateRequest) (invitation.CreateResult, error) {
	s.requests = append(s.requests, req)
	return s.result, nil
}

func (s *fakeInvitationService) GetByToken(ctx context.Context, token string) (invitation.InvitationDetailResponse, error) {
	return invitation.InvitationDetailResponse{}, nil
}

func (s *fakeInvitationService) Accept(ctx context.Context, token, newProfileID string) (invitation.AcceptResponse, error) {
	return invitation.AcceptResponse{}, nil
}

func (s *fakeInvitationService) Cancel(ctx context.Context, actorProfileID, invitationID string) error {
	return nil
}

func (s *fakeInvitationService) ListByInviter(ctx context.Context, inviterProfileID string) ([]invitation.SentInvitationResponse, error) {
	return nil, nil
}

func (s *fakeInvitationService) ExpireOverdue(ctx context.Context) (int64, error) {
	return 0, nil
}

type fakeNotificationService struct {
	mu     sync.Mutex
	queued []notification.CreateNotificationRequest
}

func (s *fakeNotificationService) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queued = append(s.queued, req)
	return nil
}

func (s *fakeNotificationService) GetNotifications(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	return nil, nil
}

func (s *fakeNotificationService) GetUnreadCount(ctx context.Context, recipientID string) (int, error) {
	return 0, nil
}

func (s *fakeNotificationService) MarkAsRead(ctx context.Context, recipientID string, req notification.MarkAsReadRequest) error {
	return nil
}

func (s *fakeNotificationService) MarkAllAsRead(ctx context.Context, recipientID string) error {
	return nil
}

func (s *fakeNotificationService) Delete(ctx context.Context, recipientID string, notificationID string) error {
	return nil
}

func (s *fakeNotificationService) Stop() {}

type fakeEmailService struct {
	mu   sync.Mutex
	sent []string
}

func (s *fakeEmailService) record(kind, to string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, kind+":"+to)
}

func (s *fakeEmailService) SendInvitation(to string, inviteeName *string, inviterName string, hours float64, description, invitationLink, expiresAt string) error {
	s.record("invitation", to)
	return nil
}

func (s *fakeEmailService) SendVerification(to, name, verificationLink string) error {
	s.record("verification", to)
	return nil
}

func (s *fakeEmailService) SendConfirmationRequest(to, recipientName, loggerName string, hours float64, description string) error {
	s.record("confirmation", to)
	return nil
}

func (s *fakeEmailService) SendNudge(to, recipientName, loggerName string, hours float64, description string) error {
	s.record("nudge", to)
	return nil
}

// serviceFixture wires the service against in-memory fakes. The db handle
// stays nil, so tests must stop short of paths that open a real transaction.
type serviceFixture struct {
	txRepo      *fakeTransactionRepo
	agentTxRepo *fakeAgentTransactionRepo
	agents      *fakeAgentRepo
	profiles    *fakeProfileRepo
	resolver    *fakeProfileService
	invitations *fakeInvitationService
	service     timelog.TimeLogService
}

func newServiceFixture(seed ...timelog.TimeTransaction) *serviceFixture {
	f := &serviceFixture{
		txRepo:      newFakeTransactionRepo(seed...),
		agentTxRepo: &fakeAgentTransactionRepo{},
		agents:      &fakeAgentRepo{agents: make(map[string]agent.Agent)},
		profiles:    &fakeProfileRepo{profiles: make(map[string]profile.Profile)},
		resolver:    &fakeProfileService{contacts: make(map[string]profile.ResolvedContact)},
		invitations: &fakeInvitationService{},
	}
	f.service = NewTimeLogService(nil, f.txRepo, f.agentTxRepo, f.agents, f.profiles,
		f.resolver, f.invitations, &fakeNotificationService{}, &fakeEmailService{})
	return f
}

func (f *serviceFixture) addMember(id, email, name string) {
	f.profiles.profiles[id] = profile.Profile{ID: id, Email: email, DisplayName: name}
	profileID := id
	displayName := name
	f.resolver.contacts[email] = profile.ResolvedContact{
		Found:       true,
		ProfileID:   &profileID,
		DisplayName: &displayName,
		Email:       email,
	}
}

func pendingExchange(id, giverID, receiverID, loggedBy string, hours float64) timelog.TimeTransaction {
	now := time.Now()
	return timelog.TimeTransaction{
		ID:          id,
		GiverID:     giverID,
		ReceiverID:  receiverID,
		Hours:       hours,
		Description: "Intro to a design partner",
		Status:      timelog.StatusPending,
		LoggedBy:    loggedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func logRequest(contact string, mode timelog.Mode) timelog.LogTimeRequest {
	return timelog.LogTimeRequest{
		Contact:     contact,
		Hours:       2.5,
		Mode:        mode,
		Description: "Reviewed the fundraising deck",
	}
}

func TestTimeLogService_LogTime_HelpedMakesActorGiver(t *testing.T) {
	f := newServiceFixture()
	f.addMember("p-alice", "alice@example.com", "Alice Rivera")
	f.addMember("p-bob", "bob@example.com", "Bob Chen")

	result, err := f.service.LogTime(context.Background(), "p-alice", logRequest("bob@example.com", timelog.ModeHelped))

	require.NoError(t, err)
	assert.Equal(t, timelog.LogKindDirect, result.Kind)
	require.NotNil(t, result.Transaction)
	assert.Equal(t, "p-alice", result.Transaction.GiverID)
	assert.Equal(t, "p-bob", result.Transaction.ReceiverID)
	assert.Equal(t, "p-alice", result.Transaction.LoggedBy)
	assert.Equal(t, timelog.StatusPending, result.Transaction.Status)
	assert.Equal(t, 2.5, result.Transaction.Hours)
}

func TestTimeLogService_LogTime_WasHelpedMakesActorReceiver(t *testing.T) {
	f := newServiceFixture()
	f.addMember("p-alice", "alice@example.com", "Alice Rivera")
	f.addMember("p-bob", "bob@example.com", "Bob Chen")

	result, err := f.service.LogTime(context.Background(), "p-alice", logRequest("bob@example.com", timelog.ModeWasHelped))

	require.NoError(t, err)
	require.NotNil(t, result.Transaction)
	assert.Equal(t, "p-bob", result.Transaction.GiverID)
	assert.Equal(t, "p-alice", result.Transaction.ReceiverID)
	assert.Equal(t, "p-alice", result.Transaction.LoggedBy)
}

func TestTimeLogService_LogTime_NormalizesContactEmail(t *testing.T) {
	f := newServiceFixture()
	f.addMember("p-alice", "alice@example.com", "Alice Rivera")
	f.addMember("p-bob", "bob@example.com", "Bob Chen")

	// Resolver entries are keyed by lowercase email, so this only matches
	// if the service normalizes before looking up
	result, err := f.service.LogTime(context.Background(), "p-alice", logRequest("  BOB@Example.COM ", timelog.ModeHelped))

	require.NoError(t, err)
	assert.Equal(t, timelog.LogKindDirect, result.Kind)
}

func TestTimeLogService_LogTime_RejectsSelfByEmail(t *testing.T) {
	f := newServiceFixture()
	f.addMember("p-alice", "alice@example.com", "Alice Rivera")

	_, err := f.service.LogTime(context.Background(), "p-alice", logRequest("Alice@Example.com", timelog.ModeHelped))

	assert.ErrorIs(t, err, timelog.ErrSelfExchange)
	assert.Equal(t, 0, f.txRepo.count())
}

func TestTimeLogService_LogTime_RejectsSelfByResolvedProfile(t *testing.T) {
	f := newServiceFixture()
	f.addMember("p-alice", "alice@example.com", "Alice Rivera")

	// An old address that still resolves to the actor's own profile
	selfID := "p-alice"
	f.resolver.contacts["old-alice@example.com"] = profile.ResolvedContact{
		Found:     true,
		ProfileID: &selfID,
		Email:     "old-alice@example.com",
	}

	_, err := f.service.LogTime(context.Background(), "p-alice", logRequest("old-alice@example.com", timelog.ModeHelped))

	assert.ErrorIs(t, err, timelog.ErrSelfExchange)
	assert.Equal(t, 0, f.txRepo.count())
}

func TestTimeLogService_LogTime_UnknownContactCreatesInvitation(t *testing.T) {
	f := newServiceFixture()
	f.addMember("p-alice", "alice@example.com", "Alice Rivera")
	expiresAt := time.Now().Add(7 * 24 * time.Hour)
	f.invitations.result = invitation.CreateResult{
		InvitationID: "inv-1",
		Token:        "4cf1a7d2b8e94f60a3c5d9e1f2b4a6c84cf1a7d2b8e94f60a3c5d9e1f2b4a6c8",
		ExpiresAt:    expiresAt,
	}

	req := logRequest("sam@example.com", timelog.ModeHelped)
	inviteeName := "Sam Okafor"
	req.Name = &inviteeName

	result, err := f.service.LogTime(context.Background(), "p-alice", req)

	require.NoError(t, err)
	assert.Equal(t, timelog.LogKindInvited, result.Kind)
	require.NotNil(t, result.Invitation)
	assert.Equal(t, "inv-1", result.Invitation.InvitationID)
	assert.Equal(t, "sam@example.com", result.Invitation.InviteeEmail)
	assert.Equal(t, f.invitations.result.Token, result.Invitation.Token)
	assert.Equal(t, expiresAt, result.Invitation.ExpiresAt)

	// The exchange is staged behind the invitation, not written to the ledger
	assert.Equal(t, 0, f.txRepo.count())
	require.Len(t, f.invitations.requests, 1)
	staged := f.invitations.requests[0]
	assert.Equal(t, "p-alice", staged.InviterProfileID)
	assert.Equal(t, "Alice Rivera", staged.InviterName)
	assert.Equal(t, "sam@example.com", staged.InviteeEmail)
	require.NotNil(t, staged.InviteeName)
	assert.Equal(t, "Sam Okafor", *staged.InviteeName)
	assert.Equal(t, 2.5, staged.Hours)
	assert.Equal(t, "helped", staged.Mode)
}

func TestTimeLogService_GetTransaction_RequiresParticipant(t *testing.T) {
	f := newServiceFixture(pendingExchange("tx-1", "p-alice", "p-bob", "p-alice", 2))

	_, err := f.service.GetTransaction(context.Background(), "p-mallory", "tx-1")
	assert.ErrorIs(t, err, timelog.ErrNotParticipant)

	resp, err := f.service.GetTransaction(context.Background(), "p-bob", "tx-1")
	require.NoError(t, err)
	assert.Equal(t, "tx-1", resp.ID)
}

func TestTimeLogService_ListTransactions_ClampsLimit(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.ListTransactions(context.Background(), "p-alice", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, f.txRepo.lastListLimit)

	_, err = f.service.ListTransactions(context.Background(), "p-alice", nil, 500)
	require.NoError(t, err)
	assert.Equal(t, 50, f.txRepo.lastListLimit)

	_, err = f.service.ListTransactions(context.Background(), "p-alice", nil, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, f.txRepo.lastListLimit)
}

func TestTimeLogService_Confirm_RejectsOutsider(t *testing.T) {
	f := newServiceFixture(pendingExchange("tx-1", "p-alice", "p-bob", "p-alice", 2))

	_, err := f.service.Confirm(context.Background(), "p-mallory", "tx-1")

	assert.ErrorIs(t, err, timelog.ErrNotParticipant)
	assert.Equal(t, timelog.StatusPending, f.txRepo.get("tx-1").Status)
}

func TestTimeLogService_Confirm_RejectsLogger(t *testing.T) {
	f := newServiceFixture(pendingExchange("tx-1", "p-alice", "p-bob", "p-alice", 2))

	// Alice logged the exchange, so she cannot also confirm it
	_, err := f.service.Confirm(context.Background(), "p-alice", "tx-1")

	assert.ErrorIs(t, err, timelog.ErrNotCounterpart)
	assert.Equal(t, timelog.StatusPending, f.txRepo.get("tx-1").Status)
}

func TestTimeLogService_Confirm_RejectsProcessed(t *testing.T) {
	tx := pendingExchange("tx-1", "p-alice", "p-bob", "p-alice", 2)
	tx.Status = timelog.StatusCancelled
	f := newServiceFixture(tx)

	_, err := f.service.Confirm(context.Background(), "p-bob", "tx-1")

	assert.ErrorIs(t, err, timelog.ErrAlreadyProcessed)
}

func TestTimeLogService_Dispute_RequiresReason(t *testing.T) {
	f := newServiceFixture(pendingExchange("tx-1", "p-alice", "p-bob", "p-alice", 2))

	_, err := f.service.Dispute(context.Background(), "p-bob", "tx-1", timelog.DisputeRequest{})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "reason")
	assert.Equal(t, timelog.StatusPending, f.txRepo.get("tx-1").Status)
}

func TestTimeLogService_Dispute_CounterpartDisputesPending(t *testing.T) {
	f := newServiceFixture(pendingExchange("tx-1", "p-alice", "p-bob", "p-alice", 2))

	resp, err := f.service.Dispute(context.Background(), "p-bob", "tx-1", timelog.DisputeRequest{
		Reason: "The session never happened",
	})

	require.NoError(t, err)
	assert.Equal(t, timelog.StatusDisputed, resp.Status)
	require.NotNil(t, resp.DisputeReason)
	assert.Equal(t, "The session never happened", *resp.DisputeReason)
	assert.Equal(t, timelog.StatusDisputed, f.txRepo.get("tx-1").Status)
}

func TestTimeLogService_Dispute_LostRaceReportsProcessed(t *testing.T) {
	f := newServiceFixture(pendingExchange("tx-1", "p-alice", "p-bob", "p-alice", 2))

	// The read saw a pending row but the conditional update matched nothing,
	// as happens when a concurrent transition lands in between
	f.txRepo.rejectFlips = true

	_, err := f.service.Dispute(context.Background(), "p-bob", "tx-1", timelog.DisputeRequest{
		Reason: "The session never happened",
	})

	assert.ErrorIs(t, err, timelog.ErrAlreadyProcessed)
}

func TestTimeLogService_Cancel_RejectsCounterpart(t *testing.T) {
	f := newServiceFixture(pendingExchange("tx-1", "p-alice", "p-bob", "p-alice", 2))

	_, err := f.service.Cancel(context.Background(), "p-bob", "tx-1")

	assert.ErrorIs(t, err, timelog.ErrNotLogger)
	assert.Equal(t, timelog.StatusPending, f.txRepo.get("tx-1").Status)
}

func TestTimeLogService_Cancel_LoggerCancelsPending(t *testing.T) {
	f := newServiceFixture(pendingExchange("tx-1", "p-alice", "p-bob", "p-alice", 2))

	resp, err := f.service.Cancel(context.Background(), "p-alice", "tx-1")

	require.NoError(t, err)
	assert.Equal(t, timelog.StatusCancelled, resp.Status)
	assert.Equal(t, timelog.StatusCancelled, f.txRepo.get("tx-1").Status)
}

func TestTimeLogService_Nudge_RecordsReminder(t *testing.T) {
	f := newServiceFixture(pendingExchange("tx-1", "p-alice", "p-bob", "p-alice", 2))
	f.addMember("p-alice", "alice@example.com", "Alice Rivera")
	f.addMember("p-bob", "bob@example.com", "Bob Chen")

	err := f.service.Nudge(context.Background(), "p-alice", "tx-1")

	require.NoError(t, err)
	assert.Equal(t, 1, f.txRepo.get("tx-1").NudgeCount)
}

func TestTimeLogService_Nudge_RejectsCounterpart(t *testing.T) {
	f := newServiceFixture(pendingExchange("tx-1", "p-alice", "p-bob", "p-alice", 2))

	err := f.service.Nudge(context.Background(), "p-bob", "tx-1")

	assert.ErrorIs(t, err, timelog.ErrNotLogger)
}

func TestTimeLogService_Nudge_ThrottledAfterRecentReminder(t *testing.T) {
	f := newServiceFixture(pendingExchange("tx-1", "p-alice", "p-bob", "p-alice", 2))
	f.txRepo.nudgeAllowed = false

	err := f.service.Nudge(context.Background(), "p-alice", "tx-1")

	assert.ErrorIs(t, err, timelog.ErrNudgeTooSoon)
}

func TestTimeLogService_LogAgentTime_CreatesConfirmed(t *testing.T) {
	f := newServiceFixture()
	agentType := "research"
	f.agents.agents["7b0d2c9e-4a1f-4f7e-9b9a-2f6d8f3a1c55"] = agent.Agent{
		ID:          "7b0d2c9e-4a1f-4f7e-9b9a-2f6d8f3a1c55",
		Name:        "Research Agent",
		ServiceType: &agentType,
		IsActive:    true,
	}

	resp, err := f.service.LogAgentTime(context.Background(), "p-alice", timelog.LogAgentTimeRequest{
		AgentID:        "7b0d2c9e-4a1f-4f7e-9b9a-2f6d8f3a1c55",
		Hours:          1.5,
		Description:    "Compiled a market landscape",
		ProfileIsGiver: false,
	})

	require.NoError(t, err)
	assert.Equal(t, timelog.StatusConfirmed, resp.Status)
	assert.Equal(t, "p-alice", resp.ProfileID)
	assert.False(t, resp.ProfileIsGiver)
	// Service type falls back to the agent's own when the request omits it
	require.NotNil(t, resp.ServiceType)
	assert.Equal(t, "research", *resp.ServiceType)
}

func TestTimeLogService_LogAgentTime_RejectsInactiveAgent(t *testing.T) {
	f := newServiceFixture()
	f.agents.agents["7b0d2c9e-4a1f-4f7e-9b9a-2f6d8f3a1c55"] = agent.Agent{
		ID:       "7b0d2c9e-4a1f-4f7e-9b9a-2f6d8f3a1c55",
		Name:     "Research Agent",
		IsActive: false,
	}

	_, err := f.service.LogAgentTime(context.Background(), "p-alice", timelog.LogAgentTimeRequest{
		AgentID:     "7b0d2c9e-4a1f-4f7e-9b9a-2f6d8f3a1c55",
		Hours:       1.5,
		Description: "Compiled a market landscape",
	})

	assert.ErrorIs(t, err, agent.ErrAgentInactive)
	assert.Empty(t, f.agentTxRepo.created)
}
