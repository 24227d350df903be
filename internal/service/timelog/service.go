package timelog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/agent"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/invitation"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/notification"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/profile"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/timelog"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/database"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/email"
	"github.com/aleenavigoda/yardso-sub000/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

// nudgeMinInterval throttles reminders to one per transaction per hour.
const nudgeMinInterval = time.Hour

type TimeLogServiceImpl struct {
	db *database.DB
	timelog.TransactionRepository
	agentTxRepo         timelog.AgentTransactionRepository
	agentRepo           agent.AgentRepository
	profileRepo         profile.ProfileRepository
	profileService      profile.ProfileService
	invitationService   invitation.InvitationService
	notificationService notification.Service
	emailService        email.EmailService
}

func NewTimeLogService(
	db *database.DB,
	transactionRepository timelog.TransactionRepository,
	agentTransactionRepository timelog.AgentTransactionRepository,
	agentRepository agent.AgentRepository,
	profileRepository profile.ProfileRepository,
	profileService profile.ProfileService,
	invitationService invitation.InvitationService,
	notificationService notification.Service,
	emailService email.EmailService,
) timelog.TimeLogService {
	return &TimeLogServiceImpl{
		db:                    db,
		TransactionRepository: transactionRepository,
		agentTxRepo:           agentTransactionRepository,
		agentRepo:             agentRepository,
		profileRepo:           profileRepository,
		profileService:        profileService,
		invitationService:     invitationService,
		notificationService:   notificationService,
		emailService:          emailService,
	}
}

// LogTime implements timelog.TimeLogService.
func (t *TimeLogServiceImpl) LogTime(ctx context.Context, actorProfileID string, req timelog.LogTimeRequest) (timelog.LogTimeResult, error) {
	if err := req.Validate(); err != nil {
		return timelog.LogTimeResult{}, err
	}

	actor, err := t.profileRepo.GetByID(ctx, actorProfileID)
	if err != nil {
		return timelog.LogTimeResult{}, fmt.Errorf("failed to get acting profile: %w", err)
	}

	contactEmail := strings.ToLower(strings.TrimSpace(req.Contact))
	if contactEmail == strings.ToLower(actor.Email) {
		return timelog.LogTimeResult{}, timelog.ErrSelfExchange
	}

	resolved := t.profileService.ResolveContact(ctx, contactEmail)
	if !resolved.Found {
		return t.logViaInvitation(ctx, actor, contactEmail, req)
	}

	// The contact may have changed their account email to something that no
	// longer matches the actor's, so the id check still has to happen.
	if *resolved.ProfileID == actorProfileID {
		return timelog.LogTimeResult{}, timelog.ErrSelfExchange
	}

	giverID, receiverID := req.Mode.GiverReceiver(actorProfileID, *resolved.ProfileID)

	created, err := t.TransactionRepository.Create(ctx, timelog.TimeTransaction{
		GiverID:     giverID,
		ReceiverID:  receiverID,
		Hours:       req.Hours,
		Description: req.Description,
		ServiceType: req.ServiceType,
		Status:      timelog.StatusPending,
		LoggedBy:    actorProfileID,
	})
	if err != nil {
		return timelog.LogTimeResult{}, fmt.Errorf("failed to create time transaction: %w", err)
	}

	slog.Info("Time logged against member",
		"transaction_id", created.ID,
		"logged_by", actorProfileID,
		"hours", created.Hours)

	go t.notifyLogged(created, actor.DisplayName)

	resp := timelog.NewTransactionResponse(created)
	return timelog.LogTimeResult{
		Kind:        timelog.LogKindDirect,
		Transaction: &resp,
	}, nil
}

// logViaInvitation stages the exchange behind an invitation when the contact
// email does not belong to any member yet.
func (t *TimeLogServiceImpl) logViaInvitation(ctx context.Context, actor profile.Profile, contactEmail string, req timelog.LogTimeRequest) (timelog.LogTimeResult, error) {
	result, err := t.invitationService.CreateAndSend(ctx, invitation.CreateRequest{
		InviterProfileID: actor.ID,
		InviterName:      actor.DisplayName,
		InviteeEmail:     contactEmail,
		InviteeName:      req.Name,
		Hours:            req.Hours,
		Description:      req.Description,
		ServiceType:      req.ServiceType,
		Mode:             string(req.Mode),
	})
	if err != nil {
		return timelog.LogTimeResult{}, err
	}

	slog.Info("Time staged behind invitation",
		"invitation_id", result.InvitationID,
		"inviter_profile_id", actor.ID,
		"reused", result.Reused)

	return timelog.LogTimeResult{
		Kind: timelog.LogKindInvited,
		Invitation: &timelog.InvitationSentSummary{
			InvitationID: result.InvitationID,
			InviteeEmail: contactEmail,
			Token:        result.Token,
			ExpiresAt:    result.ExpiresAt,
		},
	}, nil
}

// GetTransaction implements timelog.TimeLogService.
func (t *TimeLogServiceImpl) GetTransaction(ctx context.Context, actorProfileID, transactionID string) (timelog.TransactionResponse, error) {
	tx, err := t.TransactionRepository.GetByID(ctx, transactionID)
	if err != nil {
		return timelog.TransactionResponse{}, err
	}

	if _, involved := tx.CounterpartOf(actorProfileID); !involved {
		return timelog.TransactionResponse{}, timelog.ErrNotParticipant
	}

	return timelog.NewTransactionResponse(tx), nil
}

// ListTransactions implements timelog.TimeLogService.
func (t *TimeLogServiceImpl) ListTransactions(ctx context.Context, actorProfileID string, status *timelog.Status, limit int) ([]timelog.TransactionResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	transactions, err := t.TransactionRepository.ListByProfile(ctx, actorProfileID, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	responses := make([]timelog.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		responses = append(responses, timelog.NewTransactionResponse(tx))
	}

	return responses, nil
}

// Confirm implements timelog.TimeLogService.
func (t *TimeLogServiceImpl) Confirm(ctx context.Context, actorProfileID, transactionID string) (timelog.TransactionResponse, error) {
	txData, err := t.TransactionRepository.GetByID(ctx, transactionID)
	if err != nil {
		return timelog.TransactionResponse{}, err
	}

	if _, involved := txData.CounterpartOf(actorProfileID); !involved {
		return timelog.TransactionResponse{}, timelog.ErrNotParticipant
	}
	if !txData.CanBeActedOnBy(actorProfileID) {
		return timelog.TransactionResponse{}, timelog.ErrNotCounterpart
	}
	if txData.IsTerminal() {
		return timelog.TransactionResponse{}, timelog.ErrAlreadyProcessed
	}

	err = postgresql.WithTransaction(ctx, t.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		confirmed, err := t.TransactionRepository.ConfirmPending(txCtx, transactionID, actorProfileID)
		if err != nil {
			return fmt.Errorf("failed to confirm transaction: %w", err)
		}
		if !confirmed {
			// Lost the race against another transition
			return timelog.ErrAlreadyProcessed
		}

		// Balances are re-derived from the confirmed ledger inside the same
		// transaction as the state flip
		if err := t.profileRepo.RecomputeBalance(txCtx, txData.GiverID); err != nil {
			return fmt.Errorf("failed to recompute giver balance: %w", err)
		}
		if err := t.profileRepo.RecomputeBalance(txCtx, txData.ReceiverID); err != nil {
			return fmt.Errorf("failed to recompute receiver balance: %w", err)
		}

		return nil
	})
	if err != nil {
		return timelog.TransactionResponse{}, err
	}

	updated, err := t.TransactionRepository.GetByID(ctx, transactionID)
	if err != nil {
		return timelog.TransactionResponse{}, err
	}

	slog.Info("Time transaction confirmed",
		"transaction_id", transactionID,
		"confirmed_by", actorProfileID)

	go t.notify(updated.LoggedBy, actorProfileID, notification.TypeTransactionConfirmed,
		"Time confirmed",
		fmt.Sprintf("Your %.1f hour exchange was confirmed", updated.Hours),
		updated.ID)

	return timelog.NewTransactionResponse(updated), nil
}

// Dispute implements timelog.TimeLogService.
func (t *TimeLogServiceImpl) Dispute(ctx context.Context, actorProfileID, transactionID string, req timelog.DisputeRequest) (timelog.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return timelog.TransactionResponse{}, err
	}

	txData, err := t.TransactionRepository.GetByID(ctx, transactionID)
	if err != nil {
		return timelog.TransactionResponse{}, err
	}

	if _, involved := txData.CounterpartOf(actorProfileID); !involved {
		return timelog.TransactionResponse{}, timelog.ErrNotParticipant
	}
	if !txData.CanBeActedOnBy(actorProfileID) {
		return timelog.TransactionResponse{}, timelog.ErrNotCounterpart
	}
	if txData.IsTerminal() {
		return timelog.TransactionResponse{}, timelog.ErrAlreadyProcessed
	}

	// Disputes do not touch balances, so no surrounding transaction is needed
	disputed, err := t.TransactionRepository.DisputePending(ctx, transactionID, actorProfileID, req.Reason)
	if err != nil {
		return timelog.TransactionResponse{}, fmt.Errorf("failed to dispute transaction: %w", err)
	}
	if !disputed {
		return timelog.TransactionResponse{}, timelog.ErrAlreadyProcessed
	}

	updated, err := t.TransactionRepository.GetByID(ctx, transactionID)
	if err != nil {
		return timelog.TransactionResponse{}, err
	}

	slog.Info("Time transaction disputed",
		"transaction_id", transactionID,
		"disputed_by", actorProfileID)

	go t.notify(updated.LoggedBy, actorProfileID, notification.TypeTransactionDisputed,
		"Time disputed",
		fmt.Sprintf("Your %.1f hour exchange was disputed: %s", updated.Hours, req.Reason),
		updated.ID)

	return timelog.NewTransactionResponse(updated), nil
}

// Cancel implements timelog.TimeLogService.
func (t *TimeLogServiceImpl) Cancel(ctx context.Context, actorProfileID, transactionID string) (timelog.TransactionResponse, error) {
	txData, err := t.TransactionRepository.GetByID(ctx, transactionID)
	if err != nil {
		return timelog.TransactionResponse{}, err
	}

	if _, involved := txData.CounterpartOf(actorProfileID); !involved {
		return timelog.TransactionResponse{}, timelog.ErrNotParticipant
	}
	if txData.LoggedBy != actorProfileID {
		return timelog.TransactionResponse{}, timelog.ErrNotLogger
	}
	if txData.IsTerminal() {
		return timelog.TransactionResponse{}, timelog.ErrAlreadyProcessed
	}

	cancelled, err := t.TransactionRepository.CancelPending(ctx, transactionID)
	if err != nil {
		return timelog.TransactionResponse{}, fmt.Errorf("failed to cancel transaction: %w", err)
	}
	if !cancelled {
		return timelog.TransactionResponse{}, timelog.ErrAlreadyProcessed
	}

	updated, err := t.TransactionRepository.GetByID(ctx, transactionID)
	if err != nil {
		return timelog.TransactionResponse{}, err
	}

	slog.Info("Time transaction cancelled",
		"transaction_id", transactionID,
		"logged_by", actorProfileID)

	return timelog.NewTransactionResponse(updated), nil
}

// Nudge implements timelog.TimeLogService.
func (t *TimeLogServiceImpl) Nudge(ctx context.Context, actorProfileID, transactionID string) error {
	txData, err := t.TransactionRepository.GetByID(ctx, transactionID)
	if err != nil {
		return err
	}

	if _, involved := txData.CounterpartOf(actorProfileID); !involved {
		return timelog.ErrNotParticipant
	}
	if txData.LoggedBy != actorProfileID {
		return timelog.ErrNotLogger
	}
	if txData.IsTerminal() {
		return timelog.ErrAlreadyProcessed
	}

	recorded, err := t.TransactionRepository.RecordNudge(ctx, transactionID, nudgeMinInterval)
	if err != nil {
		return fmt.Errorf("failed to record nudge: %w", err)
	}
	if !recorded {
		return timelog.ErrNudgeTooSoon
	}

	go t.sendNudge(txData)

	return nil
}

// LogAgentTime implements timelog.TimeLogService.
func (t *TimeLogServiceImpl) LogAgentTime(ctx context.Context, actorProfileID string, req timelog.LogAgentTimeRequest) (timelog.AgentTransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return timelog.AgentTransactionResponse{}, err
	}

	agentData, err := t.agentRepo.GetByID(ctx, req.AgentID)
	if err != nil {
		return timelog.AgentTransactionResponse{}, err
	}
	if !agentData.IsActive {
		return timelog.AgentTransactionResponse{}, agent.ErrAgentInactive
	}

	serviceType := req.ServiceType
	if serviceType == nil {
		serviceType = agentData.ServiceType
	}

	// Agents settle instantly, there is no counterpart to confirm
	created, err := t.agentTxRepo.Create(ctx, timelog.AgentTransaction{
		ProfileID:      actorProfileID,
		AgentID:        req.AgentID,
		ProfileIsGiver: req.ProfileIsGiver,
		Hours:          req.Hours,
		Description:    req.Description,
		ServiceType:    serviceType,
		Status:         timelog.StatusConfirmed,
	})
	if err != nil {
		return timelog.AgentTransactionResponse{}, fmt.Errorf("failed to create agent transaction: %w", err)
	}

	slog.Info("Agent time logged",
		"agent_transaction_id", created.ID,
		"profile_id", actorProfileID,
		"agent_id", req.AgentID)

	return timelog.NewAgentTransactionResponse(created), nil
}

// notifyLogged emails the counterpart a confirmation request and queues the
// in-app notification. Failures only get logged.
func (t *TimeLogServiceImpl) notifyLogged(tx timelog.TimeTransaction, loggerName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	counterpartID, _ := tx.CounterpartOf(tx.LoggedBy)
	counterpart, err := t.profileRepo.GetByID(ctx, counterpartID)
	if err != nil {
		slog.Warn("Failed to load counterpart for confirmation request",
			"transaction_id", tx.ID, "error", err)
		return
	}

	if err := t.emailService.SendConfirmationRequest(counterpart.Email, counterpart.DisplayName, loggerName, tx.Hours, tx.Description); err != nil {
		slog.Warn("Failed to send confirmation request email",
			"transaction_id", tx.ID, "error", err)
	}

	t.notify(counterpartID, tx.LoggedBy, notification.TypeTimeLogged,
		"Time logged with you",
		fmt.Sprintf("%s logged %.1f hours with you, confirm or dispute it", loggerName, tx.Hours),
		tx.ID)
}

// sendNudge re-sends the confirmation reminder after the throttle admitted it.
func (t *TimeLogServiceImpl) sendNudge(tx timelog.TimeTransaction) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	counterpartID, _ := tx.CounterpartOf(tx.LoggedBy)

	counterpart, err := t.profileRepo.GetByID(ctx, counterpartID)
	if err != nil {
		slog.Warn("Failed to load counterpart for nudge",
			"transaction_id", tx.ID, "error", err)
		return
	}
	logger, err := t.profileRepo.GetByID(ctx, tx.LoggedBy)
	if err != nil {
		slog.Warn("Failed to load logger for nudge",
			"transaction_id", tx.ID, "error", err)
		return
	}

	if err := t.emailService.SendNudge(counterpart.Email, counterpart.DisplayName, logger.DisplayName, tx.Hours, tx.Description); err != nil {
		slog.Warn("Failed to send nudge email",
			"transaction_id", tx.ID, "error", err)
	}

	t.notify(counterpartID, tx.LoggedBy, notification.TypeNudgeReminder,
		"Confirmation reminder",
		fmt.Sprintf("%s is waiting for you to confirm %.1f hours", logger.DisplayName, tx.Hours),
		tx.ID)
}

func (t *TimeLogServiceImpl) notify(recipientID, senderID string, notificationType notification.NotificationType, title, message, transactionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := t.notificationService.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: recipientID,
		SenderID:    &senderID,
		Type:        notificationType,
		Title:       title,
		Message:     message,
		Data:        map[string]interface{}{"transaction_id": transactionID},
	})
	if err != nil {
		slog.Warn("Failed to queue notification",
			"transaction_id", transactionID,
			"type", notificationType,
			"error", err)
	}
}
