package invitation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aleenavigoda/yardso-sub000/internal/config"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/invitation"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/notification"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/profile"
	"github.com/aleenavigoda/yardso-sub000/internal/domain/timelog"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/database"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/email"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/token"
	"github.com/aleenavigoda/yardso-sub000/internal/pkg/validator"
	"github.com/aleenavigoda/yardso-sub000/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type InvitationServiceImpl struct {
	db  *database.DB
	cfg *config.Config
	invitation.InvitationRepository
	pendingLogRepo      invitation.PendingTimeLogRepository
	transactionRepo     timelog.TransactionRepository
	profileRepo         profile.ProfileRepository
	notificationService notification.Service
	emailService        email.EmailService
}

func NewInvitationService(
	db *database.DB,
	cfg *config.Config,
	invitationRepository invitation.InvitationRepository,
	pendingLogRepository invitation.PendingTimeLogRepository,
	transactionRepository timelog.TransactionRepository,
	profileRepository profile.ProfileRepository,
	notificationService notification.Service,
	emailService email.EmailService,
) invitation.InvitationService {
	return &InvitationServiceImpl{
		db:                   db,
		cfg:                  cfg,
		InvitationRepository: invitationRepository,
		pendingLogRepo:       pendingLogRepository,
		transactionRepo:      transactionRepository,
		profileRepo:          profileRepository,
		notificationService:  notificationService,
		emailService:         emailService,
	}
}

// CreateAndSend implements invitation.InvitationService.
func (i *InvitationServiceImpl) CreateAndSend(ctx context.Context, req invitation.CreateRequest) (invitation.CreateResult, error) {
	if err := req.Validate(); err != nil {
		return invitation.CreateResult{}, err
	}

	inviteeEmail := strings.ToLower(strings.TrimSpace(req.InviteeEmail))

	newToken, err := token.NewOpaque()
	if err != nil {
		return invitation.CreateResult{}, fmt.Errorf("failed to generate invitation token: %w", err)
	}
	expiresAt := time.Now().Add(i.cfg.Invitation.Expiration)

	var result invitation.CreateResult

	err = postgresql.WithTransaction(ctx, i.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		existing, err := i.InvitationRepository.GetPendingByInviterAndEmail(txCtx, req.InviterProfileID, inviteeEmail)
		if err == nil {
			// An outstanding invitation to the same address is reused with a
			// fresh token, expiry and payload rather than stacked
			if err := i.InvitationRepository.UpdateToken(txCtx, existing.ID, newToken, expiresAt); err != nil {
				return fmt.Errorf("failed to rotate invitation token: %w", err)
			}

			pendingLog, err := i.pendingLogRepo.GetByInvitationID(txCtx, existing.ID)
			if err != nil {
				return fmt.Errorf("failed to get pending log for reuse: %w", err)
			}
			if err := i.pendingLogRepo.ReplacePayload(txCtx, pendingLog.ID, req.Hours, req.Description, req.ServiceType, req.Mode); err != nil {
				return fmt.Errorf("failed to replace pending log payload: %w", err)
			}

			result = invitation.CreateResult{
				InvitationID: existing.ID,
				Token:        newToken,
				ExpiresAt:    expiresAt,
				Reused:       true,
			}
			return nil
		}
		if !errors.Is(err, invitation.ErrInvitationNotFound) {
			return fmt.Errorf("failed to check outstanding invitations: %w", err)
		}

		created, err := i.InvitationRepository.Create(txCtx, invitation.Invitation{
			InviterProfile: req.InviterProfileID,
			InviteeEmail:   inviteeEmail,
			InviteeName:    req.InviteeName,
			Token:          newToken,
			Status:         invitation.StatusPending,
			ExpiresAt:      expiresAt,
		})
		if err != nil {
			return fmt.Errorf("failed to create invitation: %w", err)
		}

		if _, err := i.pendingLogRepo.Create(txCtx, invitation.PendingTimeLog{
			InvitationID:    created.ID,
			LoggerProfileID: req.InviterProfileID,
			InviteeEmail:    inviteeEmail,
			InviteeName:     req.InviteeName,
			Hours:           req.Hours,
			Description:     req.Description,
			ServiceType:     req.ServiceType,
			Mode:            req.Mode,
			Status:          invitation.PendingLogStatusPending,
		}); err != nil {
			return fmt.Errorf("failed to create pending time log: %w", err)
		}

		result = invitation.CreateResult{
			InvitationID: created.ID,
			Token:        newToken,
			ExpiresAt:    expiresAt,
		}
		return nil
	})
	if err != nil {
		return invitation.CreateResult{}, err
	}

	go func() {
		link := i.cfg.InvitationURL(result.Token)
		expiry := result.ExpiresAt.Format("January 2, 2006")
		if err := i.emailService.SendInvitation(inviteeEmail, req.InviteeName, req.InviterName, req.Hours, req.Description, link, expiry); err != nil {
			slog.Warn("Failed to send invitation email", "invitation_id", result.InvitationID, "error", err)
		}
	}()
	go i.notifySent(req.InviterProfileID, inviteeEmail, req.InviteeName, result.InvitationID)

	return result, nil
}

func (i *InvitationServiceImpl) notifySent(inviterProfileID, inviteeEmail string, inviteeName *string, invitationID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	recipient := inviteeEmail
	if inviteeName != nil && *inviteeName != "" {
		recipient = *inviteeName
	}

	err := i.notificationService.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: inviterProfileID,
		Type:        notification.TypeInvitationSent,
		Title:       "Invitation sent",
		Message:     fmt.Sprintf("Your invitation to %s is on its way", recipient),
		Data: map[string]interface{}{
			"invitation_id": invitationID,
			"invitee_email": inviteeEmail,
		},
	})
	if err != nil {
		slog.Warn("Failed to queue invitation notification", "invitation_id", invitationID, "error", err)
	}
}

// GetByToken implements invitation.InvitationService.
func (i *InvitationServiceImpl) GetByToken(ctx context.Context, tkn string) (invitation.InvitationDetailResponse, error) {
	if !validator.IsValidInviteToken(tkn) {
		return invitation.InvitationDetailResponse{}, invitation.ErrInvitationNotFound
	}

	details, err := i.InvitationRepository.GetByTokenWithDetails(ctx, tkn)
	if err != nil {
		return invitation.InvitationDetailResponse{}, err
	}

	switch details.Status {
	case invitation.StatusAccepted:
		return invitation.InvitationDetailResponse{}, invitation.ErrInvitationAlreadyUsed
	case invitation.StatusCancelled:
		return invitation.InvitationDetailResponse{}, invitation.ErrInvitationCancelled
	case invitation.StatusExpired:
		return invitation.InvitationDetailResponse{}, invitation.ErrInvitationExpired
	}
	if details.IsExpired() {
		// Stored status lags the clock between cron runs
		return invitation.InvitationDetailResponse{}, invitation.ErrInvitationExpired
	}

	resp := invitation.InvitationDetailResponse{
		Token:        details.Token,
		InviteeEmail: details.InviteeEmail,
		InviteeName:  details.InviteeName,
		InviterName:  details.InviterName,
		Status:       string(details.Status),
		ExpiresAt:    details.ExpiresAt,
	}
	if details.PendingLog != nil && details.PendingLog.IsConvertible() {
		resp.TimeLog = &invitation.PendingLogPayload{
			Hours:       details.PendingLog.Hours,
			Description: details.PendingLog.Description,
			ServiceType: details.PendingLog.ServiceType,
			Mode:        details.PendingLog.Mode,
		}
	}

	return resp, nil
}

// Accept implements invitation.InvitationService.
func (i *InvitationServiceImpl) Accept(ctx context.Context, tkn, newProfileID string) (invitation.AcceptResponse, error) {
	var resp invitation.AcceptResponse

	err := postgresql.WithTransaction(ctx, i.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		inv, err := i.InvitationRepository.GetByToken(txCtx, tkn)
		if err != nil {
			return err
		}

		switch inv.Status {
		case invitation.StatusAccepted:
			// Idempotent: report the original outcome without writing
			return i.alreadyAccepted(txCtx, inv, &resp)
		case invitation.StatusCancelled:
			return invitation.ErrInvitationCancelled
		case invitation.StatusExpired:
			return invitation.ErrInvitationExpired
		}
		if inv.IsExpired() {
			return invitation.ErrInvitationExpired
		}

		claimed, err := i.InvitationRepository.ClaimPending(txCtx, inv.ID, time.Now())
		if err != nil {
			return fmt.Errorf("failed to claim invitation: %w", err)
		}
		if !claimed {
			// Lost the race to a concurrent accept of the same token
			inv, err = i.InvitationRepository.GetByID(txCtx, inv.ID)
			if err != nil {
				return err
			}
			if inv.Status == invitation.StatusAccepted {
				return i.alreadyAccepted(txCtx, inv, &resp)
			}
			return invitation.ErrInvitationAlreadyUsed
		}

		pendingLog, err := i.pendingLogRepo.GetByInvitationID(txCtx, inv.ID)
		if err != nil {
			if errors.Is(err, invitation.ErrPendingLogNotFound) {
				// Invitation without a deferred exchange, nothing to convert
				resp = invitation.AcceptResponse{
					Message:          "invitation accepted",
					InvitationID:     inv.ID,
					InviterProfileID: inv.InviterProfile,
				}
				return nil
			}
			return fmt.Errorf("failed to get pending time log: %w", err)
		}

		var transactionID *string
		if pendingLog.IsConvertible() {
			mode := timelog.Mode(pendingLog.Mode)
			giverID, receiverID := mode.GiverReceiver(pendingLog.LoggerProfileID, newProfileID)

			created, err := i.transactionRepo.Create(txCtx, timelog.TimeTransaction{
				GiverID:     giverID,
				ReceiverID:  receiverID,
				Hours:       pendingLog.Hours,
				Description: pendingLog.Description,
				ServiceType: pendingLog.ServiceType,
				Status:      timelog.StatusPending,
				LoggedBy:    pendingLog.LoggerProfileID,
			})
			if err != nil {
				return fmt.Errorf("failed to convert pending time log: %w", err)
			}

			converted, err := i.pendingLogRepo.MarkConverted(txCtx, pendingLog.ID, created.ID)
			if err != nil {
				return fmt.Errorf("failed to mark pending log converted: %w", err)
			}
			if !converted {
				return fmt.Errorf("pending time log %s was converted concurrently", pendingLog.ID)
			}
			transactionID = &created.ID
		} else if pendingLog.ConvertedTransID != nil {
			transactionID = pendingLog.ConvertedTransID
		}

		resp = invitation.AcceptResponse{
			Message:          "invitation accepted",
			InvitationID:     inv.ID,
			TransactionID:    transactionID,
			InviterProfileID: inv.InviterProfile,
		}
		return nil
	})
	if err != nil {
		return invitation.AcceptResponse{}, err
	}

	if !resp.AlreadyAccepted {
		go i.notifyAccepted(resp.InviterProfileID, newProfileID, resp.InvitationID)
	}

	return resp, nil
}

// alreadyAccepted fills resp with the outcome of the original acceptance so a
// retried token returns the same answer
func (i *InvitationServiceImpl) alreadyAccepted(ctx context.Context, inv invitation.Invitation, resp *invitation.AcceptResponse) error {
	*resp = invitation.AcceptResponse{
		Message:          "invitation already accepted",
		InvitationID:     inv.ID,
		AlreadyAccepted:  true,
		InviterProfileID: inv.InviterProfile,
	}

	pendingLog, err := i.pendingLogRepo.GetByInvitationID(ctx, inv.ID)
	if err != nil {
		if errors.Is(err, invitation.ErrPendingLogNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get pending time log: %w", err)
	}
	resp.TransactionID = pendingLog.ConvertedTransID

	return nil
}

func (i *InvitationServiceImpl) notifyAccepted(inviterProfileID, newProfileID, invitationID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	memberName := "A new member"
	if p, err := i.profileRepo.GetByID(ctx, newProfileID); err == nil {
		memberName = p.DisplayName
	}

	err := i.notificationService.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: inviterProfileID,
		SenderID:    &newProfileID,
		Type:        notification.TypeInvitationAccepted,
		Title:       "Invitation accepted",
		Message:     fmt.Sprintf("%s joined Yardso from your invitation", memberName),
		Data: map[string]interface{}{
			"invitation_id": invitationID,
			"profile_id":    newProfileID,
		},
	})
	if err != nil {
		slog.Warn("Failed to queue invitation notification", "invitation_id", invitationID, "error", err)
	}
}

// Cancel implements invitation.InvitationService.
func (i *InvitationServiceImpl) Cancel(ctx context.Context, actorProfileID, invitationID string) error {
	inv, err := i.InvitationRepository.GetByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if inv.InviterProfile != actorProfileID {
		return invitation.ErrNotInviter
	}

	switch inv.Status {
	case invitation.StatusAccepted:
		return invitation.ErrInvitationAlreadyUsed
	case invitation.StatusCancelled:
		return nil
	}

	return postgresql.WithTransaction(ctx, i.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := i.InvitationRepository.MarkCancelled(txCtx, inv.ID); err != nil {
			return fmt.Errorf("failed to cancel invitation: %w", err)
		}

		pendingLog, err := i.pendingLogRepo.GetByInvitationID(txCtx, inv.ID)
		if err != nil {
			if errors.Is(err, invitation.ErrPendingLogNotFound) {
				return nil
			}
			return fmt.Errorf("failed to get pending time log: %w", err)
		}
		if pendingLog.IsConvertible() {
			if err := i.pendingLogRepo.MarkCancelled(txCtx, pendingLog.ID); err != nil {
				return fmt.Errorf("failed to cancel pending time log: %w", err)
			}
		}
		return nil
	})
}

// ListByInviter implements invitation.InvitationService.
func (i *InvitationServiceImpl) ListByInviter(ctx context.Context, inviterProfileID string) ([]invitation.SentInvitationResponse, error) {
	invitations, err := i.InvitationRepository.ListByInviter(ctx, inviterProfileID)
	if err != nil {
		return nil, err
	}

	responses := make([]invitation.SentInvitationResponse, len(invitations))
	for idx, inv := range invitations {
		responses[idx] = invitation.NewSentInvitationResponse(inv)
	}

	return responses, nil
}

// ExpireOverdue implements invitation.InvitationService.
func (i *InvitationServiceImpl) ExpireOverdue(ctx context.Context) (int64, error) {
	var count int64

	err := postgresql.WithTransaction(ctx, i.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		ids, err := i.InvitationRepository.ExpireOverdue(txCtx)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := i.pendingLogRepo.ExpireByInvitationIDs(txCtx, ids); err != nil {
			return err
		}
		count = int64(len(ids))
		return nil
	})

	return count, err
}
