package bounty

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aleenavigoda/yardso-sub000/internal/domain/bounty"
)

type BountyServiceImpl struct {
	bounty.BountyRepository
}

func NewBountyService(bountyRepository bounty.BountyRepository) bounty.BountyService {
	return &BountyServiceImpl{
		BountyRepository: bountyRepository,
	}
}

// Create implements bounty.BountyService.
func (b *BountyServiceImpl) Create(ctx context.Context, posterProfileID string, req bounty.CreateBountyRequest) (bounty.BountyResponse, error) {
	if err := req.Validate(); err != nil {
		return bounty.BountyResponse{}, err
	}

	created, err := b.BountyRepository.Create(ctx, bounty.Bounty{
		PosterProfileID: posterProfileID,
		Title:           req.Title,
		Description:     req.Description,
		HoursOffered:    req.HoursOffered,
		ServiceType:     req.ServiceType,
		Status:          bounty.StatusOpen,
	})
	if err != nil {
		return bounty.BountyResponse{}, fmt.Errorf("failed to create bounty: %w", err)
	}

	slog.Info("Bounty posted",
		"bounty_id", created.ID,
		"poster_profile_id", posterProfileID,
		"hours_offered", created.HoursOffered)

	return bounty.NewBountyResponse(created), nil
}

// GetByID implements bounty.BountyService.
func (b *BountyServiceImpl) GetByID(ctx context.Context, id string) (bounty.BountyResponse, error) {
	found, err := b.BountyRepository.GetByID(ctx, id)
	if err != nil {
		return bounty.BountyResponse{}, err
	}
	return bounty.NewBountyResponse(found), nil
}

// ListOpen implements bounty.BountyService.
func (b *BountyServiceImpl) ListOpen(ctx context.Context, serviceType *string, limit int) ([]bounty.BountyResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	bounties, err := b.BountyRepository.ListOpen(ctx, serviceType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list open bounties: %w", err)
	}

	responses := make([]bounty.BountyResponse, 0, len(bounties))
	for _, item := range bounties {
		responses = append(responses, bounty.NewBountyResponse(item))
	}

	return responses, nil
}

// Close implements bounty.BountyService.
func (b *BountyServiceImpl) Close(ctx context.Context, actorProfileID, bountyID string) (bounty.BountyResponse, error) {
	found, err := b.BountyRepository.GetByID(ctx, bountyID)
	if err != nil {
		return bounty.BountyResponse{}, err
	}

	if found.PosterProfileID != actorProfileID {
		return bounty.BountyResponse{}, bounty.ErrNotPoster
	}

	closed, err := b.BountyRepository.CloseOpen(ctx, bountyID)
	if err != nil {
		return bounty.BountyResponse{}, fmt.Errorf("failed to close bounty: %w", err)
	}
	if !closed {
		return bounty.BountyResponse{}, bounty.ErrBountyClosed
	}

	updated, err := b.BountyRepository.GetByID(ctx, bountyID)
	if err != nil {
		return bounty.BountyResponse{}, err
	}

	slog.Info("Bounty closed",
		"bounty_id", bountyID,
		"poster_profile_id", actorProfileID)

	return bounty.NewBountyResponse(updated), nil
}
