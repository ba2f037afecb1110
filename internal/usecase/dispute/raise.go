package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/veilmarket/auction-service/internal/domain"
	publisher "github.com/veilmarket/auction-service/internal/infrastructure/kafka"
	disputedto "github.com/veilmarket/auction-service/internal/usecase/dto/dispute"
)

// RaiseDispute opens a dispute over a funded escrow. Only the buyer or the
// seller may raise one, and only one dispute per auction can be open. The
// escrow freezes and the accused party's stake force-locks until resolution.
func (uc *DefaultDisputeUsecase) RaiseDispute(ctx context.Context, input *disputedto.RaiseDisputeInput) (*disputedto.DisputeOutput, error) {
	if err := uc.ensureNotPaused(); err != nil {
		return nil, err
	}

	uc.Locks.Lock(input.AuctionID)
	defer uc.Locks.Unlock(input.AuctionID)

	auction, err := uc.AuctionRepo.GetAuctionByID(input.AuctionID)
	if err != nil {
		return nil, err
	}
	if auction.Status != domain.AuctionSettled {
		return nil, domain.ErrInvalidAuctionState
	}

	escrow, err := uc.EscrowRepo.GetEscrowByAuctionID(input.AuctionID)
	if err != nil {
		return nil, err
	}
	if escrow.Status != domain.EscrowFunded {
		return nil, domain.ErrInvalidEscrowState
	}

	if input.RaisedBy != escrow.PayerID && input.RaisedBy != escrow.BeneficiaryID {
		return nil, domain.ErrNotAParty
	}

	if _, err := uc.DisputeRepo.GetOpenDisputeByAuctionID(input.AuctionID); err == nil {
		return nil, domain.ErrDisputeAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}
	now := uc.Clock.Now()
	dispute := &domain.Dispute{
		ID:                 idGenerator(),
		AuctionID:          auction.ID,
		EscrowID:           escrow.ID,
		BuyerID:            escrow.PayerID,
		SellerID:           escrow.BeneficiaryID,
		RaisedBy:           input.RaisedBy,
		Reason:             input.Reason,
		Description:        input.Description,
		Status:             domain.DisputeOpened,
		Amount:             escrow.Amount,
		OpenedAt:           now,
		LastActivity:       now,
		EvidenceDeadline:   now.Add(domain.EvidencePeriod),
		ResolutionDeadline: now.Add(domain.ResolutionPeriod),
	}
	if err := uc.DisputeRepo.CreateDispute(dispute); err != nil {
		return nil, err
	}

	if err := uc.EscrowUsecase.MarkDisputed(ctx, escrow.ID); err != nil {
		return nil, err
	}
	if err := uc.AuctionRepo.UpdateAuctionStatus(auction.ID, domain.AuctionDisputed); err != nil {
		return nil, err
	}

	uc.updateProfilesAfterRaise(dispute, now)

	go func(event publisher.DisputeEvent) {
		if err := uc.Publisher.PublishDispute(event); err != nil {
			slog.Error("failed to publish kafka dispute event", "stage", "raising", "error", err.Error())
		}
	}(publisher.DisputeEvent{
		DisputeID: dispute.ID,
		AuctionID: dispute.AuctionID,
		EscrowID:  dispute.EscrowID,
		RaisedBy:  dispute.RaisedBy,
		Reason:    string(dispute.Reason),
		Status:    string(dispute.Status),
	})

	uc.Index.Append(ctx, "dispute_raised", disputedto.ToDisputeOutput(dispute))
	uc.Metrics.DisputesRaisedTotal.WithLabelValues(string(dispute.Reason)).Inc()

	return disputedto.ToDisputeOutput(dispute), nil
}

// updateProfilesAfterRaise counts the raise against both parties and
// force-locks the accused's stake as a slashing precondition.
func (uc *DefaultDisputeUsecase) updateProfilesAfterRaise(dispute *domain.Dispute, now time.Time) {
	raiser, err := uc.ProfileRepo.GetOrCreateProfile(dispute.RaisedBy, now)
	if err != nil {
		slog.Error("failed to load raiser profile", "user_id", dispute.RaisedBy, "error", err.Error())
		return
	}
	raiser.RecordDisputeRaised()
	if err := uc.ProfileRepo.SaveProfile(raiser); err != nil {
		slog.Error("failed to save raiser profile", "user_id", dispute.RaisedBy, "error", err.Error())
	}

	accusedID := dispute.SellerID
	if dispute.RaisedBy == dispute.SellerID {
		accusedID = dispute.BuyerID
	}

	accused, err := uc.ProfileRepo.GetOrCreateProfile(accusedID, now)
	if err != nil {
		slog.Error("failed to load accused profile", "user_id", accusedID, "error", err.Error())
		return
	}
	accused.RecordDisputeAgainst()
	if err := uc.ProfileRepo.SaveProfile(accused); err != nil {
		slog.Error("failed to save accused profile", "user_id", accusedID, "error", err.Error())
	}

	stake, err := uc.ProfileRepo.GetStake(accusedID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Error("failed to load accused stake", "user_id", accusedID, "error", err.Error())
		}
		return
	}
	stake.LockedForDispute = true
	if err := uc.ProfileRepo.SaveStake(stake); err != nil {
		slog.Error("failed to lock accused stake", "user_id", accusedID, "error", err.Error())
	}
}
