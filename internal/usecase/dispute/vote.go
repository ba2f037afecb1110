package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
	publisher "github.com/veilmarket/auction-service/internal/infrastructure/kafka"
	disputedto "github.com/veilmarket/auction-service/internal/usecase/dto/dispute"
)

// Vote records one arbitrator ballot. The first voter becomes arbitrator of
// record; when the quorum is reached the dispute resolves immediately in the
// same call.
func (uc *DefaultDisputeUsecase) Vote(ctx context.Context, input *disputedto.VoteInput) error {
	if err := uc.ensureNotPaused(); err != nil {
		return err
	}

	uc.Locks.Lock(input.DisputeID)
	defer uc.Locks.Unlock(input.DisputeID)

	dispute, err := uc.DisputeRepo.GetDisputeByID(input.DisputeID)
	if err != nil {
		return err
	}
	switch dispute.Status {
	case domain.DisputeEvidenceSubmitted, domain.DisputeUnderReview:
	default:
		if dispute.Status.Resolved() {
			return domain.ErrDisputeAlreadyResolved
		}
		return domain.ErrInvalidDisputeState
	}

	config, err := uc.PlatformRepo.GetConfig()
	if err != nil {
		return err
	}
	if !config.IsArbitrator(input.ArbitratorID) {
		return domain.ErrOnlyArbitrator
	}

	voted, err := uc.DisputeRepo.HasVoted(dispute.ID, input.ArbitratorID)
	if err != nil {
		return err
	}
	if voted {
		return domain.ErrAlreadyVoted
	}

	now := uc.Clock.Now()
	record, err := uc.ArbitratorRepo.GetOrCreateArbitrator(input.ArbitratorID, now)
	if err != nil {
		return err
	}
	if !record.CanTakeCase() {
		return domain.ErrArbitratorOverloaded
	}

	if err := uc.DisputeRepo.AddVote(&domain.DisputeVote{
		DisputeID:    dispute.ID,
		ArbitratorID: input.ArbitratorID,
		ForBuyer:     input.ForBuyer,
		Notes:        input.Notes,
		VotedAt:      now,
	}); err != nil {
		return err
	}

	// Only the arbitrator of record carries the case on their ledger; other
	// voters contribute a ballot without taking on a case.
	if dispute.ArbitratorID == "" {
		dispute.ArbitratorID = input.ArbitratorID
		record.CasesAssigned++
		if err := uc.ArbitratorRepo.SaveArbitrator(record); err != nil {
			return err
		}
	}

	dispute.VotesCollected++
	if input.ForBuyer {
		dispute.VotesForBuyer++
	} else {
		dispute.VotesForSeller++
	}
	dispute.Status = domain.DisputeUnderReview
	dispute.LastActivity = now

	// Ballot and tally land together before any payout. A failed payout
	// leaves a quorum-complete dispute that ResolveDispute can crank.
	if err := uc.DisputeRepo.UpdateDispute(dispute); err != nil {
		return err
	}

	if dispute.VotesCollected < domain.MinVotesToResolve {
		return nil
	}

	return uc.resolve(ctx, dispute, now)
}

// ResolveDispute retries the resolution payout for a dispute whose quorum
// was reached but whose payout attempt failed. Any caller may crank it.
func (uc *DefaultDisputeUsecase) ResolveDispute(ctx context.Context, disputeID string) error {
	if err := uc.ensureNotPaused(); err != nil {
		return err
	}

	uc.Locks.Lock(disputeID)
	defer uc.Locks.Unlock(disputeID)

	dispute, err := uc.DisputeRepo.GetDisputeByID(disputeID)
	if err != nil {
		return err
	}
	if dispute.Status.Resolved() {
		return domain.ErrDisputeAlreadyResolved
	}
	if dispute.Status != domain.DisputeUnderReview || dispute.VotesCollected < domain.MinVotesToResolve {
		return domain.ErrInvalidDisputeState
	}

	return uc.resolve(ctx, dispute, uc.Clock.Now())
}

func (uc *DefaultDisputeUsecase) resolve(ctx context.Context, dispute *domain.Dispute, now time.Time) error {
	outcome := dispute.DetermineOutcome()

	refund, fee, err := uc.EscrowUsecase.PayoutDispute(ctx, dispute.EscrowID, outcome)
	if err != nil {
		return err
	}

	dispute.Outcome = &outcome
	dispute.RefundAmount = refund
	dispute.ResolvedAt = &now
	dispute.LastActivity = now
	switch outcome.Kind {
	case domain.OutcomeFullRefund, domain.OutcomeReturnForRefund:
		dispute.Status = domain.DisputeResolvedBuyer
	case domain.OutcomeReleaseToSeller:
		dispute.Status = domain.DisputeResolvedSeller
	default:
		dispute.Status = domain.DisputeResolvedPartial
	}
	if err := uc.DisputeRepo.UpdateDispute(dispute); err != nil {
		return err
	}

	// The suspended auction returns to its settled terminal state.
	if err := uc.AuctionRepo.UpdateAuctionStatus(dispute.AuctionID, domain.AuctionSettled); err != nil {
		return err
	}

	uc.settleArbitration(ctx, dispute, fee, now)
	uc.updateProfilesAfterResolution(dispute, now)

	go func(event publisher.DisputeEvent) {
		if err := uc.Publisher.PublishDispute(event); err != nil {
			slog.Error("failed to publish kafka dispute event", "stage", "resolving", "error", err.Error())
		}
	}(publisher.DisputeEvent{
		DisputeID: dispute.ID,
		AuctionID: dispute.AuctionID,
		EscrowID:  dispute.EscrowID,
		RaisedBy:  dispute.RaisedBy,
		Reason:    string(dispute.Reason),
		Status:    string(dispute.Status),
		Outcome:   string(outcome.Kind),
	})

	uc.Index.Append(ctx, "dispute_resolved", disputedto.ToDisputeOutput(dispute))
	uc.Metrics.DisputesResolvedTotal.WithLabelValues(string(outcome.Kind)).Inc()
	uc.Metrics.DisputeResolutionTime.WithLabelValues(string(outcome.Kind)).
		Observe(now.Sub(dispute.OpenedAt).Seconds())

	return nil
}

// settleArbitration pays the arbitrator of record a tenth of the platform
// fee and folds the case into their running average.
func (uc *DefaultDisputeUsecase) settleArbitration(ctx context.Context, dispute *domain.Dispute, fee uint64, now time.Time) {
	arbitrationFee := fee / 10

	config, err := uc.PlatformRepo.GetConfig()
	if err != nil {
		slog.Error("failed to load platform config", "error", err.Error())
		return
	}
	if arbitrationFee > 0 {
		escrow, err := uc.EscrowRepo.GetEscrowByID(dispute.EscrowID)
		if err != nil {
			slog.Error("failed to load escrow for arbitration fee", "escrow_id", dispute.EscrowID, "error", err.Error())
			return
		}
		if err := uc.Rail.Transfer(ctx, config.FeeCollectorID, dispute.ArbitratorID, arbitrationFee, escrow.PaymentAsset, "arbitration:"+dispute.ID); err != nil {
			slog.Error("failed to pay arbitration fee", "dispute_id", dispute.ID, "error", err.Error())
			return
		}
	}

	record, err := uc.ArbitratorRepo.GetOrCreateArbitrator(dispute.ArbitratorID, now)
	if err != nil {
		slog.Error("failed to load arbitrator record", "user_id", dispute.ArbitratorID, "error", err.Error())
		return
	}
	record.RecordResolution(now.Sub(dispute.OpenedAt), arbitrationFee, now)
	if err := uc.ArbitratorRepo.SaveArbitrator(record); err != nil {
		slog.Error("failed to save arbitrator record", "user_id", dispute.ArbitratorID, "error", err.Error())
	}
}

func (uc *DefaultDisputeUsecase) updateProfilesAfterResolution(dispute *domain.Dispute, now time.Time) {
	raiserWon := (dispute.RaisedBy == dispute.BuyerID && dispute.Status == domain.DisputeResolvedBuyer) ||
		(dispute.RaisedBy == dispute.SellerID && dispute.Status == domain.DisputeResolvedSeller)

	if raiserWon {
		raiser, err := uc.ProfileRepo.GetOrCreateProfile(dispute.RaisedBy, now)
		if err != nil {
			slog.Error("failed to load raiser profile", "user_id", dispute.RaisedBy, "error", err.Error())
			return
		}
		raiser.RecordDisputeWon()
		if err := uc.ProfileRepo.SaveProfile(raiser); err != nil {
			slog.Error("failed to save raiser profile", "user_id", dispute.RaisedBy, "error", err.Error())
		}
	}

	// Unlock the accused's stake unless the seller lost outright; a full
	// refund leaves the stake locked for authority slashing.
	accusedID := dispute.SellerID
	if dispute.RaisedBy == dispute.SellerID {
		accusedID = dispute.BuyerID
	}
	if accusedID == dispute.SellerID && dispute.Status == domain.DisputeResolvedBuyer {
		return
	}
	stake, err := uc.ProfileRepo.GetStake(accusedID)
	if err != nil {
		return
	}
	stake.LockedForDispute = false
	if err := uc.ProfileRepo.SaveStake(stake); err != nil {
		slog.Error("failed to unlock stake", "user_id", accusedID, "error", err.Error())
	}
}
