package usecase

import (
	"context"
	"log/slog"

	"github.com/veilmarket/auction-service/internal/domain"
	publisher "github.com/veilmarket/auction-service/internal/infrastructure/kafka"
	escrowdto "github.com/veilmarket/auction-service/internal/usecase/dto/escrow"
)

// FundEscrow takes the second-price payment from the auction winner. The
// winner's bid collateral comes back in the same operation, so a funded
// escrow leaves the winner holding no collateral exposure.
func (uc *DefaultEscrowUsecase) FundEscrow(ctx context.Context, input *escrowdto.FundEscrowInput) error {
	if err := uc.ensureNotPaused(); err != nil {
		return err
	}

	uc.Locks.Lock(input.EscrowID)
	defer uc.Locks.Unlock(input.EscrowID)

	escrow, err := uc.EscrowRepo.GetEscrowByID(input.EscrowID)
	if err != nil {
		return err
	}
	if escrow.Status != domain.EscrowCreated {
		if escrow.Status == domain.EscrowFunded {
			return domain.ErrAlreadyFunded
		}
		return domain.ErrInvalidEscrowState
	}

	auction, err := uc.AuctionRepo.GetAuctionByID(escrow.AuctionID)
	if err != nil {
		return err
	}
	if auction.Status != domain.AuctionSettled {
		return domain.ErrInvalidAuctionState
	}
	if input.PayerID != auction.WinnerID {
		return domain.ErrOnlyBidder
	}

	config, err := uc.PlatformRepo.GetConfig()
	if err != nil {
		return err
	}

	amount := auction.PaymentAmount()
	if err := uc.Rail.Transfer(ctx, input.PayerID, escrowVault(escrow.ID), amount, escrow.PaymentAsset, "fund:"+escrow.ID); err != nil {
		uc.Metrics.OperationErrors.WithLabelValues("fund_escrow").Inc()
		return err
	}

	now := uc.Clock.Now()
	requiresConfirmation, timeLock := domain.ReleaseTermsFor(auction.Product.Type)
	level := domain.SecurityLevelFor(amount)
	escrow.Amount = amount
	escrow.PayerID = input.PayerID
	escrow.SecurityLevel = level
	escrow.Conditions = domain.ReleaseConditions{
		RequiresDeliveryConfirmation: requiresConfirmation,
		TimeLockDuration:             timeLock,
		MultiSigThreshold:            level.MultiSigThreshold(),
		Signers:                      []string{auction.SellerID, auction.WinnerID, config.AuthorityID},
		// Time-lock runs from funding, not settlement.
		ReleaseDeadline: now.Add(timeLock),
	}
	escrow.Status = domain.EscrowFunded
	if err := uc.EscrowRepo.UpdateEscrow(escrow); err != nil {
		return err
	}

	// Return the winner's bid collateral.
	bid, err := uc.BidRepo.GetBid(auction.ID, input.PayerID)
	if err == nil && !bid.CollateralReturned {
		if err := uc.Rail.Transfer(ctx, collateralVault(auction.ID), input.PayerID, bid.CollateralDeposited, escrow.PaymentAsset, "refund:"+auction.ID+":"+input.PayerID); err != nil {
			slog.Error("failed to return winner collateral", "auction_id", auction.ID, "error", err.Error())
		} else {
			if err := uc.BidRepo.MarkCollateralReturned(bid.ID); err != nil {
				return err
			}
			pool, err := uc.CollateralRepo.GetOrCreatePool(auction.ID, now)
			if err != nil {
				return err
			}
			if err := pool.Refund(bid.CollateralDeposited); err != nil {
				return err
			}
			pool.UpdatedAt = now
			if err := uc.CollateralRepo.SavePool(pool); err != nil {
				return err
			}
		}
	}

	go func(event publisher.EscrowEvent) {
		if err := uc.Publisher.PublishEscrow(event); err != nil {
			slog.Error("failed to publish kafka escrow event", "stage", "funding", "error", err.Error())
		}
	}(publisher.EscrowEvent{
		EscrowID:  escrow.ID,
		AuctionID: escrow.AuctionID,
		PayerID:   escrow.PayerID,
		Status:    string(escrow.Status),
		Amount:    escrow.Amount,
		Asset:     escrow.PaymentAsset,
	})

	uc.Index.Append(ctx, "escrow_funded", escrowdto.ToEscrowOutput(escrow))
	uc.Metrics.EscrowsFundedTotal.WithLabelValues(string(escrow.SecurityLevel)).Inc()

	return nil
}
