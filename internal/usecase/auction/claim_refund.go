package usecase

import (
	"context"

	"github.com/veilmarket/auction-service/internal/domain"
	auctiondto "github.com/veilmarket/auction-service/internal/usecase/dto/auction"
)

// ClaimRefund returns bid collateral once the auction reached a terminal
// state. Revealed losers get everything back; a bidder who sat out the
// reveal of a settled auction forfeits half to the fee collector and takes
// a reputation penalty.
func (uc *DefaultAuctionUsecase) ClaimRefund(ctx context.Context, input *auctiondto.ClaimRefundInput) error {
	if err := uc.ensureNotPaused(); err != nil {
		return err
	}

	uc.Locks.Lock(input.AuctionID)
	defer uc.Locks.Unlock(input.AuctionID)

	auction, err := uc.AuctionRepo.GetAuctionByID(input.AuctionID)
	if err != nil {
		return err
	}
	switch auction.Status {
	case domain.AuctionSettled, domain.AuctionExpired, domain.AuctionCancelled, domain.AuctionDisputed:
	default:
		return domain.ErrInvalidAuctionState
	}
	if auction.WinnerID != "" && input.BidderID == auction.WinnerID {
		// The winner's collateral normally comes back when they fund the
		// escrow. The claim path stays open as a fallback for a funded
		// escrow whose collateral-return transfer failed.
		escrow, err := uc.EscrowRepo.GetEscrowByID(auction.EscrowID)
		if err != nil {
			return err
		}
		if escrow.Status == domain.EscrowCreated {
			return domain.ErrWinnerCannotRefund
		}
	}

	bid, err := uc.BidRepo.GetBid(input.AuctionID, input.BidderID)
	if err != nil {
		return err
	}
	if bid.CollateralReturned {
		return domain.ErrRefundAlreadyClaimed
	}

	config, err := uc.PlatformRepo.GetConfig()
	if err != nil {
		return err
	}
	now := uc.Clock.Now()
	pool, err := uc.CollateralRepo.GetOrCreatePool(auction.ID, now)
	if err != nil {
		return err
	}

	// Only a settled auction punishes a silent bidder; expired and cancelled
	// auctions refund everyone in full.
	settled := auction.Status == domain.AuctionSettled || auction.Status == domain.AuctionDisputed

	refund := bid.CollateralDeposited
	var forfeit uint64
	if settled && !bid.Revealed {
		forfeit = bid.CollateralDeposited / 2
		refund = bid.CollateralDeposited - forfeit
	}

	if err := uc.Rail.Transfer(ctx, collateralVault(auction.ID), input.BidderID, refund, auction.PaymentAsset, "refund:"+auction.ID+":"+input.BidderID); err != nil {
		uc.Metrics.OperationErrors.WithLabelValues("claim_refund").Inc()
		return err
	}
	if err := pool.Refund(refund); err != nil {
		return err
	}

	if forfeit > 0 {
		if err := uc.Rail.Transfer(ctx, collateralVault(auction.ID), config.FeeCollectorID, forfeit, auction.PaymentAsset, "forfeit:"+auction.ID+":"+input.BidderID); err != nil {
			return err
		}
		if err := pool.Forfeit(forfeit); err != nil {
			return err
		}

		profile, err := uc.ProfileRepo.GetOrCreateProfile(input.BidderID, now)
		if err != nil {
			return err
		}
		profile.ReputationScore = uint16(domain.SaturatingSub(uint64(profile.ReputationScore), domain.FailedRevealPenalty))
		if err := uc.ProfileRepo.SaveProfile(profile); err != nil {
			return err
		}

		uc.Metrics.CollateralForfeited.WithLabelValues(auction.PaymentAsset).Add(float64(forfeit))
	}

	pool.UpdatedAt = now
	if err := uc.CollateralRepo.SavePool(pool); err != nil {
		return err
	}
	if err := uc.BidRepo.MarkCollateralReturned(bid.ID); err != nil {
		return err
	}

	uc.Index.Append(ctx, "collateral_refunded", map[string]any{
		"auction_id": auction.ID,
		"bidder_id":  input.BidderID,
		"refund":     refund,
		"forfeit":    forfeit,
	})

	return nil
}
