package usecase

import (
	"context"

	"github.com/veilmarket/auction-service/internal/domain"
	auctiondto "github.com/veilmarket/auction-service/internal/usecase/dto/auction"
)

func (uc *DefaultAuctionUsecase) RevealBid(ctx context.Context, input *auctiondto.RevealBidInput) error {
	if input.Amount == 0 {
		return domain.ErrInvalidParameter
	}
	if len(input.Proof) == 0 {
		return domain.ErrInvalidProof
	}
	if err := uc.ensureNotPaused(); err != nil {
		return err
	}

	uc.Locks.Lock(input.AuctionID)
	defer uc.Locks.Unlock(input.AuctionID)

	auction, err := uc.AuctionRepo.GetAuctionByID(input.AuctionID)
	if err != nil {
		return err
	}
	now := uc.Clock.Now()
	if err := uc.refreshPhase(auction, now); err != nil {
		return err
	}
	if !auction.CanRevealBids(now) {
		if auction.Status == domain.AuctionRevealing {
			return domain.ErrRevealDeadlinePassed
		}
		return domain.ErrNotInRevealPhase
	}

	bid, err := uc.BidRepo.GetBid(input.AuctionID, input.BidderID)
	if err != nil {
		return err
	}
	if bid.Revealed {
		return domain.ErrBidAlreadyRevealed
	}
	if !VerifyBidCommitment(bid.CommitmentHash, input.Amount, input.Salt, input.BidderID) {
		return domain.ErrCommitmentMismatch
	}

	if err := uc.BidRepo.MarkRevealed(bid.ID, input.Amount); err != nil {
		return err
	}

	// Strict comparison keeps the first revealer ahead on equal amounts.
	if input.Amount > auction.WinningAmount {
		auction.SecondPrice = auction.WinningAmount
		auction.WinningAmount = input.Amount
		auction.WinnerID = input.BidderID
	} else if input.Amount > auction.SecondPrice {
		auction.SecondPrice = input.Amount
	}
	auction.RevealedCount++
	auction.UpdatedAt = now
	if err := uc.AuctionRepo.UpdateAuction(auction); err != nil {
		return err
	}

	uc.Index.Append(ctx, "bid_revealed", map[string]any{
		"auction_id":     auction.ID,
		"revealed_count": auction.RevealedCount,
	})
	uc.Metrics.BidsRevealedTotal.WithLabelValues(auction.PaymentAsset).Inc()

	return nil
}
