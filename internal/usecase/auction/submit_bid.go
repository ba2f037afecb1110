package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jaevor/go-nanoid"
	"github.com/veilmarket/auction-service/internal/domain"
	publisher "github.com/veilmarket/auction-service/internal/infrastructure/kafka"
	auctiondto "github.com/veilmarket/auction-service/internal/usecase/dto/auction"
)

func (uc *DefaultAuctionUsecase) SubmitBid(ctx context.Context, input *auctiondto.SubmitBidInput) error {
	config, err := uc.PlatformRepo.GetConfig()
	if err != nil {
		return err
	}
	if config.Paused {
		return domain.ErrPlatformPaused
	}
	if len(input.CommitmentHash) != 32 {
		return domain.ErrInvalidParameter
	}
	if len(input.ProofHash) == 0 {
		return domain.ErrInvalidProof
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
	if !auction.CanAcceptBids(now) {
		if auction.Status != domain.AuctionActive {
			return domain.ErrInvalidAuctionState
		}
		return domain.ErrBiddingEnded
	}
	if input.BidderID == auction.SellerID {
		return domain.ErrInvalidParameter
	}

	if _, err := uc.BidRepo.GetBid(input.AuctionID, input.BidderID); err == nil {
		return domain.ErrDuplicateBid
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	// Collateral moves before the commitment is recorded. A failed transfer
	// leaves no bid behind.
	if err := uc.Rail.Transfer(ctx, input.BidderID, collateralVault(auction.ID), auction.BidCollateral, auction.PaymentAsset, "bid:"+auction.ID+":"+input.BidderID); err != nil {
		uc.Metrics.OperationErrors.WithLabelValues("submit_bid").Inc()
		return err
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return err
	}
	bid := &domain.BidCommitment{
		ID:                  idGenerator(),
		AuctionID:           auction.ID,
		BidderID:            input.BidderID,
		CommitmentHash:      input.CommitmentHash,
		ProofHash:           input.ProofHash,
		SubmittedAt:         now,
		CollateralDeposited: auction.BidCollateral,
	}
	if err := uc.BidRepo.CreateBid(bid); err != nil {
		return err
	}

	pool, err := uc.CollateralRepo.GetOrCreatePool(auction.ID, now)
	if err != nil {
		return err
	}
	if err := pool.Deposit(auction.BidCollateral); err != nil {
		return err
	}
	pool.UpdatedAt = now
	if err := uc.CollateralRepo.SavePool(pool); err != nil {
		return err
	}

	auction.BidCount++
	auction.UpdatedAt = now
	if err := uc.AuctionRepo.UpdateAuction(auction); err != nil {
		return err
	}

	go func(event publisher.AuctionEvent) {
		if err := uc.Publisher.PublishAuction(event); err != nil {
			slog.Error("failed to publish kafka auction event", "stage", "bidding", "error", err.Error())
		}
	}(publisher.AuctionEvent{
		AuctionID:    auction.ID,
		SellerID:     auction.SellerID,
		Status:       string(auction.Status),
		BidCount:     auction.BidCount,
		PaymentAsset: auction.PaymentAsset,
	})

	uc.Index.Append(ctx, "bid_submitted", map[string]any{
		"auction_id": auction.ID,
		"bid_count":  auction.BidCount,
	})
	uc.Metrics.BidsSubmittedTotal.WithLabelValues(auction.PaymentAsset).Inc()

	return nil
}
