package usecase

import (
	"context"
	"log/slog"

	"github.com/veilmarket/auction-service/internal/domain"
	publisher "github.com/veilmarket/auction-service/internal/infrastructure/kafka"
	auctiondto "github.com/veilmarket/auction-service/internal/usecase/dto/auction"
)

// SettleAuction closes the reveal phase. Anyone may call it once the reveal
// deadline has passed. With no reveals the auction expires; otherwise the
// highest revealed bidder wins at the second-highest price and the auction's
// escrow becomes fundable.
func (uc *DefaultAuctionUsecase) SettleAuction(ctx context.Context, auctionID string) (*auctiondto.SettleAuctionOutput, error) {
	if err := uc.ensureNotPaused(); err != nil {
		return nil, err
	}

	uc.Locks.Lock(auctionID)
	defer uc.Locks.Unlock(auctionID)

	auction, err := uc.AuctionRepo.GetAuctionByID(auctionID)
	if err != nil {
		return nil, err
	}
	now := uc.Clock.Now()
	if err := uc.refreshPhase(auction, now); err != nil {
		return nil, err
	}
	if !auction.CanSettle(now) {
		if auction.Status != domain.AuctionRevealing {
			return nil, domain.ErrInvalidAuctionState
		}
		return nil, domain.ErrCannotSettleYet
	}

	if auction.RevealedCount == 0 {
		auction.Status = domain.AuctionExpired
		auction.UpdatedAt = now
		if err := uc.AuctionRepo.UpdateAuction(auction); err != nil {
			return nil, err
		}
		if err := uc.EscrowRepo.UpdateEscrowStatus(auction.EscrowID, domain.EscrowCancelled); err != nil {
			return nil, err
		}
		uc.Index.Append(ctx, "auction_expired", map[string]any{"auction_id": auction.ID})
		uc.Metrics.AuctionsExpiredTotal.WithLabelValues("no_reveals").Inc()
		return nil, domain.ErrNoBidsPlaced
	}

	paymentAmount := auction.PaymentAmount()

	// Normalize so second_price always equals what the winner pays.
	auction.SecondPrice = paymentAmount
	auction.Status = domain.AuctionSettled
	auction.UpdatedAt = now
	if err := uc.AuctionRepo.UpdateAuction(auction); err != nil {
		return nil, err
	}

	go func(event publisher.AuctionEvent) {
		if err := uc.Publisher.PublishAuction(event); err != nil {
			slog.Error("failed to publish kafka auction event", "stage", "settling", "error", err.Error())
		}
	}(publisher.AuctionEvent{
		AuctionID:     auction.ID,
		SellerID:      auction.SellerID,
		Status:        string(auction.Status),
		BidCount:      auction.BidCount,
		RevealedCount: auction.RevealedCount,
		WinnerID:      auction.WinnerID,
		PaymentAmount: paymentAmount,
		PaymentAsset:  auction.PaymentAsset,
	})

	uc.Index.Append(ctx, "auction_settled", auctiondto.ToAuctionOutput(auction))
	uc.Metrics.AuctionsSettledTotal.WithLabelValues(string(auction.Product.Type), auction.PaymentAsset).Inc()
	uc.Metrics.RevealRatio.WithLabelValues(string(auction.Product.Type)).
		Observe(float64(auction.RevealedCount) / float64(auction.BidCount))

	return &auctiondto.SettleAuctionOutput{
		AuctionID:     auction.ID,
		WinnerID:      auction.WinnerID,
		PaymentAmount: paymentAmount,
		EscrowID:      auction.EscrowID,
	}, nil
}
