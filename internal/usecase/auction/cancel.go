package usecase

import (
	"context"
	"log/slog"

	"github.com/veilmarket/auction-service/internal/domain"
	publisher "github.com/veilmarket/auction-service/internal/infrastructure/kafka"
	auctiondto "github.com/veilmarket/auction-service/internal/usecase/dto/auction"
)

func (uc *DefaultAuctionUsecase) CancelAuction(ctx context.Context, input *auctiondto.CancelAuctionInput) error {
	if err := uc.ensureNotPaused(); err != nil {
		return err
	}

	uc.Locks.Lock(input.AuctionID)
	defer uc.Locks.Unlock(input.AuctionID)

	auction, err := uc.AuctionRepo.GetAuctionByID(input.AuctionID)
	if err != nil {
		return err
	}
	if auction.SellerID != input.SellerID {
		return domain.ErrOnlySeller
	}
	now := uc.Clock.Now()
	if err := uc.refreshPhase(auction, now); err != nil {
		return err
	}
	if auction.Status != domain.AuctionActive {
		return domain.ErrInvalidAuctionState
	}
	if auction.BidCount > 0 {
		return domain.ErrCannotCancelWithBids
	}

	auction.Status = domain.AuctionCancelled
	auction.UpdatedAt = now
	if err := uc.AuctionRepo.UpdateAuction(auction); err != nil {
		return err
	}
	if err := uc.EscrowRepo.UpdateEscrowStatus(auction.EscrowID, domain.EscrowCancelled); err != nil {
		return err
	}

	go func(event publisher.AuctionEvent) {
		if err := uc.Publisher.PublishAuction(event); err != nil {
			slog.Error("failed to publish kafka auction event", "stage", "cancelling", "error", err.Error())
		}
	}(publisher.AuctionEvent{
		AuctionID:    auction.ID,
		SellerID:     auction.SellerID,
		Status:       string(auction.Status),
		PaymentAsset: auction.PaymentAsset,
	})

	uc.Index.Append(ctx, "auction_cancelled", map[string]any{"auction_id": auction.ID})
	uc.Metrics.AuctionsCancelledTotal.WithLabelValues(string(auction.Product.Type)).Inc()

	return nil
}
