package usecase

import (
	"context"
	"log/slog"

	"github.com/veilmarket/auction-service/internal/domain"
)

// SweepExpiredAuctions is the background crank: it pushes past-end active
// auctions into the reveal phase and expires reveal-phase auctions whose
// deadline passed with nothing revealed. Settlement of revealed auctions
// stays caller-driven.
func (uc *DefaultAuctionUsecase) SweepExpiredAuctions(ctx context.Context) error {
	now := uc.Clock.Now()

	expired, err := uc.AuctionRepo.FindExpiredActiveAuctions(now)
	if err != nil {
		return err
	}
	for _, auction := range expired {
		uc.Locks.Lock(auction.ID)
		if err := uc.refreshPhase(auction, now); err != nil {
			slog.Error("failed to transition expired auction", "auction_id", auction.ID, "error", err.Error())
		}
		uc.Locks.Unlock(auction.ID)
	}

	unrevealed, err := uc.AuctionRepo.FindUnrevealedPastDeadline(now)
	if err != nil {
		return err
	}
	for _, auction := range unrevealed {
		uc.Locks.Lock(auction.ID)
		if err := uc.AuctionRepo.UpdateAuctionStatus(auction.ID, domain.AuctionExpired); err != nil {
			slog.Error("failed to expire auction", "auction_id", auction.ID, "error", err.Error())
			uc.Locks.Unlock(auction.ID)
			continue
		}
		if err := uc.EscrowRepo.UpdateEscrowStatus(auction.EscrowID, domain.EscrowCancelled); err != nil {
			slog.Error("failed to cancel escrow for expired auction", "auction_id", auction.ID, "error", err.Error())
		}
		uc.Metrics.AuctionsExpiredTotal.WithLabelValues("no_reveals").Inc()
		uc.Index.Append(ctx, "auction_expired", map[string]any{"auction_id": auction.ID})
		uc.Locks.Unlock(auction.ID)
	}

	return nil
}
