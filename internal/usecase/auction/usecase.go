package usecase

import (
	"context"
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
	publisher "github.com/veilmarket/auction-service/internal/infrastructure/kafka"
	"github.com/veilmarket/auction-service/internal/infrastructure/metrics"
	"github.com/veilmarket/auction-service/internal/keylock"
	auctiondto "github.com/veilmarket/auction-service/internal/usecase/dto/auction"
)

type AuctionUsecase interface {
	CreateAuction(ctx context.Context, input *auctiondto.CreateAuctionInput) (*auctiondto.AuctionOutput, error)
	SubmitBid(ctx context.Context, input *auctiondto.SubmitBidInput) error
	RevealBid(ctx context.Context, input *auctiondto.RevealBidInput) error
	SettleAuction(ctx context.Context, auctionID string) (*auctiondto.SettleAuctionOutput, error)
	CancelAuction(ctx context.Context, input *auctiondto.CancelAuctionInput) error
	ClaimRefund(ctx context.Context, input *auctiondto.ClaimRefundInput) error
	SweepExpiredAuctions(ctx context.Context) error

	GetAuctionByID(auctionID string) (*auctiondto.AuctionOutput, error)
	GetAuctions(filter domain.AuctionFilter) ([]*auctiondto.AuctionOutput, int64, error)
	GetBidsByAuction(auctionID string) ([]*domain.BidCommitment, error)
}

type DefaultAuctionUsecase struct {
	AuctionRepo    domain.AuctionRepository
	BidRepo        domain.BidRepository
	EscrowRepo     domain.EscrowRepository
	CollateralRepo domain.CollateralRepository
	PlatformRepo   domain.PlatformRepository
	ProfileRepo    domain.ProfileRepository
	Rail           domain.PaymentRail
	Publisher      *publisher.KafkaPublisher
	Index          domain.IndexLog
	Metrics        *metrics.AuctionMetrics
	Clock          domain.Clock
	Locks          *keylock.KeyLock
}

func NewDefaultAuctionUsecase(
	auctionRepo domain.AuctionRepository,
	bidRepo domain.BidRepository,
	escrowRepo domain.EscrowRepository,
	collateralRepo domain.CollateralRepository,
	platformRepo domain.PlatformRepository,
	profileRepo domain.ProfileRepository,
	rail domain.PaymentRail,
	kafkaPublisher *publisher.KafkaPublisher,
	index domain.IndexLog,
	auctionMetrics *metrics.AuctionMetrics,
	clock domain.Clock,
	locks *keylock.KeyLock) *DefaultAuctionUsecase {

	return &DefaultAuctionUsecase{
		AuctionRepo:    auctionRepo,
		BidRepo:        bidRepo,
		EscrowRepo:     escrowRepo,
		CollateralRepo: collateralRepo,
		PlatformRepo:   platformRepo,
		ProfileRepo:    profileRepo,
		Rail:           rail,
		Publisher:      kafkaPublisher,
		Index:          index,
		Metrics:        auctionMetrics,
		Clock:          clock,
		Locks:          locks,
	}
}

// collateralVault is the rail account holding bid collateral per auction.
func collateralVault(auctionID string) string {
	return "collateral:" + auctionID
}

// escrowVault is the rail account holding the escrowed payment.
func escrowVault(escrowID string) string {
	return "escrow:" + escrowID
}

// ensureNotPaused rejects mutating operations while the platform pause
// flag is set.
func (uc *DefaultAuctionUsecase) ensureNotPaused() error {
	config, err := uc.PlatformRepo.GetConfig()
	if err != nil {
		return err
	}
	if config.Paused {
		return domain.ErrPlatformPaused
	}
	return nil
}

// refreshPhase applies the lazy phase transition before every operation:
// a past-end active auction moves to revealing (or straight to expired when
// nobody bid) the first time anyone touches it.
func (uc *DefaultAuctionUsecase) refreshPhase(auction *domain.Auction, now time.Time) error {
	if auction.Status != domain.AuctionActive || now.Before(auction.EndTime) {
		return nil
	}

	next := domain.AuctionRevealing
	if auction.BidCount == 0 {
		next = domain.AuctionExpired
	}
	if err := uc.AuctionRepo.UpdateAuctionStatus(auction.ID, next); err != nil {
		return err
	}
	if next == domain.AuctionExpired {
		if err := uc.EscrowRepo.UpdateEscrowStatus(auction.EscrowID, domain.EscrowCancelled); err != nil {
			return err
		}
	}
	auction.Status = next
	return nil
}
