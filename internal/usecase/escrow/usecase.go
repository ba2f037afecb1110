package usecase

import (
	"context"

	"github.com/veilmarket/auction-service/internal/domain"
	publisher "github.com/veilmarket/auction-service/internal/infrastructure/kafka"
	"github.com/veilmarket/auction-service/internal/infrastructure/metrics"
	"github.com/veilmarket/auction-service/internal/keylock"
	escrowdto "github.com/veilmarket/auction-service/internal/usecase/dto/escrow"
)

type EscrowUsecase interface {
	FundEscrow(ctx context.Context, input *escrowdto.FundEscrowInput) error
	ConfirmDelivery(ctx context.Context, input *escrowdto.ConfirmDeliveryInput) error
	AddSignature(ctx context.Context, input *escrowdto.AddSignatureInput) error
	ReleaseEscrow(ctx context.Context, input *escrowdto.ReleaseEscrowInput) error
	RefundEscrow(ctx context.Context, input *escrowdto.RefundEscrowInput) error

	MarkDisputed(ctx context.Context, escrowID string) error
	PayoutDispute(ctx context.Context, escrowID string, outcome domain.DisputeOutcome) (refund, fee uint64, err error)

	GetEscrowByID(escrowID string) (*escrowdto.EscrowOutput, error)
	GetEscrowByAuctionID(auctionID string) (*escrowdto.EscrowOutput, error)
}

type DefaultEscrowUsecase struct {
	EscrowRepo     domain.EscrowRepository
	AuctionRepo    domain.AuctionRepository
	BidRepo        domain.BidRepository
	CollateralRepo domain.CollateralRepository
	PlatformRepo   domain.PlatformRepository
	ProfileRepo    domain.ProfileRepository
	Rail           domain.PaymentRail
	Verifier       domain.ProofVerifier
	Publisher      *publisher.KafkaPublisher
	Index          domain.IndexLog
	Metrics        *metrics.AuctionMetrics
	Clock          domain.Clock
	Locks          *keylock.KeyLock
}

func NewDefaultEscrowUsecase(
	escrowRepo domain.EscrowRepository,
	auctionRepo domain.AuctionRepository,
	bidRepo domain.BidRepository,
	collateralRepo domain.CollateralRepository,
	platformRepo domain.PlatformRepository,
	profileRepo domain.ProfileRepository,
	rail domain.PaymentRail,
	verifier domain.ProofVerifier,
	kafkaPublisher *publisher.KafkaPublisher,
	index domain.IndexLog,
	auctionMetrics *metrics.AuctionMetrics,
	clock domain.Clock,
	locks *keylock.KeyLock) *DefaultEscrowUsecase {

	return &DefaultEscrowUsecase{
		EscrowRepo:     escrowRepo,
		AuctionRepo:    auctionRepo,
		BidRepo:        bidRepo,
		CollateralRepo: collateralRepo,
		PlatformRepo:   platformRepo,
		ProfileRepo:    profileRepo,
		Rail:           rail,
		Verifier:       verifier,
		Publisher:      kafkaPublisher,
		Index:          index,
		Metrics:        auctionMetrics,
		Clock:          clock,
		Locks:          locks,
	}
}

// ensureNotPaused rejects mutating operations while the platform pause
// flag is set.
func (uc *DefaultEscrowUsecase) ensureNotPaused() error {
	config, err := uc.PlatformRepo.GetConfig()
	if err != nil {
		return err
	}
	if config.Paused {
		return domain.ErrPlatformPaused
	}
	return nil
}

func escrowVault(escrowID string) string {
	return "escrow:" + escrowID
}

func collateralVault(auctionID string) string {
	return "collateral:" + auctionID
}

func (uc *DefaultEscrowUsecase) GetEscrowByID(escrowID string) (*escrowdto.EscrowOutput, error) {
	escrow, err := uc.EscrowRepo.GetEscrowByID(escrowID)
	if err != nil {
		return nil, err
	}
	return escrowdto.ToEscrowOutput(escrow), nil
}

func (uc *DefaultEscrowUsecase) GetEscrowByAuctionID(auctionID string) (*escrowdto.EscrowOutput, error) {
	escrow, err := uc.EscrowRepo.GetEscrowByAuctionID(auctionID)
	if err != nil {
		return nil, err
	}
	return escrowdto.ToEscrowOutput(escrow), nil
}
