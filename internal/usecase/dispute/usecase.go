package usecase

import (
	"context"

	"github.com/veilmarket/auction-service/internal/domain"
	publisher "github.com/veilmarket/auction-service/internal/infrastructure/kafka"
	"github.com/veilmarket/auction-service/internal/infrastructure/metrics"
	"github.com/veilmarket/auction-service/internal/keylock"
	disputedto "github.com/veilmarket/auction-service/internal/usecase/dto/dispute"
	escrowuc "github.com/veilmarket/auction-service/internal/usecase/escrow"
)

type DisputeUsecase interface {
	RaiseDispute(ctx context.Context, input *disputedto.RaiseDisputeInput) (*disputedto.DisputeOutput, error)
	SubmitEvidence(ctx context.Context, input *disputedto.SubmitEvidenceInput) error
	Vote(ctx context.Context, input *disputedto.VoteInput) error
	ResolveDispute(ctx context.Context, disputeID string) error

	GetDisputeByID(disputeID string) (*disputedto.DisputeOutput, error)
	GetDisputes(filter domain.DisputeFilter) ([]*disputedto.DisputeOutput, int64, error)
}

type DefaultDisputeUsecase struct {
	DisputeRepo    domain.DisputeRepository
	AuctionRepo    domain.AuctionRepository
	EscrowRepo     domain.EscrowRepository
	PlatformRepo   domain.PlatformRepository
	ProfileRepo    domain.ProfileRepository
	ArbitratorRepo domain.ArbitratorRepository
	EscrowUsecase  escrowuc.EscrowUsecase
	Rail           domain.PaymentRail
	Publisher      *publisher.KafkaPublisher
	Index          domain.IndexLog
	Metrics        *metrics.AuctionMetrics
	Clock          domain.Clock
	Locks          *keylock.KeyLock
}

func NewDefaultDisputeUsecase(
	disputeRepo domain.DisputeRepository,
	auctionRepo domain.AuctionRepository,
	escrowRepo domain.EscrowRepository,
	platformRepo domain.PlatformRepository,
	profileRepo domain.ProfileRepository,
	arbitratorRepo domain.ArbitratorRepository,
	escrowUsecase escrowuc.EscrowUsecase,
	rail domain.PaymentRail,
	kafkaPublisher *publisher.KafkaPublisher,
	index domain.IndexLog,
	auctionMetrics *metrics.AuctionMetrics,
	clock domain.Clock,
	locks *keylock.KeyLock) *DefaultDisputeUsecase {

	return &DefaultDisputeUsecase{
		DisputeRepo:    disputeRepo,
		AuctionRepo:    auctionRepo,
		EscrowRepo:     escrowRepo,
		PlatformRepo:   platformRepo,
		ProfileRepo:    profileRepo,
		ArbitratorRepo: arbitratorRepo,
		EscrowUsecase:  escrowUsecase,
		Rail:           rail,
		Publisher:      kafkaPublisher,
		Index:          index,
		Metrics:        auctionMetrics,
		Clock:          clock,
		Locks:          locks,
	}
}

// ensureNotPaused rejects mutating operations while the platform pause
// flag is set.
func (uc *DefaultDisputeUsecase) ensureNotPaused() error {
	config, err := uc.PlatformRepo.GetConfig()
	if err != nil {
		return err
	}
	if config.Paused {
		return domain.ErrPlatformPaused
	}
	return nil
}

func (uc *DefaultDisputeUsecase) GetDisputeByID(disputeID string) (*disputedto.DisputeOutput, error) {
	dispute, err := uc.DisputeRepo.GetDisputeByID(disputeID)
	if err != nil {
		return nil, err
	}
	return disputedto.ToDisputeOutput(dispute), nil
}

func (uc *DefaultDisputeUsecase) GetDisputes(filter domain.DisputeFilter) ([]*disputedto.DisputeOutput, int64, error) {
	disputes, total, err := uc.DisputeRepo.GetDisputes(filter)
	if err != nil {
		return nil, 0, err
	}
	outputs := make([]*disputedto.DisputeOutput, 0, len(disputes))
	for _, dispute := range disputes {
		outputs = append(outputs, disputedto.ToDisputeOutput(dispute))
	}
	return outputs, total, nil
}
