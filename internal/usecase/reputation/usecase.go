package usecase

import (
	"context"

	"github.com/veilmarket/auction-service/internal/domain"
	"github.com/veilmarket/auction-service/internal/infrastructure/metrics"
	"github.com/veilmarket/auction-service/internal/keylock"
	reputationdto "github.com/veilmarket/auction-service/internal/usecase/dto/reputation"
)

type ReputationUsecase interface {
	GetProfile(userID string) (*reputationdto.ProfileOutput, error)
	GetStake(userID string) (*reputationdto.StakeOutput, error)

	DepositStake(ctx context.Context, input *reputationdto.DepositStakeInput) error
	WithdrawStake(ctx context.Context, input *reputationdto.WithdrawStakeInput) error
	SlashStake(ctx context.Context, input *reputationdto.SlashStakeInput) (uint64, error)
	SetKYCLevel(ctx context.Context, input *reputationdto.SetKYCLevelInput) error
}

type DefaultReputationUsecase struct {
	ProfileRepo  domain.ProfileRepository
	PlatformRepo domain.PlatformRepository
	Rail         domain.PaymentRail
	Index        domain.IndexLog
	Metrics      *metrics.AuctionMetrics
	Clock        domain.Clock
	Locks        *keylock.KeyLock
}

func NewDefaultReputationUsecase(
	profileRepo domain.ProfileRepository,
	platformRepo domain.PlatformRepository,
	rail domain.PaymentRail,
	index domain.IndexLog,
	auctionMetrics *metrics.AuctionMetrics,
	clock domain.Clock,
	locks *keylock.KeyLock) *DefaultReputationUsecase {

	return &DefaultReputationUsecase{
		ProfileRepo:  profileRepo,
		PlatformRepo: platformRepo,
		Rail:         rail,
		Index:        index,
		Metrics:      auctionMetrics,
		Clock:        clock,
		Locks:        locks,
	}
}

// stakeVault is the rail account holding reputation stakes per user.
func stakeVault(userID string) string {
	return "stake:" + userID
}

func (uc *DefaultReputationUsecase) GetProfile(userID string) (*reputationdto.ProfileOutput, error) {
	profile, err := uc.ProfileRepo.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	return reputationdto.ToProfileOutput(profile), nil
}

func (uc *DefaultReputationUsecase) GetStake(userID string) (*reputationdto.StakeOutput, error) {
	stake, err := uc.ProfileRepo.GetStake(userID)
	if err != nil {
		return nil, err
	}
	return reputationdto.ToStakeOutput(stake), nil
}
