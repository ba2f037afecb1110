package reputationdto

import (
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
)

type ProfileOutput struct {
	UserID               string
	ReputationScore      uint16
	AuctionsAsSeller     uint32
	AuctionsAsBuyer      uint32
	SuccessfulDeliveries uint32
	DisputesAgainst      uint32
	DisputesRaised       uint32
	DisputesWon          uint32
	TotalVolume          uint64
	AverageRating        uint8
	KYCLevel             domain.KYCLevel
	StakedAmount         uint64
	CanSellHighValue     bool
	CreatedAt            time.Time
}

func ToProfileOutput(p *domain.UserProfile) *ProfileOutput {
	return &ProfileOutput{
		UserID:               p.UserID,
		ReputationScore:      p.ReputationScore,
		AuctionsAsSeller:     p.AuctionsAsSeller,
		AuctionsAsBuyer:      p.AuctionsAsBuyer,
		SuccessfulDeliveries: p.SuccessfulDeliveries,
		DisputesAgainst:      p.DisputesAgainst,
		DisputesRaised:       p.DisputesRaised,
		DisputesWon:          p.DisputesWon,
		TotalVolume:          p.TotalVolume,
		AverageRating:        p.AverageRating,
		KYCLevel:             p.KYCLevel,
		StakedAmount:         p.StakedAmount,
		CanSellHighValue:     p.CanSellHighValue(),
		CreatedAt:            p.CreatedAt,
	}
}

type StakeOutput struct {
	UserID           string
	Amount           uint64
	LockUntil        time.Time
	LockedForDispute bool
}

func ToStakeOutput(s *domain.ReputationStake) *StakeOutput {
	return &StakeOutput{
		UserID:           s.UserID,
		Amount:           s.Amount,
		LockUntil:        s.LockUntil,
		LockedForDispute: s.LockedForDispute,
	}
}
