package domain

import (
	"math"
	"time"
)

type KYCLevel uint8

const (
	KYCNone KYCLevel = iota
	KYCBasic
	KYCEnhanced
	KYCFull
	KYCAccredited
)

const (
	NeutralReputation = 500
	MaxReputation     = 1000

	// Average rating is on a 0-50 scale, 10x the star value.
	NeutralRating = 25

	// Reputation deduction for failing to reveal a committed bid.
	FailedRevealPenalty = 50
)

type UserProfile struct {
	UserID               string
	ReputationScore      uint16 // 0-1000, always recomputed via Recalculate
	AuctionsAsSeller     uint32
	AuctionsAsBuyer      uint32
	SuccessfulDeliveries uint32
	DisputesAgainst      uint32
	DisputesRaised       uint32
	DisputesWon          uint32
	TotalVolume          uint64 // cents
	AverageRating        uint8  // 0-50
	RatingCount          uint32
	KYCLevel             KYCLevel
	StakedAmount         uint64
	CreatedAt            time.Time
	LastActive           time.Time
}

func NewUserProfile(userID string, now time.Time) *UserProfile {
	return &UserProfile{
		UserID:          userID,
		ReputationScore: NeutralReputation,
		AverageRating:   NeutralRating,
		CreatedAt:       now,
		LastActive:      now,
	}
}

// Recalculate recomputes the reputation score from activity history:
// 500 base, delivery bonus up to 200, dispute penalty up to 300, volume
// bonus capped at 100, rating bonus -100..+100, clamped to 0..1000.
func (p *UserProfile) Recalculate() {
	totalAuctions := p.AuctionsAsSeller + p.AuctionsAsBuyer
	if totalAuctions == 0 {
		p.ReputationScore = NeutralReputation
		return
	}

	score := float64(NeutralReputation)

	sellerAuctions := math.Max(float64(p.AuctionsAsSeller), 1)
	score += 200 * float64(p.SuccessfulDeliveries) / sellerAuctions

	score -= 300 * float64(p.DisputesAgainst) / float64(totalAuctions)

	if p.TotalVolume > 0 {
		score += math.Min(100, 10*math.Log10(float64(p.TotalVolume)))
	}

	if p.RatingCount > 0 {
		score += 4 * (float64(p.AverageRating) - NeutralRating)
	}

	p.ReputationScore = uint16(math.Min(MaxReputation, math.Max(0, score)))
}

// UpdateAfterAuction records one completed auction. A rating, when given,
// folds into the running average before the score recomputes.
func (p *UserProfile) UpdateAfterAuction(asSeller, successful bool, rating *uint8, volume uint64, now time.Time) {
	if asSeller {
		p.AuctionsAsSeller++
		if successful {
			p.SuccessfulDeliveries++
		}
	} else {
		p.AuctionsAsBuyer++
	}
	p.TotalVolume += volume

	if rating != nil {
		total := uint32(p.AverageRating)*p.RatingCount + uint32(*rating)
		p.RatingCount++
		p.AverageRating = uint8(total / p.RatingCount)
	}

	p.Recalculate()
	p.LastActive = now
}

func (p *UserProfile) RecordDisputeAgainst() {
	p.DisputesAgainst++
	p.Recalculate()
}

func (p *UserProfile) RecordDisputeRaised() {
	p.DisputesRaised++
}

func (p *UserProfile) RecordDisputeWon() {
	p.DisputesWon++
}

// CanSellHighValue gates high-value listings on trust history.
func (p *UserProfile) CanSellHighValue() bool {
	return p.ReputationScore >= 700 &&
		p.AuctionsAsSeller >= 10 &&
		p.DisputesAgainst < 3 &&
		p.KYCLevel >= KYCEnhanced
}

// ReputationStake backs seller privileges and is slashable on dispute loss.
type ReputationStake struct {
	UserID           string
	Amount           uint64
	LockUntil        time.Time
	LockedForDispute bool
}

// StakeLockPeriod is the minimum hold after every deposit.
const StakeLockPeriod = 30 * 24 * time.Hour

func (s *ReputationStake) CanWithdraw(now time.Time) bool {
	return !s.LockedForDispute && !now.Before(s.LockUntil)
}

// Slash removes percentage of the stake and returns the slashed amount.
func (s *ReputationStake) Slash(percentage uint8) uint64 {
	slashed := s.Amount * uint64(percentage) / 100
	s.Amount -= slashed
	return slashed
}

type ProfileRepository interface {
	GetProfile(userID string) (*UserProfile, error)
	// GetOrCreateProfile returns the stored profile, creating a neutral one
	// on first interaction.
	GetOrCreateProfile(userID string, now time.Time) (*UserProfile, error)
	SaveProfile(profile *UserProfile) error
	GetStake(userID string) (*ReputationStake, error)
	SaveStake(stake *ReputationStake) error
}
