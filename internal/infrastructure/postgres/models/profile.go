package models

import (
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
)

type UserProfileModel struct {
	UserID               string `gorm:"primaryKey"`
	ReputationScore      uint16 `gorm:"index"`
	AuctionsAsSeller     uint32
	AuctionsAsBuyer      uint32
	SuccessfulDeliveries uint32
	DisputesAgainst      uint32
	DisputesRaised       uint32
	DisputesWon          uint32
	TotalVolume          uint64
	AverageRating        uint8
	RatingCount          uint32
	KYCLevel             domain.KYCLevel
	StakedAmount         uint64
	CreatedAt            time.Time
	LastActive           time.Time
}

type ReputationStakeModel struct {
	UserID           string `gorm:"primaryKey"`
	Amount           uint64
	LockUntil        time.Time
	LockedForDispute bool
}

type ArbitratorModel struct {
	UserID             string `gorm:"primaryKey"`
	Active             bool
	CasesAssigned      uint32
	CasesResolved      uint32
	AvgResolutionNs    int64
	FeesEarned         uint64
	RegisteredAt       time.Time
	LastCaseResolvedAt time.Time
}

type PlatformConfigModel struct {
	ID                     uint   `gorm:"primaryKey"`
	FeeBps                 uint16
	MinBidCollateral       uint64
	MaxBidCollateral       uint64
	MinSellerReputation    uint16
	MinHighValueReputation uint16
	HighValueThreshold     uint64
	Paused                 bool
	SupportedAssets        string `gorm:"type:jsonb"`
	Arbitrators            string `gorm:"type:jsonb"`
	FeeCollectorID         string
	AuthorityID            string
	Version                uint64
	UpdatedAt              time.Time
}
