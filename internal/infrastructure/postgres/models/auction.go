package models

import (
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
)

type AuctionModel struct {
	ID               string               `gorm:"primaryKey"`
	SellerID         string               `gorm:"index:idx_seller"`
	ProductType      string               `gorm:"index:idx_product_type"`
	ProductTerms     string               `gorm:"type:jsonb"`
	Title            string
	Description      string
	ReservePriceHash []byte
	StartTime        time.Time
	EndTime          time.Time            `gorm:"index:idx_status_end"`
	RevealDurationNs int64
	Status           domain.AuctionStatus `gorm:"index:idx_status_end"`
	BidCount         uint32
	RevealedCount    uint32
	WinnerID         string
	WinningAmount    uint64
	SecondPrice      uint64
	PaymentAsset     string
	BidCollateral    uint64
	MinBidIncrement  uint64
	EscrowID         string
	CreatedAt        time.Time `gorm:"index:idx_auction_created_at"`
	UpdatedAt        time.Time
}

type BidCommitmentModel struct {
	ID                  string `gorm:"primaryKey"`
	AuctionID           string `gorm:"index:idx_auction_bidder,unique"`
	BidderID            string `gorm:"index:idx_auction_bidder,unique"`
	CommitmentHash      []byte
	ProofHash           []byte
	SubmittedAt         time.Time
	Revealed            bool
	RevealedAmount      uint64
	CollateralDeposited uint64
	CollateralReturned  bool
}

type CollateralPoolModel struct {
	AuctionID      string `gorm:"primaryKey"`
	TotalDeposited uint64
	TotalRefunded  uint64
	TotalForfeited uint64
	UpdatedAt      time.Time
}
