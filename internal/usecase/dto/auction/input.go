package auctiondto

import (
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
)

type CreateAuctionInput struct {
	SellerID         string
	Title            string
	Description      string
	Product          domain.ProductTerms
	ReservePriceHash []byte
	Duration         time.Duration
	RevealDuration   time.Duration
	PaymentAsset     string
	BidCollateral    uint64
	MinBidIncrement  uint64
}

type SubmitBidInput struct {
	AuctionID      string
	BidderID       string
	CommitmentHash []byte
	ProofHash      []byte
}

type RevealBidInput struct {
	AuctionID string
	BidderID  string
	Amount    uint64
	Salt      []byte
	Proof     []byte
}

type CancelAuctionInput struct {
	AuctionID string
	SellerID  string
}

type ClaimRefundInput struct {
	AuctionID string
	BidderID  string
}
