package auctiondto

import (
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
)

type AuctionOutput struct {
	ID             string
	SellerID       string
	Title          string
	Status         domain.AuctionStatus
	ProductType    domain.ProductType
	StartTime      time.Time
	EndTime        time.Time
	RevealDeadline time.Time
	BidCount       uint32
	RevealedCount  uint32
	WinnerID       string
	WinningAmount  uint64
	SecondPrice    uint64
	PaymentAsset   string
	BidCollateral  uint64
	EscrowID       string
}

type SettleAuctionOutput struct {
	AuctionID     string
	WinnerID      string
	PaymentAmount uint64
	EscrowID      string
}

func ToAuctionOutput(a *domain.Auction) *AuctionOutput {
	return &AuctionOutput{
		ID:             a.ID,
		SellerID:       a.SellerID,
		Title:          a.Title,
		Status:         a.Status,
		ProductType:    a.Product.Type,
		StartTime:      a.StartTime,
		EndTime:        a.EndTime,
		RevealDeadline: a.RevealDeadline(),
		BidCount:       a.BidCount,
		RevealedCount:  a.RevealedCount,
		WinnerID:       a.WinnerID,
		WinningAmount:  a.WinningAmount,
		SecondPrice:    a.SecondPrice,
		PaymentAsset:   a.PaymentAsset,
		BidCollateral:  a.BidCollateral,
		EscrowID:       a.EscrowID,
	}
}
