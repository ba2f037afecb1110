package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
	"github.com/veilmarket/auction-service/internal/infrastructure/postgres/models"
)

func ToGORMAuction(auction *domain.Auction) *models.AuctionModel {
	terms, _ := json.Marshal(auction.Product)
	return &models.AuctionModel{
		ID:               auction.ID,
		SellerID:         auction.SellerID,
		ProductType:      string(auction.Product.Type),
		ProductTerms:     string(terms),
		Title:            auction.Title,
		Description:      auction.Description,
		ReservePriceHash: auction.ReservePriceHash,
		StartTime:        auction.StartTime,
		EndTime:          auction.EndTime,
		RevealDurationNs: int64(auction.RevealDuration),
		Status:           auction.Status,
		BidCount:         auction.BidCount,
		RevealedCount:    auction.RevealedCount,
		WinnerID:         auction.WinnerID,
		WinningAmount:    auction.WinningAmount,
		SecondPrice:      auction.SecondPrice,
		PaymentAsset:     auction.PaymentAsset,
		BidCollateral:    auction.BidCollateral,
		MinBidIncrement:  auction.MinBidIncrement,
		EscrowID:         auction.EscrowID,
		CreatedAt:        auction.CreatedAt,
		UpdatedAt:        auction.UpdatedAt,
	}
}

func ToDomainAuction(model *models.AuctionModel) (*domain.Auction, error) {
	var terms domain.ProductTerms
	if err := json.Unmarshal([]byte(model.ProductTerms), &terms); err != nil {
		return nil, fmt.Errorf("unmarshaling product terms for auction %s: %w", model.ID, err)
	}
	return &domain.Auction{
		ID:               model.ID,
		SellerID:         model.SellerID,
		Product:          terms,
		Title:            model.Title,
		Description:      model.Description,
		ReservePriceHash: model.ReservePriceHash,
		StartTime:        model.StartTime,
		EndTime:          model.EndTime,
		RevealDuration:   time.Duration(model.RevealDurationNs),
		Status:           model.Status,
		BidCount:         model.BidCount,
		RevealedCount:    model.RevealedCount,
		WinnerID:         model.WinnerID,
		WinningAmount:    model.WinningAmount,
		SecondPrice:      model.SecondPrice,
		PaymentAsset:     model.PaymentAsset,
		BidCollateral:    model.BidCollateral,
		MinBidIncrement:  model.MinBidIncrement,
		EscrowID:         model.EscrowID,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}, nil
}

func ToGORMBid(bid *domain.BidCommitment) *models.BidCommitmentModel {
	return &models.BidCommitmentModel{
		ID:                  bid.ID,
		AuctionID:           bid.AuctionID,
		BidderID:            bid.BidderID,
		CommitmentHash:      bid.CommitmentHash,
		ProofHash:           bid.ProofHash,
		SubmittedAt:         bid.SubmittedAt,
		Revealed:            bid.Revealed,
		RevealedAmount:      bid.RevealedAmount,
		CollateralDeposited: bid.CollateralDeposited,
		CollateralReturned:  bid.CollateralReturned,
	}
}

func ToDomainBid(model *models.BidCommitmentModel) *domain.BidCommitment {
	return &domain.BidCommitment{
		ID:                  model.ID,
		AuctionID:           model.AuctionID,
		BidderID:            model.BidderID,
		CommitmentHash:      model.CommitmentHash,
		ProofHash:           model.ProofHash,
		SubmittedAt:         model.SubmittedAt,
		Revealed:            model.Revealed,
		RevealedAmount:      model.RevealedAmount,
		CollateralDeposited: model.CollateralDeposited,
		CollateralReturned:  model.CollateralReturned,
	}
}

func ToGORMCollateralPool(pool *domain.CollateralPool) *models.CollateralPoolModel {
	return &models.CollateralPoolModel{
		AuctionID:      pool.AuctionID,
		TotalDeposited: pool.TotalDeposited,
		TotalRefunded:  pool.TotalRefunded,
		TotalForfeited: pool.TotalForfeited,
		UpdatedAt:      pool.UpdatedAt,
	}
}

func ToDomainCollateralPool(model *models.CollateralPoolModel) *domain.CollateralPool {
	return &domain.CollateralPool{
		AuctionID:      model.AuctionID,
		TotalDeposited: model.TotalDeposited,
		TotalRefunded:  model.TotalRefunded,
		TotalForfeited: model.TotalForfeited,
		UpdatedAt:      model.UpdatedAt,
	}
}
