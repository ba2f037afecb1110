package usecase

import (
	"github.com/veilmarket/auction-service/internal/domain"
	auctiondto "github.com/veilmarket/auction-service/internal/usecase/dto/auction"
)

func (uc *DefaultAuctionUsecase) GetAuctionByID(auctionID string) (*auctiondto.AuctionOutput, error) {
	auction, err := uc.AuctionRepo.GetAuctionByID(auctionID)
	if err != nil {
		return nil, err
	}
	return auctiondto.ToAuctionOutput(auction), nil
}

func (uc *DefaultAuctionUsecase) GetAuctions(filter domain.AuctionFilter) ([]*auctiondto.AuctionOutput, int64, error) {
	auctions, total, err := uc.AuctionRepo.GetAuctions(filter)
	if err != nil {
		return nil, 0, err
	}
	outputs := make([]*auctiondto.AuctionOutput, 0, len(auctions))
	for _, auction := range auctions {
		outputs = append(outputs, auctiondto.ToAuctionOutput(auction))
	}
	return outputs, total, nil
}

func (uc *DefaultAuctionUsecase) GetBidsByAuction(auctionID string) ([]*domain.BidCommitment, error) {
	return uc.BidRepo.GetBidsByAuction(auctionID)
}
