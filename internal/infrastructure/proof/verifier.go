package proof

import (
	"bytes"
	"context"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/veilmarket/auction-service/internal/domain"
)

// KeccakVerifier accepts a delivery proof when its keccak256 digest matches
// the proof hash the winning bidder registered at bid time. An escrow whose
// winning bid carries no proof hash accepts any proof.
type KeccakVerifier struct {
	auctionRepo domain.AuctionRepository
	bidRepo     domain.BidRepository
}

func NewKeccakVerifier(auctionRepo domain.AuctionRepository, bidRepo domain.BidRepository) *KeccakVerifier {
	return &KeccakVerifier{auctionRepo: auctionRepo, bidRepo: bidRepo}
}

func (v *KeccakVerifier) Verify(ctx context.Context, auctionID string, proof []byte) error {
	auction, err := v.auctionRepo.GetAuctionByID(auctionID)
	if err != nil {
		return err
	}
	bid, err := v.bidRepo.GetBid(auctionID, auction.WinnerID)
	if err != nil {
		return err
	}
	if len(bid.ProofHash) == 0 {
		return nil
	}
	if !bytes.Equal(crypto.Keccak256(proof), bid.ProofHash) {
		return domain.ErrInvalidDeliveryProof
	}
	return nil
}
