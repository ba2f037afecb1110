package domain

import "time"

// BidCommitment is the commit half of the commit-reveal protocol. One
// commitment per (auction, bidder); never deleted.
type BidCommitment struct {
	ID                  string
	AuctionID           string
	BidderID            string
	CommitmentHash      []byte // keccak256(amount || salt || bidder)
	ProofHash           []byte
	SubmittedAt         time.Time
	Revealed            bool
	RevealedAmount      uint64 // meaningful only when Revealed
	CollateralDeposited uint64
	CollateralReturned  bool
}

type BidRepository interface {
	CreateBid(bid *BidCommitment) error
	GetBid(auctionID, bidderID string) (*BidCommitment, error)
	MarkRevealed(bidID string, amount uint64) error
	MarkCollateralReturned(bidID string) error
	CountUnreturned(auctionID string) (int64, error)
	GetBidsByAuction(auctionID string) ([]*BidCommitment, error)
}
