package disputedto

import (
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
)

type DisputeOutput struct {
	ID                 string
	AuctionID          string
	EscrowID           string
	BuyerID            string
	SellerID           string
	RaisedBy           string
	Reason             domain.DisputeReason
	Status             domain.DisputeStatus
	Amount             uint64
	Outcome            *domain.DisputeOutcome
	RefundAmount       uint64
	VotesCollected     uint8
	EvidenceDeadline   time.Time
	ResolutionDeadline time.Time
	OpenedAt           time.Time
	ResolvedAt         *time.Time
}

func ToDisputeOutput(d *domain.Dispute) *DisputeOutput {
	return &DisputeOutput{
		ID:                 d.ID,
		AuctionID:          d.AuctionID,
		EscrowID:           d.EscrowID,
		BuyerID:            d.BuyerID,
		SellerID:           d.SellerID,
		RaisedBy:           d.RaisedBy,
		Reason:             d.Reason,
		Status:             d.Status,
		Amount:             d.Amount,
		Outcome:            d.Outcome,
		RefundAmount:       d.RefundAmount,
		VotesCollected:     d.VotesCollected,
		EvidenceDeadline:   d.EvidenceDeadline,
		ResolutionDeadline: d.ResolutionDeadline,
		OpenedAt:           d.OpenedAt,
		ResolvedAt:         d.ResolvedAt,
	}
}
