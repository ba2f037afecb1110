package models

import (
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
)

type DisputeModel struct {
	ID                 string               `gorm:"primaryKey"`
	AuctionID          string               `gorm:"index"`
	EscrowID           string               `gorm:"index"`
	BuyerID            string               `gorm:"index"`
	SellerID           string               `gorm:"index"`
	RaisedBy           string
	Reason             domain.DisputeReason
	Description        string
	Status             domain.DisputeStatus `gorm:"index"`
	Amount             uint64
	ArbitratorID       string
	OutcomeKind        string
	OutcomePercentage  uint8
	RefundAmount       uint64
	OpenedAt           time.Time
	LastActivity       time.Time
	ResolvedAt         *time.Time
	EvidenceDeadline   time.Time
	ResolutionDeadline time.Time
	VotesCollected     uint8
	VotesForBuyer      uint8
	VotesForSeller     uint8
}

type EvidenceModel struct {
	ID          string `gorm:"primaryKey"`
	DisputeID   string `gorm:"index:idx_evidence_dispute"`
	SubmitterID string `gorm:"index:idx_evidence_dispute"`
	Type        domain.EvidenceType
	DataRef     string
	SubmittedAt time.Time
}

type DisputeVoteModel struct {
	DisputeID    string `gorm:"primaryKey"`
	ArbitratorID string `gorm:"primaryKey"`
	ForBuyer     bool
	Notes        string
	VotedAt      time.Time
}
