package escrowdto

import (
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
)

type EscrowOutput struct {
	ID                  string
	AuctionID           string
	Amount              uint64
	PaymentAsset        string
	BeneficiaryID       string
	PayerID             string
	SecurityLevel       domain.SecurityLevel
	Status              domain.EscrowStatus
	DeliveryConfirmed   bool
	SignaturesCollected uint8
	MultiSigThreshold   uint8
	ReleaseDeadline     time.Time
	CreatedAt           time.Time
}

func ToEscrowOutput(e *domain.Escrow) *EscrowOutput {
	return &EscrowOutput{
		ID:                  e.ID,
		AuctionID:           e.AuctionID,
		Amount:              e.Amount,
		PaymentAsset:        e.PaymentAsset,
		BeneficiaryID:       e.BeneficiaryID,
		PayerID:             e.PayerID,
		SecurityLevel:       e.SecurityLevel,
		Status:              e.Status,
		DeliveryConfirmed:   e.Conditions.DeliveryConfirmed,
		SignaturesCollected: e.Conditions.SignaturesCollected,
		MultiSigThreshold:   e.Conditions.MultiSigThreshold,
		ReleaseDeadline:     e.Conditions.ReleaseDeadline,
		CreatedAt:           e.CreatedAt,
	}
}
