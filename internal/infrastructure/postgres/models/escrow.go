package models

import (
	"time"

	"github.com/veilmarket/auction-service/internal/domain"
)

type EscrowModel struct {
	ID                           string              `gorm:"primaryKey"`
	AuctionID                    string              `gorm:"uniqueIndex:idx_escrow_auction"`
	Amount                       uint64
	PaymentAsset                 string
	BeneficiaryID                string              `gorm:"index"`
	PayerID                      string              `gorm:"index"`
	SecurityLevel                domain.SecurityLevel
	Status                       domain.EscrowStatus `gorm:"index"`
	RequiresDeliveryConfirmation bool
	DeliveryConfirmed            bool
	TimeLockNs                   int64
	MultiSigThreshold            uint8
	Signers                      string `gorm:"type:jsonb"`
	SignaturesCollected          uint8
	ReleaseDeadline              time.Time
	CreatedAt                    time.Time
	ReleasedAt                   *time.Time
}

type EscrowSignatureModel struct {
	EscrowID string    `gorm:"primaryKey"`
	SignerID string    `gorm:"primaryKey"`
	SignedAt time.Time
}
